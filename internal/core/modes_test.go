package core

import "testing"

func TestModeOverrides_Greenfield(t *testing.T) {
	plan := DefaultPlan()
	ApplyModeOverrides(plan, ModeGreenfield)

	if got := FindItem(plan, TaskBrownfieldDocumentation).Status; got != StatusSkipped {
		t.Fatalf("brownfield documentation = %s, want skipped", got)
	}
	if got := FindItem(plan, TaskIdeation).Status; got != StatusPending {
		t.Fatalf("ideation = %s, want pending", got)
	}
	if got := FindItem(plan, TaskRoadmapPlanning).Status; got != StatusPending {
		t.Fatalf("roadmap planning = %s, want pending in greenfield", got)
	}
}

func TestModeOverrides_Brownfield(t *testing.T) {
	plan := DefaultPlan()
	ApplyModeOverrides(plan, ModeBrownfield)

	if got := FindItem(plan, TaskIdeation).Status; got != StatusSkipped {
		t.Fatalf("ideation = %s, want skipped", got)
	}
	if got := FindItem(plan, TaskBrownfieldDocumentation).Status; got != StatusPending {
		t.Fatalf("brownfield documentation = %s, want pending", got)
	}
	if got := FindItem(plan, TaskRoadmapPlanning).Status; got != StatusSkipped {
		t.Fatalf("roadmap planning = %s, want skipped outside greenfield", got)
	}
}

func TestModeOverrides_UnknownSkipsOnlyPlanner(t *testing.T) {
	plan := DefaultPlan()
	ApplyModeOverrides(plan, ModeUnknown)

	if got := FindItem(plan, TaskRoadmapPlanning).Status; got != StatusSkipped {
		t.Fatalf("roadmap planning = %s, want skipped", got)
	}
	for _, id := range []string{TaskIdeation, TaskBrownfieldDocumentation} {
		if got := FindItem(plan, id).Status; got != StatusPending {
			t.Fatalf("%s = %s, want pending", id, got)
		}
	}
}

func TestModeOverrides_Idempotent(t *testing.T) {
	plan := DefaultPlan()
	ApplyModeOverrides(plan, ModeBrownfield)
	snapshot := map[string]ItemStatus{}
	WalkPlan(plan, func(item *WorkflowItem, _ []*WorkflowItem) {
		snapshot[item.ID] = item.Status
	})

	ApplyModeOverrides(plan, ModeBrownfield)
	WalkPlan(plan, func(item *WorkflowItem, _ []*WorkflowItem) {
		if item.Status != snapshot[item.ID] {
			t.Fatalf("%s changed on second application: %s -> %s",
				item.ID, snapshot[item.ID], item.Status)
		}
	})
}

func TestModeOverrides_ReversesWhenModeChanges(t *testing.T) {
	plan := DefaultPlan()
	ApplyModeOverrides(plan, ModeBrownfield)
	if got := FindItem(plan, TaskIdeation).Status; got != StatusSkipped {
		t.Fatalf("ideation = %s, want skipped", got)
	}

	ApplyModeOverrides(plan, ModeGreenfield)
	if got := FindItem(plan, TaskIdeation).Status; got != StatusPending {
		t.Fatalf("ideation = %s after mode flip, want pending", got)
	}
	if got := FindItem(plan, TaskRoadmapPlanning).Status; got != StatusPending {
		t.Fatalf("roadmap planning = %s after mode flip, want pending", got)
	}
}
