package core

import "testing"

func wave(statuses ...ItemStatus) *WorkflowItem {
	parent := &WorkflowItem{ID: "wave-1", Kind: KindWave, Title: "wave"}
	for i, s := range statuses {
		parent.Children = append(parent.Children, &WorkflowItem{
			ID:     parent.ID + "-t" + string(rune('a'+i)),
			Kind:   KindTask,
			Status: s,
		})
	}
	return parent
}

func TestRollup_Precedence(t *testing.T) {
	cases := []struct {
		name     string
		children []ItemStatus
		want     ItemStatus
	}{
		{"all pending", []ItemStatus{StatusPending, StatusPending}, StatusPending},
		{"all complete", []ItemStatus{StatusComplete, StatusComplete}, StatusComplete},
		{"complete plus skipped", []ItemStatus{StatusComplete, StatusSkipped}, StatusComplete},
		{"all skipped is vacuously complete", []ItemStatus{StatusSkipped, StatusSkipped}, StatusComplete},
		{"blocked dominates completion", []ItemStatus{StatusComplete, StatusBlocked}, StatusBlocked},
		{"blocked dominates progress", []ItemStatus{StatusInProgress, StatusBlocked}, StatusBlocked},
		{"any in_progress", []ItemStatus{StatusPending, StatusInProgress}, StatusInProgress},
		{"mix of complete and pending", []ItemStatus{StatusComplete, StatusPending}, StatusInProgress},
		{"skipped plus pending stays pending", []ItemStatus{StatusSkipped, StatusPending}, StatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := wave(tc.children...)
			RollupPlan([]*WorkflowItem{item})
			if item.Status != tc.want {
				t.Fatalf("rollup(%v) = %s, want %s", tc.children, item.Status, tc.want)
			}
		})
	}
}

func TestRollup_PropagatesThroughLevels(t *testing.T) {
	plan := DefaultPlan()
	for _, id := range []string{
		TaskScaffold, TaskPrerequisiteGate, TaskBrownfieldIntake,
		TaskBrownfieldDocumentation, TaskIdeation, TaskResearch, TaskRoadmapPlanning,
	} {
		FindItem(plan, id).Status = StatusComplete
	}
	RollupPlan(plan)

	for _, id := range []string{"wave-initialize-cadence", "phase-project-setup", "milestone-foundation"} {
		if got := FindItem(plan, id).Status; got != StatusComplete {
			t.Fatalf("%s = %s, want complete", id, got)
		}
	}
}

func TestRollup_BlockedLeafBlocksAncestors(t *testing.T) {
	plan := DefaultPlan()
	FindItem(plan, TaskScaffold).Status = StatusComplete
	FindItem(plan, TaskPrerequisiteGate).Status = StatusBlocked
	RollupPlan(plan)

	if got := FindItem(plan, "milestone-foundation").Status; got != StatusBlocked {
		t.Fatalf("milestone = %s, want blocked", got)
	}
}

func TestRollup_LeafStatusIsPrimary(t *testing.T) {
	leaf := &WorkflowItem{ID: "t1", Kind: KindTask, Status: StatusInProgress}
	RollupPlan([]*WorkflowItem{leaf})
	if leaf.Status != StatusInProgress {
		t.Fatalf("leaf status changed to %s", leaf.Status)
	}
}

func TestRollup_Idempotent(t *testing.T) {
	plan := DefaultPlan()
	FindItem(plan, TaskScaffold).Status = StatusComplete
	RollupPlan(plan)
	first := FindItem(plan, "milestone-foundation").Status
	RollupPlan(plan)
	if got := FindItem(plan, "milestone-foundation").Status; got != first {
		t.Fatalf("second rollup changed status: %s -> %s", first, got)
	}
}
