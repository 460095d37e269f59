package core

import (
	"errors"
	"testing"
)

func TestReconcile_Idempotent(t *testing.T) {
	doc := NewDocument()
	doc.State.ProjectMode = ModeBrownfield
	reconciled(t, doc)
	snapshot := map[string]ItemStatus{}
	WalkPlan(doc.Workflow.Plan, func(item *WorkflowItem, _ []*WorkflowItem) {
		snapshot[item.ID] = item.Status
	})

	reconciled(t, doc)
	WalkPlan(doc.Workflow.Plan, func(item *WorkflowItem, _ []*WorkflowItem) {
		if item.Status != snapshot[item.ID] {
			t.Fatalf("%s changed on second reconcile: %s -> %s",
				item.ID, snapshot[item.ID], item.Status)
		}
	})
}

func TestReconcile_DefaultPlanOrdering(t *testing.T) {
	doc := reconciled(t, NewDocument())
	var taskIDs []string
	WalkPlan(doc.Workflow.Plan, func(item *WorkflowItem, _ []*WorkflowItem) {
		if item.Kind == KindTask {
			taskIDs = append(taskIDs, item.ID)
		}
	})

	index := func(id string) int {
		for i, got := range taskIDs {
			if got == id {
				return i
			}
		}
		t.Fatalf("task %s missing from plan", id)
		return -1
	}
	if index(TaskPrerequisiteGate) >= index(TaskBrownfieldIntake) {
		t.Fatal("prerequisite gate must precede brownfield intake")
	}
	if index(TaskBrownfieldIntake) >= index(TaskBrownfieldDocumentation) {
		t.Fatal("brownfield intake must precede documentation")
	}
	if index(TaskBrownfieldDocumentation) >= index(TaskIdeation) {
		t.Fatal("documentation must precede ideation")
	}
	if index(TaskResearch) >= index(TaskRoadmapPlanning) {
		t.Fatal("research must precede roadmap planning")
	}
}

func TestReconcile_DuplicateIDRejected(t *testing.T) {
	doc := NewDocument()
	doc.Workflow.Plan = append(doc.Workflow.Plan, &WorkflowItem{
		ID:   "milestone-foundation",
		Kind: KindMilestone,
	})
	err := Reconcile(doc)
	if !IsCode(err, CodeDuplicateItemID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestReconcile_NormalizesPartialItems(t *testing.T) {
	doc := NewDocument()
	doc.Workflow.Plan = []*WorkflowItem{
		{
			ID: "milestone-x",
			Children: []*WorkflowItem{
				{Status: "bogus"},
			},
		},
	}
	reconciled(t, doc)

	child := doc.Workflow.Plan[0].Children[0]
	if child.ID != "milestone-x-child-1" {
		t.Fatalf("child id = %q", child.ID)
	}
	if child.Kind != KindTask {
		t.Fatalf("child kind = %s, want task inferred from shape", child.Kind)
	}
	if child.Status != StatusPending {
		t.Fatalf("child status = %s, want coerced pending", child.Status)
	}
	if doc.Workflow.Plan[0].Kind != KindPhase {
		t.Fatalf("parent kind = %s, want phase inferred from shape", doc.Workflow.Plan[0].Kind)
	}
}

func TestSetItemStatus_SyncsLegacyFlags(t *testing.T) {
	doc := reconciled(t, NewDocument())

	if err := SetItemStatus(doc, TaskIdeation, StatusComplete); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !doc.State.IdeationCompleted {
		t.Fatal("ideation-completed flag not raised")
	}

	if err := SetItemStatus(doc, TaskIdeation, StatusPending); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if doc.State.IdeationCompleted {
		t.Fatal("ideation-completed flag not lowered")
	}

	if err := SetItemStatus(doc, TaskPrerequisiteGate, StatusComplete); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !doc.PrerequisitesPass {
		t.Fatal("prerequisites-pass flag not raised")
	}
}

func TestSetItemStatus_UnknownID(t *testing.T) {
	doc := reconciled(t, NewDocument())
	err := SetItemStatus(doc, "task-nonexistent", StatusComplete)
	if !IsCode(err, CodeItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
	var domErr *DomainError
	if !errors.As(err, &domErr) || domErr.Detail("item_id") != "task-nonexistent" {
		t.Fatalf("error should carry the requested id: %v", err)
	}
}

func TestSetItemStatus_RejectsNonTaskTarget(t *testing.T) {
	doc := reconciled(t, NewDocument())
	err := SetItemStatus(doc, "wave-initialize-cadence", StatusComplete)
	if !IsCode(err, CodeInvalidStatusTarget) {
		t.Fatalf("expected derived-status rejection, got %v", err)
	}
}

func TestSetItemStatus_RejectsManualSkip(t *testing.T) {
	doc := reconciled(t, NewDocument())
	err := SetItemStatus(doc, TaskScaffold, StatusSkipped)
	if !IsCode(err, CodeInvalidStatus) {
		t.Fatalf("expected skipped rejection, got %v", err)
	}
}

func TestSetItemStatus_BlockedRecovers(t *testing.T) {
	doc := reconciled(t, NewDocument())
	if err := SetItemStatus(doc, TaskScaffold, StatusBlocked); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := SetItemStatus(doc, TaskScaffold, StatusInProgress); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if got := FindItem(doc.Workflow.Plan, TaskScaffold).Status; got != StatusInProgress {
		t.Fatalf("status = %s, want in_progress", got)
	}
}

func TestScenario_GreenfieldRoutesToIdeatorThenPlanner(t *testing.T) {
	doc := NewDocument()
	doc.State.ProjectMode = ModeGreenfield

	for _, id := range []string{TaskScaffold, TaskPrerequisiteGate, TaskBrownfieldIntake} {
		if err := SetItemStatus(doc, id, StatusComplete); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}
	if got := Resolve(doc).ExpectedSkill(); got != "ideator" {
		t.Fatalf("route = %q, want ideator (documentation auto-skipped)", got)
	}

	for _, id := range []string{TaskIdeation, TaskResearch} {
		if err := SetItemStatus(doc, id, StatusComplete); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}
	if got := Resolve(doc).ExpectedSkill(); got != "planner" {
		t.Fatalf("route = %q, want planner", got)
	}
}

func TestScenario_BrownfieldSkipsIdeationAndPlanner(t *testing.T) {
	doc := NewDocument()
	doc.State.ProjectMode = ModeBrownfield

	for _, id := range []string{TaskScaffold, TaskPrerequisiteGate, TaskBrownfieldIntake} {
		if err := SetItemStatus(doc, id, StatusComplete); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}
	if got := Resolve(doc).ExpectedSkill(); got != "brownfield-documenter" {
		t.Fatalf("route = %q, want brownfield-documenter", got)
	}

	for _, id := range []string{TaskBrownfieldDocumentation, TaskResearch} {
		if err := SetItemStatus(doc, id, StatusComplete); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}
	res := Resolve(doc)
	if !res.Complete() {
		t.Fatalf("expected complete workflow, next = %s", res.NextItem.ID)
	}
	if got := FindItem(doc.Workflow.Plan, TaskRoadmapPlanning).Status; got != StatusSkipped {
		t.Fatalf("roadmap planning = %s, want skipped", got)
	}
}
