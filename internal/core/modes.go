package core

// modeOverride forces a task to skipped while its predicate holds for the
// current project mode, and reverts the forced skip once it stops holding.
type modeOverride struct {
	itemID  string
	applies func(mode ProjectMode) bool
}

// Greenfield projects have nothing to document; brownfield projects start
// from an existing codebase instead of ideating one; the roadmap planner
// only runs for greenfield projects.
var modeOverrides = []modeOverride{
	{TaskBrownfieldDocumentation, func(m ProjectMode) bool { return m == ModeGreenfield }},
	{TaskIdeation, func(m ProjectMode) bool { return m == ModeBrownfield }},
	{TaskRoadmapPlanning, func(m ProjectMode) bool { return m != ModeGreenfield }},
}

// ApplyModeOverrides enforces the project-mode status overrides on the plan.
// It runs before rollup on every reconcile: overrides are a recomputed view,
// not a one-time mutation, because the mode can change.
//
// Manual skips do not exist (SetItemStatus rejects them), so any skipped
// task under an override's control whose predicate no longer holds must be
// a stale override result and reverts to pending. This keeps the function
// idempotent and the overrides reversible.
func ApplyModeOverrides(plan []*WorkflowItem, mode ProjectMode) {
	for _, ov := range modeOverrides {
		item := FindItem(plan, ov.itemID)
		if item == nil {
			continue
		}
		if ov.applies(mode) {
			item.Status = StatusSkipped
		} else if item.Status == StatusSkipped {
			item.Status = StatusPending
		}
	}
}
