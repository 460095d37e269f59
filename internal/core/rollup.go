package core

// RollupPlan derives every non-leaf status bottom-up. Leaf statuses are the
// primary facts and pass through untouched.
func RollupPlan(plan []*WorkflowItem) {
	for _, item := range plan {
		rollupItem(item)
	}
}

// rollupItem computes a node's status from its children in post-order.
// Precedence is fixed: blocked dominates, then full completion, then
// partial progress, then pending.
func rollupItem(item *WorkflowItem) ItemStatus {
	if item.IsLeaf() {
		if !ValidStatus(item.Status) {
			item.Status = StatusPending
		}
		return item.Status
	}

	var blocked, inProgress, complete bool
	nonSkipped := 0
	nonSkippedComplete := 0
	for _, child := range item.Children {
		switch rollupItem(child) {
		case StatusBlocked:
			blocked = true
			nonSkipped++
		case StatusInProgress:
			inProgress = true
			nonSkipped++
		case StatusComplete:
			complete = true
			nonSkipped++
			nonSkippedComplete++
		case StatusSkipped:
			// Skipped children are vacuously satisfied.
		default:
			nonSkipped++
		}
	}

	switch {
	case blocked:
		item.Status = StatusBlocked
	case nonSkipped == 0 || nonSkippedComplete == nonSkipped:
		item.Status = StatusComplete
	case inProgress || complete:
		item.Status = StatusInProgress
	default:
		item.Status = StatusPending
	}
	return item.Status
}
