package core

import (
	"fmt"
	"math"
)

// NodeRef is a flattened reference to a plan node, carrying its ancestor
// path for display purposes.
type NodeRef struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Kind       ItemKind   `json:"kind"`
	Status     ItemStatus `json:"status"`
	PathIDs    []string   `json:"path_ids"`
	PathTitles []string   `json:"path_titles"`
}

// CompleteItemID marks a fully finished workflow in resolution payloads.
const CompleteItemID = "complete"

// Summary aggregates task-level counts across the plan.
type Summary struct {
	TotalItems        int `json:"total_items"`
	TotalTasks        int `json:"total_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	PendingTasks      int `json:"pending_tasks"`
	InProgressTasks   int `json:"in_progress_tasks"`
	BlockedTasks      int `json:"blocked_tasks"`
	SkippedTasks      int `json:"skipped_tasks"`
	CompletionPercent int `json:"completion_percent"`
}

// Resolution is the derived routing payload for a reconciled document.
type Resolution struct {
	NextItem NodeRef `json:"next_item"`
	Route    *Route  `json:"route,omitempty"`
	Summary  Summary `json:"summary"`
}

// Complete reports whether every task is complete or skipped.
func (r Resolution) Complete() bool {
	return r.NextItem.ID == CompleteItemID
}

// ExpectedSkill returns the skill name of the resolved route, or "" when
// the workflow is complete or the next task carries no route.
func (r Resolution) ExpectedSkill() string {
	if r.Route == nil {
		return ""
	}
	return r.Route.SkillName
}

// Resolve walks the plan in pre-order and returns the first task whose
// status is neither complete nor skipped, together with its route and a
// plan summary. Resolve is pure: identical documents always yield identical
// resolutions, and callers must never cache one across a mutation.
func Resolve(doc *StateDocument) Resolution {
	var (
		next    *NodeRef
		summary Summary
	)

	WalkPlan(doc.Workflow.Plan, func(item *WorkflowItem, path []*WorkflowItem) {
		summary.TotalItems++
		if item.Kind != KindTask {
			return
		}
		summary.TotalTasks++
		switch item.Status {
		case StatusComplete:
			summary.CompletedTasks++
		case StatusSkipped:
			summary.SkippedTasks++
		case StatusInProgress:
			summary.InProgressTasks++
		case StatusBlocked:
			summary.BlockedTasks++
		default:
			summary.PendingTasks++
		}
		if next == nil && !item.Status.IsTerminal() {
			ref := nodeRef(item, path)
			next = &ref
		}
	})

	done := summary.CompletedTasks + summary.SkippedTasks
	if summary.TotalTasks == 0 {
		summary.CompletionPercent = 100
	} else {
		summary.CompletionPercent = int(math.Round(float64(done) / float64(summary.TotalTasks) * 100))
	}

	if next == nil {
		return Resolution{
			NextItem: NodeRef{
				ID:     CompleteItemID,
				Title:  "Workflow Complete",
				Kind:   "state",
				Status: StatusComplete,
			},
			Summary: summary,
		}
	}

	item := FindItem(doc.Workflow.Plan, next.ID)
	route := item.Route.Clone()
	if route != nil && route.Reason == "" {
		route.Reason = fmt.Sprintf("Next workflow item %q is not complete.", next.Title)
	}
	return Resolution{NextItem: *next, Route: route, Summary: summary}
}

func nodeRef(item *WorkflowItem, path []*WorkflowItem) NodeRef {
	ref := NodeRef{
		ID:     item.ID,
		Kind:   item.Kind,
		Title:  item.Title,
		Status: item.Status,
	}
	for _, ancestor := range path {
		ref.PathIDs = append(ref.PathIDs, ancestor.ID)
		ref.PathTitles = append(ref.PathTitles, ancestor.Title)
	}
	ref.PathIDs = append(ref.PathIDs, item.ID)
	ref.PathTitles = append(ref.PathTitles, item.Title)
	return ref
}
