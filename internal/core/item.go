package core

import "fmt"

// ItemKind identifies the level of a node in the workflow hierarchy.
type ItemKind string

const (
	KindMilestone ItemKind = "milestone"
	KindPhase     ItemKind = "phase"
	KindWave      ItemKind = "wave"
	KindTask      ItemKind = "task"
)

// ItemStatus represents the state of a workflow item.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusComplete   ItemStatus = "complete"
	StatusBlocked    ItemStatus = "blocked"
	StatusSkipped    ItemStatus = "skipped"
)

// ValidStatus checks if a status string is one of the known states.
func ValidStatus(s ItemStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete, StatusBlocked, StatusSkipped:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to an ItemStatus with validation.
func ParseStatus(s string) (ItemStatus, error) {
	st := ItemStatus(s)
	if !ValidStatus(st) {
		return "", ErrValidation(CodeInvalidStatus, fmt.Sprintf("unsupported status %q", s))
	}
	return st, nil
}

// IsTerminal returns true for statuses that count as done during rollup.
func (s ItemStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusSkipped
}

// String returns the string representation of the status.
func (s ItemStatus) String() string {
	return string(s)
}

// Route points at the external capability that should act on a task next.
type Route struct {
	SkillName string `json:"skill_name"`
	SkillPath string `json:"skill_path"`
	Reason    string `json:"reason"`
}

// Clone returns a copy of the route.
func (r *Route) Clone() *Route {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// WorkflowItem is one node of the hierarchical plan.
// Only task nodes carry a route; only task statuses are primary facts,
// every non-leaf status is derived by rollup.
type WorkflowItem struct {
	ID       string          `json:"id"`
	Kind     ItemKind        `json:"kind"`
	Title    string          `json:"title"`
	Status   ItemStatus      `json:"status"`
	Route    *Route          `json:"route,omitempty"`
	Children []*WorkflowItem `json:"children"`
}

// IsLeaf returns true when the item has no children.
func (it *WorkflowItem) IsLeaf() bool {
	return len(it.Children) == 0
}

// FindItem returns the first item with the given id in a pre-order walk.
func FindItem(plan []*WorkflowItem, id string) *WorkflowItem {
	for _, item := range plan {
		if item.ID == id {
			return item
		}
		if found := FindItem(item.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// WalkPlan visits every item in pre-order (parent before children, children
// in declared order). The visitor receives the item and its ancestor path.
func WalkPlan(plan []*WorkflowItem, visit func(item *WorkflowItem, path []*WorkflowItem)) {
	var walk func(items []*WorkflowItem, path []*WorkflowItem)
	walk = func(items []*WorkflowItem, path []*WorkflowItem) {
		for _, item := range items {
			visit(item, path)
			walk(item.Children, append(path, item))
		}
	}
	walk(plan, nil)
}
