package core

import (
	"fmt"
	"strings"
)

// Canonical task ids of the default plan.
const (
	TaskScaffold                = "task-scaffold"
	TaskPrerequisiteGate        = "task-prerequisite-gate"
	TaskBrownfieldIntake        = "task-brownfield-intake"
	TaskBrownfieldDocumentation = "task-brownfield-documentation"
	TaskIdeation                = "task-ideation"
	TaskResearch                = "task-research"
	TaskRoadmapPlanning         = "task-roadmap-planning"
)

// defaultRoutes maps known task ids to their canonical routes. Normalization
// falls back to these whenever a stored route is missing or partial.
var defaultRoutes = map[string]Route{
	TaskScaffold: {
		SkillName: "scaffold",
		SkillPath: "skills/scaffold/SKILL.md",
		Reason:    "Project scaffolding has not completed yet.",
	},
	TaskPrerequisiteGate: {
		SkillName: "prerequisite-gate",
		SkillPath: "skills/prerequisite-gate/SKILL.md",
		Reason:    "Prerequisite gate has not passed yet.",
	},
	TaskBrownfieldIntake: {
		SkillName: "brownfield-intake",
		SkillPath: "skills/brownfield-intake/SKILL.md",
		Reason:    "Project mode and baseline inventory have not been captured yet.",
	},
	TaskBrownfieldDocumentation: {
		SkillName: "brownfield-documenter",
		SkillPath: "skills/brownfield-documenter/SKILL.md",
		Reason:    "Existing codebase documentation has not been produced yet.",
	},
	TaskIdeation: {
		SkillName: "ideator",
		SkillPath: "skills/ideator/SKILL.md",
		Reason:    "Ideation has not been completed yet.",
	},
	TaskResearch: {
		SkillName: "researcher",
		SkillPath: "skills/researcher/SKILL.md",
		Reason:    "Research has not been completed yet.",
	},
	TaskRoadmapPlanning: {
		SkillName: "planner",
		SkillPath: "skills/planner/SKILL.md",
		Reason:    "Roadmap planning has not been completed yet.",
	},
}

// DefaultRoute returns the canonical route for a task id, or nil.
func DefaultRoute(id string) *Route {
	if r, ok := defaultRoutes[id]; ok {
		return &r
	}
	return nil
}

// DefaultPlan returns the canonical workflow hierarchy seeded by scaffold.
// The shape is milestone -> phase -> wave -> task and can be extended by
// adding entries to workflow.plan.
func DefaultPlan() []*WorkflowItem {
	task := func(id, title string) *WorkflowItem {
		return &WorkflowItem{
			ID:     id,
			Kind:   KindTask,
			Title:  title,
			Status: StatusPending,
			Route:  DefaultRoute(id),
		}
	}
	return []*WorkflowItem{
		{
			ID:     "milestone-foundation",
			Kind:   KindMilestone,
			Title:  "Foundation",
			Status: StatusPending,
			Children: []*WorkflowItem{
				{
					ID:     "phase-project-setup",
					Kind:   KindPhase,
					Title:  "Project Setup",
					Status: StatusPending,
					Children: []*WorkflowItem{
						{
							ID:     "wave-initialize-cadence",
							Kind:   KindWave,
							Title:  "Initialize Cadence",
							Status: StatusPending,
							Children: []*WorkflowItem{
								task(TaskScaffold, "Scaffold project"),
								task(TaskPrerequisiteGate, "Run prerequisite gate"),
								task(TaskBrownfieldIntake, "Capture project mode and baseline"),
								task(TaskBrownfieldDocumentation, "Document existing codebase"),
								task(TaskIdeation, "Complete ideation"),
								task(TaskResearch, "Complete research"),
								task(TaskRoadmapPlanning, "Plan delivery roadmap"),
							},
						},
					},
				},
			},
		},
	}
}

// NormalizePlan repairs a stored plan in place: empty ids get positional
// fallbacks, kinds are inferred from shape, titles default to the id,
// statuses are coerced to valid values, and task routes are completed from
// the canonical defaults. Returns a schema error when ids collide, since
// routing over an ambiguous tree would be undefined.
func NormalizePlan(plan []*WorkflowItem) error {
	seen := make(map[string]bool)
	var normalize func(items []*WorkflowItem, parentID string) error
	normalize = func(items []*WorkflowItem, parentID string) error {
		for i, item := range items {
			if item.ID = strings.TrimSpace(item.ID); item.ID == "" {
				item.ID = fmt.Sprintf("%s-child-%d", parentID, i+1)
			}
			if seen[item.ID] {
				return ErrValidation(CodeDuplicateItemID,
					fmt.Sprintf("duplicate workflow item id %q", item.ID))
			}
			seen[item.ID] = true

			if item.Kind == "" {
				if item.IsLeaf() {
					item.Kind = KindTask
				} else {
					item.Kind = KindPhase
				}
			}
			if item.Title = strings.TrimSpace(item.Title); item.Title == "" {
				item.Title = item.ID
			}
			if !ValidStatus(item.Status) {
				item.Status = StatusPending
			}
			if item.Kind == KindTask {
				item.Route = mergeRoute(item.ID, item.Route)
			} else {
				// Routes are a task-only field.
				item.Route = nil
			}
			if err := normalize(item.Children, item.ID); err != nil {
				return err
			}
		}
		return nil
	}
	return normalize(plan, "item")
}

// mergeRoute overlays stored route fields on the canonical default for the id.
func mergeRoute(id string, stored *Route) *Route {
	base := DefaultRoute(id)
	if base == nil {
		base = &Route{}
	}
	if stored != nil {
		if s := strings.TrimSpace(stored.SkillName); s != "" {
			base.SkillName = s
		}
		if s := strings.TrimSpace(stored.SkillPath); s != "" {
			base.SkillPath = s
		}
		if s := strings.TrimSpace(stored.Reason); s != "" {
			base.Reason = s
		}
	}
	if base.SkillName == "" && base.SkillPath == "" && base.Reason == "" {
		return nil
	}
	return base
}
