package core

// SchemaVersion is the current state document schema version. Documents with
// a lower version are lifted by the store's migration step before decoding.
const SchemaVersion = 2

// ProjectMode selects which workflow tasks apply to a project.
type ProjectMode string

const (
	ModeUnknown    ProjectMode = "unknown"
	ModeGreenfield ProjectMode = "greenfield"
	ModeBrownfield ProjectMode = "brownfield"
)

// ParseMode normalizes a stored mode value. Anything unrecognized is unknown.
func ParseMode(s string) ProjectMode {
	switch ProjectMode(s) {
	case ModeGreenfield:
		return ModeGreenfield
	case ModeBrownfield:
		return ModeBrownfield
	default:
		return ModeUnknown
	}
}

// ProjectState holds the legacy boolean flags plus mode and repo settings.
// The completion booleans are views derived from task status on every
// reconcile; they are never read back into the plan.
type ProjectState struct {
	IdeationCompleted                bool        `json:"ideation-completed"`
	ResearchCompleted                bool        `json:"research-completed"`
	BrownfieldIntakeCompleted        bool        `json:"brownfield-intake-completed"`
	BrownfieldDocumentationCompleted bool        `json:"brownfield-documentation-completed"`
	RepoEnabled                      bool        `json:"repo-enabled"`
	ProjectMode                      ProjectMode `json:"project-mode"`
	ScriptsDir                       string      `json:"cadence-scripts-dir"`
}

// Workflow wraps the hierarchical plan.
type Workflow struct {
	Plan []*WorkflowItem `json:"plan"`
}

// StateDocument is the typed root of .cadence/cadence.json.
// Sections the engine does not interpret (project-details, ideation,
// planning) are carried opaquely and round-tripped unchanged.
type StateDocument struct {
	SchemaVersion     int                    `json:"schema_version"`
	PrerequisitesPass bool                   `json:"prerequisites-pass"`
	State             ProjectState           `json:"state"`
	Workflow          Workflow               `json:"workflow"`
	ProjectDetails    map[string]interface{} `json:"project-details"`
	Ideation          map[string]interface{} `json:"ideation"`
	Planning          map[string]interface{} `json:"planning"`
}

// NewDocument returns a document seeded with the canonical default plan.
func NewDocument() *StateDocument {
	doc := &StateDocument{
		SchemaVersion: SchemaVersion,
		Workflow:      Workflow{Plan: DefaultPlan()},
	}
	doc.EnsureDefaults()
	return doc
}

// EnsureDefaults fills absent optional sections with their documented
// defaults. It never touches fields that are already populated.
func (d *StateDocument) EnsureDefaults() {
	if d.SchemaVersion == 0 {
		d.SchemaVersion = SchemaVersion
	}
	if d.State.ProjectMode == "" {
		d.State.ProjectMode = ModeUnknown
	} else {
		d.State.ProjectMode = ParseMode(string(d.State.ProjectMode))
	}
	if len(d.Workflow.Plan) == 0 {
		d.Workflow.Plan = DefaultPlan()
	}
	if d.ProjectDetails == nil {
		d.ProjectDetails = map[string]interface{}{}
	}
	if d.Ideation == nil {
		d.Ideation = map[string]interface{}{}
	}
	if d.Planning == nil {
		d.Planning = map[string]interface{}{}
	}
}

// legacyFlagTasks maps derived boolean flags to the tasks they mirror.
// Sync direction is plan -> flags only.
var legacyFlagTasks = map[string]func(d *StateDocument, complete bool){
	TaskPrerequisiteGate: func(d *StateDocument, complete bool) {
		d.PrerequisitesPass = complete
	},
	TaskIdeation: func(d *StateDocument, complete bool) {
		d.State.IdeationCompleted = complete
	},
	TaskResearch: func(d *StateDocument, complete bool) {
		d.State.ResearchCompleted = complete
	},
	TaskBrownfieldIntake: func(d *StateDocument, complete bool) {
		d.State.BrownfieldIntakeCompleted = complete
	},
	TaskBrownfieldDocumentation: func(d *StateDocument, complete bool) {
		d.State.BrownfieldDocumentationCompleted = complete
	},
}

// SyncLegacyFlags recomputes every legacy boolean from its task's status.
// A skipped task does not count as completed for flag purposes: the flag
// mirrors real completion, not rollup convenience.
func SyncLegacyFlags(d *StateDocument) {
	for id, set := range legacyFlagTasks {
		item := FindItem(d.Workflow.Plan, id)
		if item == nil {
			continue
		}
		set(d, item.Status == StatusComplete)
	}
}
