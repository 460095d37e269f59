package core

import "fmt"

// Reconcile brings a document to its canonical derived state:
// defaults -> plan normalization -> mode overrides -> rollup -> flag sync.
// It is idempotent: reconciling an already reconciled document is a no-op.
func Reconcile(doc *StateDocument) error {
	doc.EnsureDefaults()
	if err := NormalizePlan(doc.Workflow.Plan); err != nil {
		return err
	}
	ApplyModeOverrides(doc.Workflow.Plan, doc.State.ProjectMode)
	RollupPlan(doc.Workflow.Plan)
	SyncLegacyFlags(doc)
	return nil
}

// SetItemStatus sets the status of a task and reconciles the document.
// Only task statuses are primary facts: targeting a non-leaf item fails,
// as does setting skipped, which is reserved for mode overrides.
func SetItemStatus(doc *StateDocument, itemID string, status ItemStatus) error {
	if !ValidStatus(status) {
		return ErrValidation(CodeInvalidStatus, fmt.Sprintf("unsupported status %q", status))
	}
	if status == StatusSkipped {
		return ErrValidation(CodeInvalidStatus,
			"skipped is reserved for project-mode overrides")
	}
	if err := Reconcile(doc); err != nil {
		return err
	}

	item := FindItem(doc.Workflow.Plan, itemID)
	if item == nil {
		return ErrItemNotFound(itemID)
	}
	if item.Kind != KindTask {
		return ErrValidation(CodeInvalidStatusTarget,
			fmt.Sprintf("status of %s %q is derived from its children", item.Kind, itemID))
	}

	item.Status = status
	return Reconcile(doc)
}
