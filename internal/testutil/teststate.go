package testutil

import (
	"testing"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// Document builds a reconciled state document for tests. Statuses maps task
// ids to the status they should carry; every other task stays pending.
func Document(t *testing.T, mode core.ProjectMode, statuses map[string]core.ItemStatus) *core.StateDocument {
	t.Helper()
	doc := core.NewDocument()
	doc.State.ProjectMode = mode
	if err := core.Reconcile(doc); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	for id, status := range statuses {
		if err := core.SetItemStatus(doc, id, status); err != nil {
			t.Fatalf("set %s=%s: %v", id, status, err)
		}
	}
	return doc
}
