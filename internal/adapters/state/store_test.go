package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestStore_CreateDefault(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.CreateDefault(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, store.Exists())

	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// Second call must not touch the existing file.
	created, err = store.CreateDefault(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStore_SaveIsByteStable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := core.NewDocument()
	require.NoError(t, store.Save(ctx, doc))
	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))
	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.True(t, len(first) > 0 && first[len(first)-1] == '\n', "file must end with newline")
}

func TestStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.SchemaVersion, doc.SchemaVersion)
	assert.NotNil(t, core.FindItem(doc.Workflow.Plan, core.TaskScaffold))
	assert.False(t, store.Exists(), "load must not create the file")
}

func TestStore_LoadRepairsMissingSections(t *testing.T) {
	store := newTestStore(t)
	writeStateFile(t, store, `{"state": {"project-mode": "greenfield"}}`)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.ModeGreenfield, doc.State.ProjectMode)
	require.NotEmpty(t, doc.Workflow.Plan)
	skipped := core.FindItem(doc.Workflow.Plan, core.TaskBrownfieldDocumentation)
	require.NotNil(t, skipped)
	assert.Equal(t, core.StatusSkipped, skipped.Status)
}

func TestStore_LoadRejectsNonObjectRoot(t *testing.T) {
	for name, body := range map[string]string{
		"array":   `[1, 2, 3]`,
		"scalar":  `42`,
		"garbage": `{not json`,
	} {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t)
			writeStateFile(t, store, body)

			_, err := store.Load(context.Background())
			require.Error(t, err)
			assert.True(t, core.IsCode(err, core.CodeSchemaError), "got %v", err)
		})
	}
}

func TestStore_LoadMigratesV1Layout(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	writeStateFile(t, store, `{
        "workflow": {
            "schema_version": 1,
            "plan": []
        },
        "state": {"project-mode": "brownfield"}
    }`)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, core.ModeBrownfield, doc.State.ProjectMode)

	require.NoError(t, store.Save(ctx, doc))
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schema_version": 2`)
	assert.NotContains(t, string(data), `"schema_version": 1`)
}

func TestStore_LoadRejectsNewerSchemaVersion(t *testing.T) {
	store := newTestStore(t)
	body := `{"schema_version": 3, "workflow": {"plan": []}}`
	writeStateFile(t, store, body)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsCode(err, core.CodeSchemaError), "got %v", err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, body, string(data), "a rejected document must stay untouched")
}

func TestStore_UpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc, err := store.Update(ctx, func(doc *core.StateDocument) error {
		return core.SetItemStatus(doc, core.TaskScaffold, core.StatusComplete)
	})
	require.NoError(t, err)
	assert.Equal(t, core.StatusComplete,
		core.FindItem(doc.Workflow.Plan, core.TaskScaffold).Status)

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusComplete,
		core.FindItem(reloaded.Workflow.Plan, core.TaskScaffold).Status)

	// Lock released after Update.
	require.NoError(t, store.AcquireLock(ctx))
	require.NoError(t, store.ReleaseLock(ctx))
}

func TestStore_UpdateErrorDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.CreateDefault(ctx)
	require.NoError(t, err)

	_, err = store.Update(ctx, func(doc *core.StateDocument) error {
		return core.SetItemStatus(doc, "task-missing", core.StatusComplete)
	})
	require.Error(t, err)
	assert.True(t, core.IsCode(err, core.CodeItemNotFound))

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending,
		core.FindItem(doc.Workflow.Plan, core.TaskScaffold).Status)
}

func TestStore_LockConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AcquireLock(ctx))
	err := store.AcquireLock(ctx)
	require.Error(t, err)
	assert.True(t, core.IsCode(err, core.CodeLockAcquireFailed))

	require.NoError(t, store.ReleaseLock(ctx))
	require.NoError(t, store.AcquireLock(ctx))
	require.NoError(t, store.ReleaseLock(ctx))
}

func TestStore_StaleLockIsReclaimed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir(), WithLockTTL(time.Millisecond))

	require.NoError(t, store.AcquireLock(ctx))
	time.Sleep(5 * time.Millisecond)

	// TTL expired even though the holding process is alive.
	require.NoError(t, store.AcquireLock(ctx))
	require.NoError(t, store.ReleaseLock(ctx))
}

func TestStore_ReleaseWithoutLockIsNoop(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ReleaseLock(context.Background()))
}

func writeStateFile(t *testing.T, store *Store, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(body), 0o644))
}
