package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// StateDirName is the project-local directory holding cadence files.
const StateDirName = ".cadence"

// StateFileName is the workflow state document inside StateDirName.
const StateFileName = "cadence.json"

// Store persists the workflow state document as a JSON file under the
// project root. All writes are atomic; a companion lock file serializes
// read-modify-write cycles between concurrent invocations.
type Store struct {
	path     string
	lockPath string
	lockTTL  time.Duration
}

// StoreOption configures the store.
type StoreOption func(*Store)

// NewStore creates a store rooted at the given project directory.
func NewStore(projectRoot string, opts ...StoreOption) *Store {
	path := filepath.Join(projectRoot, StateDirName, StateFileName)
	s := &Store{
		path:     path,
		lockPath: path + ".lock",
		lockTTL:  time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLockTTL sets the staleness threshold for abandoned locks.
func WithLockTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.lockTTL = ttl
	}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Exists checks if the state file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads, migrates, and reconciles the state document. A missing file
// yields a fresh default document. A file whose root is not a JSON object
// is unrecoverable and returns a schema error; missing sections inside a
// valid object are repaired by defaulting.
func (s *Store) Load(_ context.Context) (*core.StateDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := core.NewDocument()
			if err := core.Reconcile(doc); err != nil {
				return nil, err
			}
			return doc, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	raw, err := decodeRoot(data)
	if err != nil {
		return nil, err
	}
	if err := migrateSchema(raw); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding state document: %w", err)
	}

	var doc core.StateDocument
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, core.ErrSchema(fmt.Sprintf("state document does not match schema: %v", err))
	}
	if err := core.Reconcile(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save reconciles and persists the document atomically. The on-disk form
// uses four-space indentation and a trailing newline so that repeated
// saves of the same document are byte-identical.
func (s *Store) Save(_ context.Context, doc *core.StateDocument) error {
	if err := core.Reconcile(doc); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := atomicWriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// CreateDefault writes a fresh default document unless the file already
// exists, in which case it is left untouched. It reports whether a file
// was created.
func (s *Store) CreateDefault(ctx context.Context) (bool, error) {
	if s.Exists() {
		return false, nil
	}
	doc := core.NewDocument()
	if err := s.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Update runs fn inside a lock-load-save cycle. The callback receives the
// reconciled document and may mutate it; a nil error persists the result.
func (s *Store) Update(ctx context.Context, fn func(*core.StateDocument) error) (*core.StateDocument, error) {
	if err := s.AcquireLock(ctx); err != nil {
		return nil, err
	}
	defer s.ReleaseLock(ctx) //nolint:errcheck

	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeRoot parses the raw file and enforces that the root is an object.
func decodeRoot(data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, core.ErrSchema(fmt.Sprintf("state file is not a JSON object: %v", err))
	}
	return raw, nil
}

// migrateSchema lifts documents written by older releases to the current
// layout. Version 1 kept schema_version nested under workflow; it moves to
// the root and the document is stamped with the current version. The stored
// version gates the migration: a version newer than this release fails with
// a schema error instead of being silently rewritten to the older shape.
func migrateSchema(raw map[string]interface{}) error {
	version := storedSchemaVersion(raw)
	if version > core.SchemaVersion {
		return core.ErrSchema(fmt.Sprintf(
			"state document schema_version %d is newer than supported version %d",
			version, core.SchemaVersion))
	}
	if version < core.SchemaVersion {
		if wf, ok := raw["workflow"].(map[string]interface{}); ok {
			delete(wf, "schema_version")
		}
		raw["schema_version"] = core.SchemaVersion
	}
	return nil
}

// storedSchemaVersion reads the document's version: at the root for v2 and
// later, nested under workflow for v1. An absent or malformed version counts
// as 0, which the lift path repairs.
func storedSchemaVersion(raw map[string]interface{}) int {
	if v, ok := intField(raw["schema_version"]); ok {
		return v
	}
	if wf, ok := raw["workflow"].(map[string]interface{}); ok {
		if v, ok := intField(wf["schema_version"]); ok {
			return v
		}
	}
	return 0
}

func intField(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func encodeDocument(doc *core.StateDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling state document: %w", err)
	}
	// Encoder already appends exactly one newline.
	return buf.Bytes(), nil
}
