package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// lockInfo records who holds the state lock.
type lockInfo struct {
	PID        int       `json:"pid"`
	Hostname   string    `json:"hostname"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// AcquireLock takes the advisory lock next to the state file. A lock left
// behind by a dead or timed-out process is treated as stale and replaced.
func (s *Store) AcquireLock(_ context.Context) error {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	if data, err := os.ReadFile(s.lockPath); err == nil {
		var info lockInfo
		if err := json.Unmarshal(data, &info); err == nil {
			if time.Since(info.AcquiredAt) < s.lockTTL && processExists(info.PID) {
				return core.ErrState(core.CodeLockAcquireFailed,
					fmt.Sprintf("state locked by PID %d on %s since %s",
						info.PID, info.Hostname, info.AcquiredAt.Format(time.RFC3339)))
			}
		}
		// Stale or unreadable lock, remove it.
		os.Remove(s.lockPath)
	}

	hostname, _ := os.Hostname()
	info := lockInfo{
		PID:        os.Getpid(),
		Hostname:   hostname,
		AcquiredAt: time.Now(),
	}
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling lock info: %w", err)
	}

	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return core.ErrState(core.CodeLockAcquireFailed, "lock file created by another process")
		}
		return fmt.Errorf("creating lock file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(s.lockPath)
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// ReleaseLock removes the lock if this process owns it.
func (s *Store) ReleaseLock(_ context.Context) error {
	data, err := os.ReadFile(s.lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading lock file: %w", err)
	}

	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("parsing lock info: %w", err)
	}
	if info.PID != os.Getpid() {
		return core.ErrState(core.CodeLockReleaseFailed, "lock owned by different process")
	}
	return os.Remove(s.lockPath)
}
