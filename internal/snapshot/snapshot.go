// Package snapshot persists a flat, versionless copy of the three
// collections so a terminal stays usable with no remote service configured.
// Absence of the file means "start from the built-in seed data"; there is
// no schema migration.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
	"github.com/polkiloo/warungpos/internal/wire"
)

// Keeper reads and writes the local snapshot file. The on-disk layout is a
// plain wire.Bundle, one key per collection.
type Keeper struct {
	path   string
	logger *slog.Logger
}

// NewKeeper creates a keeper for the given path. An empty path disables
// persistence: Load returns seed data and Save is a no-op.
func NewKeeper(path string, logger *slog.Logger) *Keeper {
	return &Keeper{path: path, logger: logger}
}

// Load reads the persisted snapshot, falling back to the seed dataset when
// the file is absent or unreadable. A corrupt file is reported but never
// fatal.
func (k *Keeper) Load(now time.Time) model.Snapshot {
	if k.path == "" {
		return Seed()
	}

	raw, err := os.ReadFile(k.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			k.logger.Warn("snapshot unreadable, using seed data", slog.String("error", err.Error()))
		}
		return Seed()
	}

	var f wire.Bundle
	if err := json.Unmarshal(raw, &f); err != nil {
		k.logger.Warn("snapshot corrupt, using seed data", slog.String("error", err.Error()))
		return Seed()
	}

	snap := wire.SnapshotFromBundle(f, now)

	if len(snap.MenuItems) == 0 {
		snap.MenuItems = Seed().MenuItems
	}
	if len(snap.Users) == 0 {
		snap.Users = Seed().Users
	}
	return snap
}

// Save writes the snapshot atomically (temp file, then rename).
func (k *Keeper) Save(snap model.Snapshot) error {
	if k.path == "" {
		return nil
	}

	raw, err := json.MarshalIndent(wire.BundleFromSnapshot(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(k.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, k.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
