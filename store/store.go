// Package store persists game snapshots as JSON save files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	uuid "github.com/satori/go.uuid"

	"catan/game"
)

// Meta identifies a save without loading the whole game.
type Meta struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Turn    int       `json:"turn"`
	Phase   string    `json:"phase"`
	Players []string  `json:"players"`
}

// SaveFile is the on-disk layout: metadata header plus the full snapshot.
type SaveFile struct {
	Meta     Meta           `json:"meta"`
	Snapshot *game.Snapshot `json:"snapshot"`
}

// Save writes a snapshot to path, creating parent directories as needed. The
// file is written whole; a failed write never leaves a readable partial save.
func Save(path, name string, snap *game.Snapshot) (Meta, error) {
	meta := Meta{
		ID:      uuid.NewV4().String(),
		Name:    name,
		SavedAt: time.Now().UTC(),
		Turn:    snap.Turn,
		Phase:   snap.Phase,
	}
	for _, p := range snap.Players {
		meta.Players = append(meta.Players, p.Name)
	}

	data, err := json.MarshalIndent(SaveFile{Meta: meta, Snapshot: snap}, "", "  ")
	if err != nil {
		return Meta{}, fmt.Errorf("failed to encode save: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Meta{}, fmt.Errorf("failed to create save directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return Meta{}, fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Meta{}, fmt.Errorf("failed to finalize save: %w", err)
	}
	return meta, nil
}

// Load reads a save file. The snapshot is decoded but not validated; callers
// restore it through the engine, which rejects corrupt state.
func Load(path string) (*game.Snapshot, Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to read save: %w", err)
	}
	var file SaveFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", game.ErrCorruptSnapshot, err)
	}
	if file.Snapshot == nil {
		return nil, Meta{}, fmt.Errorf("%w: save has no snapshot", game.ErrCorruptSnapshot)
	}
	return file.Snapshot, file.Meta, nil
}

// List returns the metadata of every .json save under dir, newest first.
// Unreadable files are skipped.
func List(dir string) ([]Meta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var metas []Meta
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if _, meta, err := Load(filepath.Join(dir, entry.Name())); err == nil {
			metas = append(metas, meta)
		}
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].SavedAt.After(metas[j].SavedAt)
	})
	return metas, nil
}
