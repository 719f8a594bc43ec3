// Package registry persists the skills index (skills.json), the single
// source of record for repositories and installed skills. Writes are atomic
// (temp file + rename). Stores written by the legacy single-app format are
// upgraded transparently on load, with the old file backed up alongside.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/types"
)

var registryMutexes sync.Map

// legacyState is the legacy per-directory install state (Claude-only era).
type legacyState struct {
	Installed   bool      `json:"installed"`
	InstalledAt time.Time `json:"installedAt"`
}

// legacyStore is the legacy skills.json layout, recognized by the absence
// of a "version" field.
type legacyStore struct {
	Skills map[string]legacyState `json:"skills"`
	Repos  []types.Repo           `json:"repos"`
}

// LoadIndex returns the current index. A fresh index (with migration
// pending) is created and saved if no store file exists. Corrupt JSON is a
// fatal read error, never auto-repaired.
func LoadIndex() (*types.Index, error) {
	path, err := settings.IndexPath()
	if err != nil {
		return nil, err
	}
	return LoadIndexWithPath(path)
}

// LoadIndexWithPath is LoadIndex against an explicit file location.
func LoadIndexWithPath(path string) (*types.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			index := types.NewIndex()
			index.MigrationPending = true
			if err := SaveIndexWithPath(path, index); err != nil {
				return nil, err
			}
			return index, nil
		}
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse index file '%s': %w", path, err)
	}

	if probe.Version != nil {
		var index types.Index
		if err := json.Unmarshal(data, &index); err != nil {
			return nil, fmt.Errorf("failed to parse index file '%s': %w", path, err)
		}
		if index.Version == 0 {
			index.Version = types.IndexVersion
		}
		if index.Skills == nil {
			index.Skills = make(map[string]types.InstalledSkill)
		}
		if index.SyncMethod == "" {
			index.SyncMethod = types.SyncAuto
		}
		return &index, nil
	}

	index, err := upgradeLegacy(path, data)
	if err != nil {
		return nil, err
	}
	if err := SaveIndexWithPath(path, index); err != nil {
		return nil, err
	}
	return index, nil
}

// upgradeLegacy converts a versionless legacy store into the current index
// format. Every installed legacy entry becomes a Claude-only local record,
// and migration is forced so SSOT gets populated on the next operation.
func upgradeLegacy(path string, data []byte) (*types.Index, error) {
	var legacy legacyStore
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse legacy index file '%s': %w", path, err)
	}

	// Backup is best effort.
	backupPath := path + ".bak"
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to back up legacy index: %v\n", err)
	}

	index := types.NewIndex()
	index.MigrationPending = true
	if len(legacy.Repos) > 0 {
		index.Repos = legacy.Repos
	}

	for directory, state := range legacy.Skills {
		if !state.Installed {
			continue
		}
		index.Skills[directory] = types.InstalledSkill{
			ID:          "local:" + directory,
			Name:        directory,
			Directory:   directory,
			Apps:        types.OnlyApp(types.AppClaude),
			InstalledAt: state.InstalledAt.Unix(),
		}
	}

	return index, nil
}

// SaveIndex writes the index atomically to the default location.
func SaveIndex(index *types.Index) error {
	path, err := settings.IndexPath()
	if err != nil {
		return err
	}
	return SaveIndexWithPath(path, index)
}

// SaveIndexWithPath writes the index atomically to an explicit location.
func SaveIndexWithPath(path string, index *types.Index) error {
	muIface, _ := registryMutexes.LoadOrStore(path, &sync.Mutex{})
	mu, ok := muIface.(*sync.Mutex)
	if !ok {
		return fmt.Errorf("failed to get mutex for index path")
	}
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary index file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename index file: %w", err)
	}

	return nil
}
