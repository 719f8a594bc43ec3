// Package syncer projects SSOT skill directories into per-application skill
// directories, either as a symlink or as a recursive copy. The auto method
// prefers a symlink and falls back to a copy on any symlink failure, so
// callers never need to know which strategy was used.
package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/store"
	"github.com/smy-101/skillsync/internal/types"
)

// Syncer creates and removes per-application projections of SSOT entries.
type Syncer struct {
	logger Logger
}

// New creates a Syncer with a NoOpLogger.
func New() *Syncer {
	return &Syncer{logger: NoOpLogger{}}
}

// SetLogger replaces the logger used for fallback and best-effort warnings.
func (s *Syncer) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Project makes one skill visible to one application. Re-projecting an
// already-correct link or copy is safe: any existing target is removed
// first, so the call is idempotent from the caller's point of view.
func (s *Syncer) Project(directory string, app types.AppType, method types.SyncMethod) error {
	source, err := store.SkillPath(directory)
	if err != nil {
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to resolve SSOT path", Err: err}
	}
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return &SyncError{
				Type:    ErrorTypeSkillNotFound,
				Message: fmt.Sprintf("skill '%s' not found in SSOT store", directory),
			}
		}
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to stat SSOT entry", Err: err}
	}

	appDir, err := settings.AppSkillsDir(app)
	if err != nil {
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to resolve app skills dir", Err: err}
	}
	// App dirs are created only when a projection is actually written.
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to create app skills dir", Err: err}
	}

	dest := filepath.Join(appDir, directory)
	if err := removeProjection(dest); err != nil {
		return err
	}

	switch method {
	case types.SyncSymlink:
		if err := createSymlink(source, dest); err != nil {
			return &SyncError{
				Type:    ErrorTypeSymlink,
				Message: fmt.Sprintf("failed to create symlink '%s' -> '%s'", dest, source),
				Err:     err,
			}
		}
		return nil
	case types.SyncCopy:
		if err := store.CopyDir(source, dest); err != nil {
			return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to copy skill into app dir", Err: err}
		}
		return nil
	default: // auto
		if err := createSymlink(source, dest); err != nil {
			s.logger.Warn("symlink failed, falling back to copy",
				"skill", directory, "app", string(app), "error", err)
			if err := store.CopyDir(source, dest); err != nil {
				return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to copy skill into app dir", Err: err}
			}
		}
		return nil
	}
}

// Unproject removes one skill from one application's directory. Absent
// targets are a no-op.
func (s *Syncer) Unproject(directory string, app types.AppType) error {
	appDir, err := settings.AppSkillsDir(app)
	if err != nil {
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to resolve app skills dir", Err: err}
	}
	return removeProjection(filepath.Join(appDir, directory))
}

// removeProjection deletes an existing projection target. A symlink is
// removed as the link itself; a real directory is removed recursively. The
// link is never resolved, so the SSOT source can't be deleted through it.
func removeProjection(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to stat projection target", Err: err}
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := removeSymlink(path); err != nil {
			return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to remove symlink", Err: err}
		}
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return &SyncError{Type: ErrorTypeFilesystem, Message: "failed to remove projection", Err: err}
	}
	return nil
}

// SyncApp re-projects every skill enabled for one application.
func (s *Syncer) SyncApp(index *types.Index, app types.AppType) error {
	for _, skill := range index.Skills {
		if !skill.Apps.EnabledFor(app) {
			continue
		}
		if err := s.Project(skill.Directory, app, index.SyncMethod); err != nil {
			return err
		}
	}
	return nil
}

// SyncAllEnabled re-projects every installed skill into every application
// it is enabled for. Safe to call redundantly.
func (s *Syncer) SyncAllEnabled(index *types.Index) error {
	for _, app := range types.AllApps() {
		if err := s.SyncApp(index, app); err != nil {
			return err
		}
	}
	return nil
}

// SyncAllEnabledBestEffort is SyncAllEnabled for opportunistic triggers:
// per-app failures are logged and skipped instead of aborting the rest.
func (s *Syncer) SyncAllEnabledBestEffort(index *types.Index) {
	for _, app := range types.AllApps() {
		if err := s.SyncApp(index, app); err != nil {
			s.logger.Warn("best-effort sync failed", "app", string(app), "error", err)
		}
	}
}
