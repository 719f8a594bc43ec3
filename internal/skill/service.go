// Package skill is the service layer of the synchronization engine. It ties
// the persistent index, the SSOT store, the projection syncer, and repo
// discovery together into the install/uninstall/toggle/sync operations the
// CLI exposes.
package skill

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/smy-101/skillsync/internal/discovery"
	"github.com/smy-101/skillsync/internal/registry"
	"github.com/smy-101/skillsync/internal/store"
	"github.com/smy-101/skillsync/internal/syncer"
	"github.com/smy-101/skillsync/internal/types"
)

// Service orchestrates skill management operations.
type Service struct {
	discovery *discovery.Discovery
	syncer    *syncer.Syncer
	logger    Logger
}

// NewService creates a Service backed by the given discovery engine.
func NewService(d *discovery.Discovery) *Service {
	return &Service{
		discovery: d,
		syncer:    syncer.New(),
		logger:    NoOpLogger{},
	}
}

// SetLogger wires a logger into the service and its collaborators.
func (s *Service) SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	s.logger = logger
	s.syncer.SetLogger(logger)
	s.discovery.SetLogger(logger)
}

// Syncer exposes the projection engine for callers that sync directly.
func (s *Service) Syncer() *syncer.Syncer {
	return s.syncer
}

// loadIndex loads the index and runs the one-time migration if pending.
func (s *Service) loadIndex() (*types.Index, error) {
	index, err := registry.LoadIndex()
	if err != nil {
		return nil, err
	}
	if _, err := s.MigrateSSOTIfPending(index); err != nil {
		s.logger.Warn("skill migration failed", "error", err)
	}
	return index, nil
}

// ListInstalled returns every managed skill, sorted by case-insensitive
// name. Loading triggers pending migration first.
func (s *Service) ListInstalled() ([]types.InstalledSkill, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	skills := make([]types.InstalledSkill, 0, len(index.Skills))
	for _, skill := range index.Skills {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
	return skills, nil
}

// resolveDirectory maps a user-supplied directory or id onto the index key:
// exact match first, then case-insensitive directory, then id.
func resolveDirectory(index *types.Index, input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	if _, ok := index.Skills[trimmed]; ok {
		return trimmed, true
	}

	for dir := range index.Skills {
		if strings.EqualFold(dir, trimmed) {
			return dir, true
		}
	}

	for dir, skill := range index.Skills {
		if strings.EqualFold(skill.ID, trimmed) {
			return dir, true
		}
	}

	return "", false
}

// Install resolves spec against the configured repositories and installs
// the matching skill for one application.
//
// Directory names are the global primary key: a collision with a skill
// owned by a different repository is a hard error and leaves both the index
// and SSOT untouched. A collision with the same repository is treated as
// "already installed" and just enables the app.
func (s *Service) Install(spec string, app types.AppType) (*types.InstalledSkill, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, &SkillError{Type: ErrorTypeInvalidInput, Message: "install spec cannot be empty"}
	}

	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	available := s.discovery.DiscoverAvailable(index.Repos)
	found, err := discovery.ResolveInstallSpec(spec, available)
	if err != nil {
		return nil, err
	}

	// The install directory is always the final path segment.
	installName := path.Base(strings.Trim(found.Directory, "/"))

	if existing, ok := index.Skills[installName]; ok {
		sameRepo := existing.RepoOwner == found.RepoOwner && existing.RepoName == found.RepoName
		if !sameRepo && (existing.RepoOwner != "" || existing.RepoName != "" || strings.HasPrefix(existing.ID, "local:")) {
			existingRepo := "unknown"
			if existing.RepoOwner != "" || existing.RepoName != "" {
				existingRepo = existing.RepoOwner + "/" + existing.RepoName
			}
			return nil, &SkillError{
				Type: ErrorTypeConflict,
				Message: fmt.Sprintf(
					"directory '%s' is already used by a skill from %s; uninstall it before installing from %s/%s",
					installName, existingRepo, found.RepoOwner, found.RepoName),
			}
		}

		// Already installed from the same repo: enable the app and re-project.
		existing.Apps.SetEnabled(app, true)
		index.Skills[installName] = existing
		if err := registry.SaveIndex(index); err != nil {
			return nil, err
		}
		if err := s.syncer.Project(installName, app, index.SyncMethod); err != nil {
			return nil, err
		}
		return &existing, nil
	}

	exists, err := store.Exists(installName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.downloadIntoStore(found, installName); err != nil {
			return nil, err
		}
	}

	installed := types.InstalledSkill{
		ID:          found.Key,
		Name:        found.Name,
		Description: found.Description,
		Directory:   installName,
		ReadmeURL:   found.ReadmeURL,
		RepoOwner:   found.RepoOwner,
		RepoName:    found.RepoName,
		RepoBranch:  found.RepoBranch,
		Apps:        types.OnlyApp(app),
		InstalledAt: time.Now().Unix(),
	}

	index.Skills[installName] = installed
	if err := registry.SaveIndex(index); err != nil {
		return nil, err
	}
	if err := s.syncer.Project(installName, app, index.SyncMethod); err != nil {
		return nil, err
	}

	return &installed, nil
}

// downloadIntoStore fetches the skill's repository and copies the skill
// subdirectory into SSOT.
func (s *Service) downloadIntoStore(found types.DiscoverableSkill, installName string) error {
	repo := types.Repo{
		Owner:      found.RepoOwner,
		Name:       found.RepoName,
		Branch:     found.RepoBranch,
		Enabled:    true,
		SkillsPath: found.SkillsPath,
	}

	tempDir, err := s.discovery.Client().DownloadRepo(repo)
	if err != nil {
		return err
	}
	defer removeAllQuiet(tempDir)

	source := tempDir
	if skillsPath := strings.Trim(repo.SkillsPath, "/"); skillsPath != "" {
		source = joinSlash(tempDir, skillsPath)
	}
	source = joinSlash(source, installName)

	if !dirExists(source) {
		return &SkillError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("skill directory '%s' missing after extraction", installName),
		}
	}

	if _, err := store.CopyIn(source, installName); err != nil {
		return err
	}
	return nil
}

// Uninstall removes a skill from every application directory (best
// effort), deletes its SSOT copy, and drops the index record.
func (s *Service) Uninstall(directoryOrID string) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	dir, ok := resolveDirectory(index, directoryOrID)
	if !ok {
		return &SkillError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no installed skill matches '%s'", directoryOrID),
		}
	}

	for _, app := range types.AllApps() {
		if err := s.syncer.Unproject(dir, app); err != nil {
			s.logger.Warn("failed to remove skill from app",
				"skill", dir, "app", string(app), "error", err)
		}
	}

	if err := store.Remove(dir); err != nil {
		return err
	}

	delete(index.Skills, dir)
	return registry.SaveIndex(index)
}

// ToggleApp flips one application flag and projects or unprojects
// accordingly, then persists the index.
func (s *Service) ToggleApp(directoryOrID string, app types.AppType, enabled bool) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	dir, ok := resolveDirectory(index, directoryOrID)
	if !ok {
		return &SkillError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no installed skill matches '%s'", directoryOrID),
		}
	}

	record := index.Skills[dir]
	record.Apps.SetEnabled(app, enabled)
	index.Skills[dir] = record

	if enabled {
		if err := s.syncer.Project(dir, app, index.SyncMethod); err != nil {
			return err
		}
	} else {
		if err := s.syncer.Unproject(dir, app); err != nil {
			return err
		}
	}

	return registry.SaveIndex(index)
}

// SyncAllEnabled re-projects every installed skill into every enabled app.
func (s *Service) SyncAllEnabled() error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}
	return s.syncer.SyncAllEnabled(index)
}

// SyncAllEnabledBestEffort is the opportunistic variant used after events
// in the surrounding system: failures are logged, never fatal.
func (s *Service) SyncAllEnabledBestEffort() {
	index, err := s.loadIndex()
	if err != nil {
		s.logger.Warn("best-effort sync skipped", "error", err)
		return
	}
	s.syncer.SyncAllEnabledBestEffort(index)
}
