package skill

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/smy-101/skillsync/internal/discovery"
	"github.com/smy-101/skillsync/internal/registry"
	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/store"
	"github.com/smy-101/skillsync/internal/types"
)

// MigrateSSOTIfPending performs the one-time reconciliation of pre-existing
// on-disk state into the managed index. It returns the number of records it
// created.
//
// Two branches, chosen by whether the index already has managed skills:
//
//   - Managed skills exist: conservative. Only back-fill SSOT copies for
//     records that are missing one, searching the apps the skill is enabled
//     for (all apps as a fallback). Brand-new directories are deliberately
//     NOT claimed here; that would silently adopt user directories the
//     index never recorded.
//
//   - Index is empty: full scan. Every skill directory found under any
//     application is copied into SSOT once and recorded with the union of
//     apps it was found under.
//
// Either branch clears the pending flag exactly once and persists.
func (s *Service) MigrateSSOTIfPending(index *types.Index) (int, error) {
	if !index.MigrationPending {
		return 0, nil
	}

	var created int
	var err error
	if len(index.Skills) > 0 {
		created, err = s.migrateManagedOnly(index)
	} else {
		created, err = s.migrateFullScan(index)
	}
	if err != nil {
		return 0, err
	}

	index.MigrationPending = false
	if err := registry.SaveIndex(index); err != nil {
		return 0, err
	}
	return created, nil
}

func (s *Service) migrateManagedOnly(index *types.Index) (int, error) {
	created := 0
	for dir, record := range index.Skills {
		exists, err := store.Exists(dir)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		var candidates []types.AppType
		for _, app := range types.AllApps() {
			if record.Apps.EnabledFor(app) {
				candidates = append(candidates, app)
			}
		}
		if len(candidates) == 0 {
			candidates = types.AllApps()
		}

		source := ""
		for _, app := range candidates {
			appDir, err := settings.AppSkillsDir(app)
			if err != nil {
				continue
			}
			skillPath := filepath.Join(appDir, dir)
			if dirExists(skillPath) {
				source = skillPath
				break
			}
		}

		if source == "" {
			s.logger.Warn("migration found no source directory for managed skill", "skill", dir)
			continue
		}

		dest, err := store.CopyIn(source, dir)
		if err != nil {
			return 0, err
		}
		created++

		// Backfill metadata gaps from the manifest if present.
		manifest := filepath.Join(dest, discovery.SkillManifest)
		if _, err := os.Stat(manifest); err == nil {
			if meta, err := discovery.ParseManifest(manifest); err == nil {
				if record.Name == "" || strings.EqualFold(record.Name, record.Directory) {
					if meta.Name != "" {
						record.Name = meta.Name
					}
				}
				if record.Description == "" {
					record.Description = meta.Description
				}
				index.Skills[dir] = record
			}
		}
	}
	return created, nil
}

func (s *Service) migrateFullScan(index *types.Index) (int, error) {
	discovered := make(map[string]types.AppFlags)

	for _, app := range types.AllApps() {
		appDir, err := settings.AppSkillsDir(app)
		if err != nil {
			continue
		}
		entries, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || entry.Name()[0] == '.' {
				continue
			}
			dir := entry.Name()

			exists, err := store.Exists(dir)
			if err != nil {
				return 0, err
			}
			if !exists {
				if _, err := store.CopyIn(filepath.Join(appDir, dir), dir); err != nil {
					return 0, err
				}
			}

			flags := discovered[dir]
			flags.SetEnabled(app, true)
			discovered[dir] = flags
		}
	}

	created := 0
	for dir, apps := range discovered {
		name, description := s.manifestMetadata(dir)

		if existing, ok := index.Skills[dir]; ok {
			existing.Apps.Merge(apps)
			if existing.Name == "" {
				existing.Name = name
			}
			if existing.Description == "" {
				existing.Description = description
			}
			index.Skills[dir] = existing
			continue
		}

		index.Skills[dir] = types.InstalledSkill{
			ID:          "local:" + dir,
			Name:        name,
			Description: description,
			Directory:   dir,
			Apps:        apps,
			InstalledAt: time.Now().Unix(),
		}
		created++
	}

	return created, nil
}

// manifestMetadata reads name and description from a skill's SSOT manifest,
// falling back to the directory name.
func (s *Service) manifestMetadata(dir string) (string, string) {
	ssotPath, err := store.SkillPath(dir)
	if err != nil {
		return dir, ""
	}
	manifest := filepath.Join(ssotPath, discovery.SkillManifest)
	if _, err := os.Stat(manifest); err != nil {
		return dir, ""
	}
	meta, err := discovery.ParseManifest(manifest)
	if err != nil || meta.Name == "" {
		name := dir
		if err == nil && meta.Name != "" {
			name = meta.Name
		}
		return name, meta.Description
	}
	return meta.Name, meta.Description
}

// ScanUnmanaged lists directories present in any application's skills
// directory but absent from the index, grouped by the apps that contain
// them. User-initiated; never mutates state.
func (s *Service) ScanUnmanaged() ([]types.UnmanagedSkill, error) {
	index, err := registry.LoadIndex()
	if err != nil {
		return nil, err
	}

	found := make(map[string]*types.UnmanagedSkill)
	for _, app := range types.AllApps() {
		appDir, err := settings.AppSkillsDir(app)
		if err != nil {
			continue
		}
		entries, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || entry.Name()[0] == '.' {
				continue
			}
			dir := entry.Name()
			if _, managed := index.Skills[dir]; managed {
				continue
			}

			if existing, ok := found[dir]; ok {
				existing.FoundIn = append(existing.FoundIn, string(app))
				continue
			}

			name, description := dir, ""
			manifest := filepath.Join(appDir, dir, discovery.SkillManifest)
			if _, err := os.Stat(manifest); err == nil {
				if meta, err := discovery.ParseManifest(manifest); err == nil {
					if meta.Name != "" {
						name = meta.Name
					}
					description = meta.Description
				}
			}

			found[dir] = &types.UnmanagedSkill{
				Directory:   dir,
				Name:        name,
				Description: description,
				FoundIn:     []string{string(app)},
			}
		}
	}

	skills := make([]types.UnmanagedSkill, 0, len(found))
	for _, skill := range found {
		skills = append(skills, *skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		return skills[i].Directory < skills[j].Directory
	})
	return skills, nil
}

// ImportFromApps adopts previously unmanaged directories: the first found
// instance is copied into SSOT and an index record is created or merged
// with the union of apps the directory appeared in.
func (s *Service) ImportFromApps(directories []string) ([]types.InstalledSkill, error) {
	index, err := registry.LoadIndex()
	if err != nil {
		return nil, err
	}

	var imported []types.InstalledSkill
	for _, dir := range directories {
		source := ""
		var apps types.AppFlags
		for _, app := range types.AllApps() {
			appDir, err := settings.AppSkillsDir(app)
			if err != nil {
				continue
			}
			skillPath := filepath.Join(appDir, dir)
			if !dirExists(skillPath) {
				continue
			}
			if source == "" {
				source = skillPath
			}
			apps.SetEnabled(app, true)
		}
		if source == "" {
			s.logger.Warn("import skipped: directory not found in any app", "skill", dir)
			continue
		}

		if _, err := store.CopyIn(source, dir); err != nil {
			return nil, err
		}

		name, description := s.manifestMetadata(dir)

		record, ok := index.Skills[dir]
		if !ok {
			record = types.InstalledSkill{
				ID:          "local:" + dir,
				Name:        name,
				Description: description,
				Directory:   dir,
				InstalledAt: time.Now().Unix(),
			}
		}
		record.Apps.Merge(apps)
		if record.Name == "" {
			record.Name = name
		}
		if record.Description == "" {
			record.Description = description
		}
		index.Skills[dir] = record
		imported = append(imported, record)
	}

	if err := registry.SaveIndex(index); err != nil {
		return nil, err
	}
	return imported, nil
}
