package skill

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smy-101/skillsync/internal/discovery"
	"github.com/smy-101/skillsync/internal/registry"
	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/types"
)

// ListRepos returns the configured repositories.
func (s *Service) ListRepos() ([]types.Repo, error) {
	index, err := registry.LoadIndex()
	if err != nil {
		return nil, err
	}
	return index.Repos, nil
}

// UpsertRepo inserts a repository or replaces the entry with the same
// (owner, name) identity.
func (s *Service) UpsertRepo(repo types.Repo) error {
	index, err := registry.LoadIndex()
	if err != nil {
		return err
	}

	replaced := false
	for i, r := range index.Repos {
		if r.Owner == repo.Owner && r.Name == repo.Name {
			index.Repos[i] = repo
			replaced = true
			break
		}
	}
	if !replaced {
		index.Repos = append(index.Repos, repo)
	}

	return registry.SaveIndex(index)
}

// RemoveRepo deletes a repository by identity. Installed skills that came
// from it stay installed; they just lose their discovery source.
func (s *Service) RemoveRepo(owner, name string) error {
	index, err := registry.LoadIndex()
	if err != nil {
		return err
	}

	kept := index.Repos[:0]
	for _, r := range index.Repos {
		if !(r.Owner == owner && r.Name == name) {
			kept = append(kept, r)
		}
	}
	index.Repos = kept

	return registry.SaveIndex(index)
}

// GetSyncMethod returns the persisted projection strategy.
func (s *Service) GetSyncMethod() (types.SyncMethod, error) {
	index, err := registry.LoadIndex()
	if err != nil {
		return "", err
	}
	return index.SyncMethod, nil
}

// SetSyncMethod persists the projection strategy on the index.
func (s *Service) SetSyncMethod(method types.SyncMethod) error {
	index, err := registry.LoadIndex()
	if err != nil {
		return err
	}
	index.SyncMethod = method
	return registry.SaveIndex(index)
}

// ListSkills returns the combined view: every discoverable skill from the
// enabled repositories flagged with its installed state, merged with
// SSOT-only local skills, deduplicated by directory and sorted by
// case-insensitive name.
func (s *Service) ListSkills() ([]types.Skill, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	installedDirs := make(map[string]bool, len(index.Skills))
	for dir := range index.Skills {
		installedDirs[strings.ToLower(dir)] = true
	}

	var skills []types.Skill
	for _, d := range s.discovery.DiscoverAvailable(index.Repos) {
		skills = append(skills, types.Skill{
			Key:         d.Key,
			Name:        d.Name,
			Description: d.Description,
			Directory:   d.Directory,
			ReadmeURL:   d.ReadmeURL,
			Installed:   installedDirs[strings.ToLower(d.Directory)],
			RepoOwner:   d.RepoOwner,
			RepoName:    d.RepoName,
			RepoBranch:  d.RepoBranch,
			SkillsPath:  d.SkillsPath,
		})
	}

	skills, err = s.mergeLocalSkills(index, skills)
	if err != nil {
		return nil, err
	}

	skills = dedupeByDirectory(skills)
	sort.SliceStable(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
	return skills, nil
}

// mergeLocalSkills appends SSOT entries that no repository offers, and
// marks repo entries installed when a local copy shadows them.
func (s *Service) mergeLocalSkills(index *types.Index, skills []types.Skill) ([]types.Skill, error) {
	ssotDir, err := settings.SSOTDir()
	if err != nil {
		return skills, err
	}
	entries, err := os.ReadDir(ssotDir)
	if err != nil {
		if os.IsNotExist(err) {
			return skills, nil
		}
		return skills, err
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		directory := entry.Name()

		shadowed := false
		for i := range skills {
			if strings.EqualFold(skills[i].Directory, directory) {
				skills[i].Installed = true
				shadowed = true
				break
			}
		}
		if shadowed {
			continue
		}

		name, description := directory, ""
		if record, ok := index.Skills[directory]; ok {
			name, description = record.Name, record.Description
		} else {
			manifest := filepath.Join(ssotDir, directory, discovery.SkillManifest)
			if _, err := os.Stat(manifest); err == nil {
				if meta, err := discovery.ParseManifest(manifest); err == nil {
					if meta.Name != "" {
						name = meta.Name
					}
					description = meta.Description
				}
			}
		}

		skills = append(skills, types.Skill{
			Key:         "local:" + directory,
			Name:        name,
			Description: description,
			Directory:   directory,
			Installed:   true,
		})
	}

	return skills, nil
}

func dedupeByDirectory(skills []types.Skill) []types.Skill {
	seen := make(map[string]bool, len(skills))
	out := skills[:0]
	for _, s := range skills {
		key := strings.ToLower(s.Directory)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
