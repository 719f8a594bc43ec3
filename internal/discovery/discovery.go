// Package discovery fetches remote skill repositories, lists their
// candidate skills, and resolves user-supplied install specs. Repositories
// are downloaded as GitHub branch archives; a subdirectory is a skill iff
// it contains SKILL.md.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/smy-101/skillsync/internal/types"
)

// Discovery scans configured repositories for installable skills.
type Discovery struct {
	client *Client
	logger Logger
}

// New creates a Discovery backed by the given download client.
func New(client *Client) *Discovery {
	return &Discovery{
		client: client,
		logger: NoOpLogger{},
	}
}

// SetLogger replaces the logger used for per-repo failure warnings.
func (d *Discovery) SetLogger(logger Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Client exposes the underlying download client.
func (d *Discovery) Client() *Client {
	return d.client
}

// FetchRepoSkills downloads one repository and scans the immediate
// subdirectories of its scan root for SKILL.md manifests. A configured
// skillsPath scopes the scan to that subdirectory.
func (d *Discovery) FetchRepoSkills(repo types.Repo) ([]types.DiscoverableSkill, error) {
	tempDir, err := d.client.DownloadRepo(repo)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempDir)

	scanDir := tempDir
	skillsPath := strings.Trim(repo.SkillsPath, "/")
	if skillsPath != "" {
		scanDir = filepath.Join(tempDir, filepath.FromSlash(skillsPath))
		if _, err := os.Stat(scanDir); err != nil {
			// Repo has no skills subdir on this branch; nothing to offer.
			return nil, nil
		}
	}

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		return nil, &DiscoveryError{Type: ErrorTypeFilesystem, Message: "failed to scan repo", Err: err}
	}

	var skills []types.DiscoverableSkill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		directory := entry.Name()
		manifest := filepath.Join(scanDir, directory, SkillManifest)
		if _, err := os.Stat(manifest); err != nil {
			continue
		}

		meta, err := ParseManifest(manifest)
		if err != nil {
			meta = Metadata{}
		}
		name := meta.Name
		if name == "" {
			name = directory
		}

		readmePath := directory
		if skillsPath != "" {
			readmePath = skillsPath + "/" + directory
		}

		skills = append(skills, types.DiscoverableSkill{
			Key:         fmt.Sprintf("%s/%s:%s", repo.Owner, repo.Name, directory),
			Name:        name,
			Description: meta.Description,
			Directory:   directory,
			ReadmeURL: fmt.Sprintf("https://github.com/%s/%s/tree/%s/%s",
				repo.Owner, repo.Name, repo.Branch, readmePath),
			RepoOwner:  repo.Owner,
			RepoName:   repo.Name,
			RepoBranch: repo.Branch,
			SkillsPath: repo.SkillsPath,
		})
	}

	return skills, nil
}

// DiscoverAvailable fetches skills from every enabled repository
// concurrently. Individual repo failures are logged and excluded; the
// remaining results are deduplicated and sorted by case-insensitive name.
func (d *Discovery) DiscoverAvailable(repos []types.Repo) []types.DiscoverableSkill {
	var enabled []types.Repo
	for _, repo := range repos {
		if repo.Enabled {
			enabled = append(enabled, repo)
		}
	}

	results := make([][]types.DiscoverableSkill, len(enabled))
	var wg sync.WaitGroup
	for i, repo := range enabled {
		wg.Add(1)
		go func(i int, repo types.Repo) {
			defer wg.Done()
			skills, err := d.FetchRepoSkills(repo)
			if err != nil {
				d.logger.Warn("failed to fetch repo skills",
					"repo", repo.Owner+"/"+repo.Name, "error", err)
				return
			}
			results[i] = skills
		}(i, repo)
	}
	wg.Wait()

	var skills []types.DiscoverableSkill
	for _, repoSkills := range results {
		skills = append(skills, repoSkills...)
	}

	skills = dedupeDiscoverable(skills)
	sort.SliceStable(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
	return skills
}

func dedupeDiscoverable(skills []types.DiscoverableSkill) []types.DiscoverableSkill {
	seen := make(map[string]bool, len(skills))
	out := skills[:0]
	for _, s := range skills {
		key := strings.ToLower(s.RepoOwner) + "|" + strings.ToLower(s.Key)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// ResolveInstallSpec matches a user-supplied spec against the available
// skills: first as an exact "owner/name:directory" key, then as a bare
// directory name. A bare name must match exactly one skill across all
// repos or the call fails as ambiguous.
func ResolveInstallSpec(spec string, available []types.DiscoverableSkill) (types.DiscoverableSkill, error) {
	spec = strings.TrimSpace(spec)

	for _, s := range available {
		if s.Key == spec {
			return s, nil
		}
	}

	var matches []types.DiscoverableSkill
	for _, s := range available {
		if strings.EqualFold(s.Directory, spec) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return types.DiscoverableSkill{}, &DiscoveryError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no installable skill found for '%s'", spec),
		}
	case 1:
		return matches[0], nil
	default:
		return types.DiscoverableSkill{}, &DiscoveryError{
			Type:    ErrorTypeAmbiguous,
			Message: fmt.Sprintf("skill name '%s' is ambiguous; use the full key (owner/name:directory)", spec),
		}
	}
}

// ParseRepoSpec parses "owner/name[@branch]" or a plain GitHub URL into a
// Repo. The branch defaults to "main".
func ParseRepoSpec(raw string) (types.Repo, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if raw == "" {
		return types.Repo{}, fmt.Errorf("repo spec cannot be empty")
	}

	raw = strings.TrimPrefix(raw, "https://github.com/")
	raw = strings.TrimPrefix(raw, "http://github.com/")
	raw = strings.TrimSuffix(raw, ".git")

	branch := "main"
	if at := strings.LastIndex(raw, "@"); at >= 0 {
		branch = raw[at+1:]
		raw = raw[:at]
	}

	owner, name, ok := strings.Cut(raw, "/")
	if !ok || owner == "" || name == "" {
		return types.Repo{}, fmt.Errorf("invalid repo spec '%s' (use owner/name[@branch])", raw)
	}

	return types.Repo{
		Owner:   owner,
		Name:    name,
		Branch:  branch,
		Enabled: true,
	}, nil
}
