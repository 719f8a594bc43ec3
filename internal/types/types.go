// Package types defines the shared data model for the skill synchronization
// engine: the persisted index, repository and skill records, and the closed
// set of target applications.
package types

import "fmt"

// IndexVersion is the current on-disk format version of skills.json.
const IndexVersion = 1

// AppType identifies one of the supported target applications.
type AppType string

const (
	AppClaude AppType = "claude"
	AppCodex  AppType = "codex"
	AppGemini AppType = "gemini"
)

// AllApps returns every supported application in a stable order.
func AllApps() []AppType {
	return []AppType{AppClaude, AppCodex, AppGemini}
}

// ParseApp converts a user-supplied string into an AppType.
func ParseApp(s string) (AppType, error) {
	switch AppType(s) {
	case AppClaude, AppCodex, AppGemini:
		return AppType(s), nil
	}
	return "", fmt.Errorf("unknown app '%s' (supported: claude, codex, gemini)", s)
}

// SyncMethod selects how a skill is projected into an application directory.
type SyncMethod string

const (
	// SyncAuto prefers a symlink and falls back to a copy on failure.
	SyncAuto SyncMethod = "auto"
	// SyncSymlink always creates a symlink.
	SyncSymlink SyncMethod = "symlink"
	// SyncCopy always duplicates the directory.
	SyncCopy SyncMethod = "copy"
)

// ParseSyncMethod converts a user-supplied string into a SyncMethod.
func ParseSyncMethod(s string) (SyncMethod, error) {
	switch SyncMethod(s) {
	case SyncAuto, SyncSymlink, SyncCopy:
		return SyncMethod(s), nil
	}
	return "", fmt.Errorf("unknown sync method '%s' (supported: auto, symlink, copy)", s)
}

// AppFlags records per-application enablement for an installed skill.
// Flags are independent; there is no ordering between applications.
type AppFlags struct {
	Claude bool `json:"claude"`
	Codex  bool `json:"codex"`
	Gemini bool `json:"gemini"`
}

// OnlyApp returns flags with exactly one application enabled.
func OnlyApp(app AppType) AppFlags {
	var f AppFlags
	f.SetEnabled(app, true)
	return f
}

// EnabledFor reports whether the skill is enabled for the given application.
func (f AppFlags) EnabledFor(app AppType) bool {
	switch app {
	case AppClaude:
		return f.Claude
	case AppCodex:
		return f.Codex
	case AppGemini:
		return f.Gemini
	}
	return false
}

// SetEnabled flips the flag for one application.
func (f *AppFlags) SetEnabled(app AppType, enabled bool) {
	switch app {
	case AppClaude:
		f.Claude = enabled
	case AppCodex:
		f.Codex = enabled
	case AppGemini:
		f.Gemini = enabled
	}
}

// Merge enables every application that is enabled in other.
func (f *AppFlags) Merge(other AppFlags) {
	f.Claude = f.Claude || other.Claude
	f.Codex = f.Codex || other.Codex
	f.Gemini = f.Gemini || other.Gemini
}

// Repo is a remote skill repository. Identity is (Owner, Name).
type Repo struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Branch  string `json:"branch"`
	Enabled bool   `json:"enabled"`
	// SkillsPath optionally scopes discovery to a subdirectory inside the repo.
	SkillsPath string `json:"skillsPath,omitempty"`
}

// InstalledSkill is one managed skill record. Identity is Directory, the
// final path segment, unique across all managed skills.
type InstalledSkill struct {
	// ID is "owner/name:directory" for remote origin or "local:directory".
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Directory   string   `json:"directory"`
	ReadmeURL   string   `json:"readmeUrl,omitempty"`
	RepoOwner   string   `json:"repoOwner,omitempty"`
	RepoName    string   `json:"repoName,omitempty"`
	RepoBranch  string   `json:"repoBranch,omitempty"`
	Apps        AppFlags `json:"apps"`
	InstalledAt int64    `json:"installedAt"`
}

// Index is the only persisted state (skills.json). The filesystem is derived
// state that must always be reconcilable from the index plus network access.
type Index struct {
	Version    int                       `json:"version"`
	SyncMethod SyncMethod                `json:"syncMethod"`
	Repos      []Repo                    `json:"repos"`
	Skills     map[string]InstalledSkill `json:"skills"`
	// MigrationPending marks the one-time SSOT migration as not yet run.
	MigrationPending bool `json:"ssotMigrationPending"`
}

// DefaultRepos returns the repositories seeded into a fresh index.
func DefaultRepos() []Repo {
	return []Repo{
		{Owner: "anthropics", Name: "skills", Branch: "main", Enabled: true},
		{Owner: "ComposioHQ", Name: "awesome-claude-skills", Branch: "master", Enabled: true},
		{Owner: "cexll", Name: "myclaude", Branch: "master", Enabled: true, SkillsPath: "skills"},
		{Owner: "JimLiu", Name: "baoyu-skills", Branch: "main", Enabled: true},
	}
}

// NewIndex returns a fresh index with default repositories.
func NewIndex() *Index {
	return &Index{
		Version:    IndexVersion,
		SyncMethod: SyncAuto,
		Repos:      DefaultRepos(),
		Skills:     make(map[string]InstalledSkill),
	}
}

// DiscoverableSkill is an ephemeral skill candidate produced by scanning a
// downloaded repository archive. It is never persisted.
type DiscoverableSkill struct {
	// Key is "owner/name:directory".
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Directory   string `json:"directory"`
	ReadmeURL   string `json:"readmeUrl,omitempty"`
	RepoOwner   string `json:"repoOwner"`
	RepoName    string `json:"repoName"`
	RepoBranch  string `json:"repoBranch"`
	SkillsPath  string `json:"skillsPath,omitempty"`
}

// Skill is the combined listing view: a discoverable or locally managed
// skill together with its installed flag.
type Skill struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Directory   string `json:"directory"`
	ReadmeURL   string `json:"readmeUrl,omitempty"`
	Installed   bool   `json:"installed"`
	RepoOwner   string `json:"repoOwner,omitempty"`
	RepoName    string `json:"repoName,omitempty"`
	RepoBranch  string `json:"repoBranch,omitempty"`
	SkillsPath  string `json:"skillsPath,omitempty"`
}

// UnmanagedSkill is a directory found in an application skills directory
// that has no index record. Ephemeral, never persisted.
type UnmanagedSkill struct {
	Directory   string   `json:"directory"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	FoundIn     []string `json:"foundIn"`
}
