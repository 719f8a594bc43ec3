// Package settings provides process-wide access to user settings: the
// skillsync config root, per-application skills directory overrides, and
// network options. Settings are initialized once from viper and are safe
// for concurrent readers.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/smy-101/skillsync/internal/types"
)

const configDirName = ".skillsync"

// Settings is the immutable snapshot of the values skillsync reads at
// runtime. Directory overrides are empty when the default location applies.
type Settings struct {
	GitHubToken string
	Proxy       string
	ClaudeDir   string
	CodexDir    string
	GeminiDir   string
}

var (
	mu      sync.RWMutex
	current Settings
	once    sync.Once
)

// Init loads settings from viper. It is called lazily by the accessors, so
// call sites never need to care about initialization order.
func Init() {
	once.Do(reload)
}

func reload() {
	mu.Lock()
	defer mu.Unlock()
	current = Settings{
		GitHubToken: viper.GetString("github_token"),
		Proxy:       viper.GetString("proxy"),
		ClaudeDir:   viper.GetString("claude_dir"),
		CodexDir:    viper.GetString("codex_dir"),
		GeminiDir:   viper.GetString("gemini_dir"),
	}
}

// Get returns the current settings snapshot.
func Get() Settings {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set persists one setting through viper and refreshes the snapshot.
func Set(key, value string) error {
	Init()
	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	switch key {
	case "github_token":
		current.GitHubToken = value
	case "proxy":
		current.Proxy = value
	case "claude_dir":
		current.ClaudeDir = value
	case "codex_dir":
		current.CodexDir = value
	case "gemini_dir":
		current.GeminiDir = value
	}
	return nil
}

// ConfigDir returns the skillsync private config root (~/.skillsync).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// IndexPath returns the location of skills.json.
func IndexPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skills.json"), nil
}

// SSOTDir returns the canonical skill store directory (~/.skillsync/skills).
func SSOTDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skills"), nil
}

// AppSkillsDir returns the skills directory for one application, honoring a
// configured override directory. The directory is not created here; it is
// created on demand only when a projection is written.
func AppSkillsDir(app types.AppType) (string, error) {
	s := Get()

	var override string
	switch app {
	case types.AppClaude:
		override = s.ClaudeDir
	case types.AppCodex:
		override = s.CodexDir
	case types.AppGemini:
		override = s.GeminiDir
	}
	if override != "" {
		return filepath.Join(override, "skills"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	switch app {
	case types.AppClaude:
		return filepath.Join(home, ".claude", "skills"), nil
	case types.AppCodex:
		return filepath.Join(home, ".codex", "skills"), nil
	case types.AppGemini:
		return filepath.Join(home, ".gemini", "skills"), nil
	}
	return "", fmt.Errorf("unknown app '%s'", app)
}

// ResetForTest clears the cached snapshot so tests can re-init after
// changing viper values or HOME.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	current = Settings{}
}
