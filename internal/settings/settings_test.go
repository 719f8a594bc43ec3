package settings

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/smy-101/skillsync/internal/types"
)

func TestAppSkillsDir_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetForTest()

	tests := []struct {
		app  types.AppType
		want string
	}{
		{types.AppClaude, filepath.Join(home, ".claude", "skills")},
		{types.AppCodex, filepath.Join(home, ".codex", "skills")},
		{types.AppGemini, filepath.Join(home, ".gemini", "skills")},
	}

	for _, tt := range tests {
		got, err := AppSkillsDir(tt.app)
		if err != nil {
			t.Errorf("AppSkillsDir(%s) error = %v", tt.app, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AppSkillsDir(%s) = %s, want %s", tt.app, got, tt.want)
		}
	}
}

func TestAppSkillsDir_Override(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Set("claude_dir", "/opt/claude")
	defer viper.Set("claude_dir", "")
	ResetForTest()
	defer ResetForTest()

	got, err := AppSkillsDir(types.AppClaude)
	if err != nil {
		t.Fatalf("AppSkillsDir() error = %v", err)
	}
	if got != filepath.Join("/opt/claude", "skills") {
		t.Errorf("AppSkillsDir() = %s, want override + /skills", got)
	}

	// Other apps keep their defaults.
	codex, err := AppSkillsDir(types.AppCodex)
	if err != nil {
		t.Fatalf("AppSkillsDir() error = %v", err)
	}
	if filepath.Base(filepath.Dir(codex)) != ".codex" {
		t.Errorf("codex dir = %s, want default location", codex)
	}
}

func TestConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != filepath.Join(home, ".skillsync") {
		t.Errorf("ConfigDir() = %s", dir)
	}

	indexPath, err := IndexPath()
	if err != nil {
		t.Fatalf("IndexPath() error = %v", err)
	}
	if indexPath != filepath.Join(dir, "skills.json") {
		t.Errorf("IndexPath() = %s", indexPath)
	}

	ssot, err := SSOTDir()
	if err != nil {
		t.Fatalf("SSOTDir() error = %v", err)
	}
	if ssot != filepath.Join(dir, "skills") {
		t.Errorf("SSOTDir() = %s", ssot)
	}
}
