package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smy-101/skillsync/internal/types"
)

func TestLoadIndex_CreatesFreshIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")

	index, err := LoadIndexWithPath(path)
	if err != nil {
		t.Fatalf("LoadIndexWithPath() error = %v", err)
	}

	if !index.MigrationPending {
		t.Error("fresh index should have migration pending")
	}
	if index.Version != types.IndexVersion {
		t.Errorf("version = %d, want %d", index.Version, types.IndexVersion)
	}
	if index.SyncMethod != types.SyncAuto {
		t.Errorf("sync method = %s, want auto", index.SyncMethod)
	}
	if len(index.Repos) == 0 {
		t.Error("fresh index should seed default repos")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("fresh index should be written to disk: %v", err)
	}
}

func TestLoadIndex_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")

	index := types.NewIndex()
	index.Skills["foo"] = types.InstalledSkill{
		ID:          "alice/skills:foo",
		Name:        "Foo",
		Directory:   "foo",
		RepoOwner:   "alice",
		RepoName:    "skills",
		Apps:        types.OnlyApp(types.AppClaude),
		InstalledAt: 1700000000,
	}

	if err := SaveIndexWithPath(path, index); err != nil {
		t.Fatalf("SaveIndexWithPath() error = %v", err)
	}

	loaded, err := LoadIndexWithPath(path)
	if err != nil {
		t.Fatalf("LoadIndexWithPath() error = %v", err)
	}

	skill, ok := loaded.Skills["foo"]
	if !ok {
		t.Fatal("round trip lost the skill record")
	}
	if skill.ID != "alice/skills:foo" || !skill.Apps.Claude || skill.Apps.Codex {
		t.Errorf("round trip mangled the record: %+v", skill)
	}
	if loaded.MigrationPending {
		t.Error("saved index should not re-acquire a pending migration")
	}
}

func TestLoadIndex_LegacyUpgrade(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.json")

	legacy := `{
		"skills": {
			"old-skill": {"installed": true, "installedAt": "2024-01-02T03:04:05Z"},
			"gone-skill": {"installed": false, "installedAt": "2024-01-02T03:04:05Z"}
		},
		"repos": [{"owner": "alice", "name": "skills", "branch": "main", "enabled": true}]
	}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("failed to write legacy file: %v", err)
	}

	index, err := LoadIndexWithPath(path)
	if err != nil {
		t.Fatalf("LoadIndexWithPath() error = %v", err)
	}

	if !index.MigrationPending {
		t.Error("legacy upgrade should force migration")
	}

	skill, ok := index.Skills["old-skill"]
	if !ok {
		t.Fatal("installed legacy skill should be converted")
	}
	if skill.ID != "local:old-skill" {
		t.Errorf("id = %s, want local:old-skill", skill.ID)
	}
	if !skill.Apps.Claude || skill.Apps.Codex || skill.Apps.Gemini {
		t.Errorf("legacy skills should be claude-only, got %+v", skill.Apps)
	}
	if _, ok := index.Skills["gone-skill"]; ok {
		t.Error("uninstalled legacy entries should be dropped")
	}
	if len(index.Repos) != 1 || index.Repos[0].Owner != "alice" {
		t.Errorf("legacy repos should be carried over, got %+v", index.Repos)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("legacy file should be backed up alongside: %v", err)
	}

	// The upgraded format must be written back with a version field.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read upgraded file: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("upgraded file is not valid JSON: %v", err)
	}
	if _, ok := raw["version"]; !ok {
		t.Error("upgraded file should carry a version field")
	}
}

func TestLoadIndex_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, err := LoadIndexWithPath(path)
	if err == nil {
		t.Fatal("corrupt JSON should be a fatal read error")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error = %v, want parse failure", err)
	}
}
