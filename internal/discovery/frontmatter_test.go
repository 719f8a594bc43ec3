package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metadata
	}{
		{
			name:    "full front matter",
			content: "---\nname: My Skill\ndescription: Does things\n---\nBody text.\n",
			want:    Metadata{Name: "My Skill", Description: "Does things"},
		},
		{
			name:    "missing description",
			content: "---\nname: bare\n---\n",
			want:    Metadata{Name: "bare"},
		},
		{
			name:    "no front matter",
			content: "# Just a readme\n",
			want:    Metadata{},
		},
		{
			name:    "unterminated front matter",
			content: "---\nname: dangling\n",
			want:    Metadata{},
		},
		{
			name:    "malformed yaml",
			content: "---\nname: [unclosed\n---\nbody\n",
			want:    Metadata{},
		},
		{
			name:    "bom prefix",
			content: "\uFEFF---\nname: bom\n---\n",
			want:    Metadata{Name: "bom"},
		},
		{
			name:    "extra keys ignored",
			content: "---\nname: extra\nversion: 2\nauthor: someone\n---\n",
			want:    Metadata{Name: "extra"},
		},
		{
			name:    "empty content",
			content: "",
			want:    Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFrontMatter(tt.content)
			if got != tt.want {
				t.Errorf("parseFrontMatter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SkillManifest)
	if err := os.WriteFile(path, []byte("---\nname: disk\ndescription: from disk\n---\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	meta, err := ParseManifest(path)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if meta.Name != "disk" || meta.Description != "from disk" {
		t.Errorf("ParseManifest() = %+v", meta)
	}

	if _, err := ParseManifest(filepath.Join(dir, "absent.md")); err == nil {
		t.Error("ParseManifest() on a missing file should fail")
	}
}
