package discovery

import (
	"errors"
	"testing"

	"github.com/smy-101/skillsync/internal/types"
)

func TestFetchRepoSkills(t *testing.T) {
	archive := buildZip(t, "tools-main", map[string]string{
		"foo/SKILL.md":        "---\nname: Foo Skill\ndescription: does foo\n---\n",
		"bar/SKILL.md":        "---\nname: Bar Skill\n---\n",
		"notes/readme.txt":    "not a skill",
		"nameless/SKILL.md":   "no front matter here\n",
		"toplevel.md":         "loose file",
		"foo/nested/SKILL.md": "---\nname: too deep\n---\n",
	})
	server := archiveServer(t, "acme", "tools", map[string][]byte{"main": archive})
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)
	d := New(client)

	skills, err := d.FetchRepoSkills(types.Repo{Owner: "acme", Name: "tools", Branch: "main", Enabled: true})
	if err != nil {
		t.Fatalf("FetchRepoSkills() error = %v", err)
	}
	if len(skills) != 3 {
		t.Fatalf("FetchRepoSkills() returned %d skills, want 3: %+v", len(skills), skills)
	}

	byDir := make(map[string]types.DiscoverableSkill)
	for _, s := range skills {
		byDir[s.Directory] = s
	}

	foo := byDir["foo"]
	if foo.Key != "acme/tools:foo" {
		t.Errorf("foo key = %s", foo.Key)
	}
	if foo.Name != "Foo Skill" || foo.Description != "does foo" {
		t.Errorf("foo metadata = %+v", foo)
	}
	if foo.ReadmeURL != "https://github.com/acme/tools/tree/main/foo" {
		t.Errorf("foo readme = %s", foo.ReadmeURL)
	}

	// A directory whose manifest has no front matter falls back to the
	// directory name.
	if byDir["nameless"].Name != "nameless" {
		t.Errorf("nameless name = %s", byDir["nameless"].Name)
	}
}

func TestFetchRepoSkills_SkillsPath(t *testing.T) {
	archive := buildZip(t, "mono-main", map[string]string{
		"skills/alpha/SKILL.md": "---\nname: Alpha\n---\n",
		"beta/SKILL.md":         "---\nname: Outside\n---\n",
	})
	server := archiveServer(t, "acme", "mono", map[string][]byte{"main": archive})
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)
	d := New(client)

	repo := types.Repo{Owner: "acme", Name: "mono", Branch: "main", Enabled: true, SkillsPath: "skills"}
	skills, err := d.FetchRepoSkills(repo)
	if err != nil {
		t.Fatalf("FetchRepoSkills() error = %v", err)
	}
	if len(skills) != 1 || skills[0].Directory != "alpha" {
		t.Fatalf("scoped scan = %+v, want only alpha", skills)
	}
	if skills[0].ReadmeURL != "https://github.com/acme/mono/tree/main/skills/alpha" {
		t.Errorf("scoped readme = %s", skills[0].ReadmeURL)
	}

	// Missing skillsPath subdir is not an error, just nothing to offer.
	repo.SkillsPath = "no-such-dir"
	skills, err = d.FetchRepoSkills(repo)
	if err != nil {
		t.Fatalf("FetchRepoSkills() with absent skillsPath error = %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("absent skillsPath yielded %+v", skills)
	}
}

func TestDiscoverAvailable_SkipsFailingRepo(t *testing.T) {
	archive := buildZip(t, "tools-main", map[string]string{
		"zeta/SKILL.md":  "---\nname: Zeta\n---\n",
		"alpha/SKILL.md": "---\nname: alpha\n---\n",
	})
	server := archiveServer(t, "acme", "tools", map[string][]byte{"main": archive})
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)
	d := New(client)

	repos := []types.Repo{
		{Owner: "acme", Name: "tools", Branch: "main", Enabled: true},
		{Owner: "acme", Name: "gone", Branch: "main", Enabled: true},
		{Owner: "acme", Name: "disabled", Branch: "main", Enabled: false},
	}

	skills := d.DiscoverAvailable(repos)
	if len(skills) != 2 {
		t.Fatalf("DiscoverAvailable() = %+v, want 2 skills", skills)
	}
	// Case-insensitive name sort.
	if skills[0].Name != "alpha" || skills[1].Name != "Zeta" {
		t.Errorf("sort order = %s, %s", skills[0].Name, skills[1].Name)
	}
}

func TestResolveInstallSpec(t *testing.T) {
	available := []types.DiscoverableSkill{
		{Key: "acme/tools:foo", Directory: "foo", RepoOwner: "acme", RepoName: "tools"},
		{Key: "acme/extra:foo", Directory: "foo", RepoOwner: "acme", RepoName: "extra"},
		{Key: "acme/tools:bar", Directory: "bar", RepoOwner: "acme", RepoName: "tools"},
	}

	tests := []struct {
		name     string
		spec     string
		wantKey  string
		wantType ErrorType
		wantErr  bool
	}{
		{name: "exact key", spec: "acme/extra:foo", wantKey: "acme/extra:foo"},
		{name: "unique bare name", spec: "bar", wantKey: "acme/tools:bar"},
		{name: "bare name case-insensitive", spec: "BAR", wantKey: "acme/tools:bar"},
		{name: "ambiguous bare name", spec: "foo", wantErr: true, wantType: ErrorTypeAmbiguous},
		{name: "unknown", spec: "baz", wantErr: true, wantType: ErrorTypeNotFound},
		{name: "whitespace trimmed", spec: "  bar  ", wantKey: "acme/tools:bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInstallSpec(tt.spec, available)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveInstallSpec(%q) succeeded, want error", tt.spec)
				}
				if !errors.Is(err, &DiscoveryError{Type: tt.wantType}) {
					t.Errorf("error = %v, want type %d", err, tt.wantType)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveInstallSpec(%q) error = %v", tt.spec, err)
			}
			if got.Key != tt.wantKey {
				t.Errorf("ResolveInstallSpec(%q) = %s, want %s", tt.spec, got.Key, tt.wantKey)
			}
		})
	}
}

func TestParseRepoSpec(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    types.Repo
		wantErr bool
	}{
		{
			name: "owner slash name",
			raw:  "anthropics/skills",
			want: types.Repo{Owner: "anthropics", Name: "skills", Branch: "main", Enabled: true},
		},
		{
			name: "explicit branch",
			raw:  "acme/tools@dev",
			want: types.Repo{Owner: "acme", Name: "tools", Branch: "dev", Enabled: true},
		},
		{
			name: "github url",
			raw:  "https://github.com/acme/tools",
			want: types.Repo{Owner: "acme", Name: "tools", Branch: "main", Enabled: true},
		},
		{
			name: "github url with git suffix and slash",
			raw:  "https://github.com/acme/tools.git/",
			want: types.Repo{Owner: "acme", Name: "tools", Branch: "main", Enabled: true},
		},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no slash", raw: "justaname", wantErr: true},
		{name: "missing name", raw: "acme/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoSpec(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRepoSpec(%q) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepoSpec(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseRepoSpec(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
