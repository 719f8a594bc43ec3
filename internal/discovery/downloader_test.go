package discovery

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smy-101/skillsync/internal/types"
)

// buildZip assembles an in-memory zip the way GitHub archives are laid out:
// every entry lives under a single top-level root directory.
func buildZip(t *testing.T, root string, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create(root + "/"); err != nil {
		t.Fatalf("failed to create zip root: %v", err)
	}
	for name, content := range files {
		f, err := w.Create(root + "/" + name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// archiveServer serves branch archives for one repository. branches maps a
// branch name to its zip payload; everything else gets a 404.
func archiveServer(t *testing.T, owner, name string, branches map[string][]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := "/" + owner + "/" + name + "/archive/refs/heads/"
		if !strings.HasPrefix(r.URL.Path, prefix) || !strings.HasSuffix(r.URL.Path, ".zip") {
			http.NotFound(w, r)
			return
		}
		branch := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), ".zip")
		data, ok := branches[branch]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
}

func TestDownloadRepo_StripsArchiveRoot(t *testing.T) {
	archive := buildZip(t, "tools-main", map[string]string{
		"foo/SKILL.md": "---\nname: Foo\n---\n",
		"foo/ref.txt":  "x",
	})
	server := archiveServer(t, "acme", "tools", map[string][]byte{"main": archive})
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	dir, err := client.DownloadRepo(types.Repo{Owner: "acme", Name: "tools", Branch: "main"})
	if err != nil {
		t.Fatalf("DownloadRepo() error = %v", err)
	}
	defer os.RemoveAll(dir)

	if _, err := os.Stat(filepath.Join(dir, "foo", "SKILL.md")); err != nil {
		t.Errorf("extracted tree missing manifest: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tools-main")); !os.IsNotExist(err) {
		t.Error("archive root directory should be stripped")
	}
}

func TestDownloadRepo_BranchFallback(t *testing.T) {
	archive := buildZip(t, "tools-main", map[string]string{
		"foo/SKILL.md": "---\nname: Foo\n---\n",
	})
	// Configured branch does not exist; main does.
	server := archiveServer(t, "acme", "tools", map[string][]byte{"main": archive})
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	dir, err := client.DownloadRepo(types.Repo{Owner: "acme", Name: "tools", Branch: "release"})
	if err != nil {
		t.Fatalf("DownloadRepo() should fall back to main, got error = %v", err)
	}
	defer os.RemoveAll(dir)

	if _, err := os.Stat(filepath.Join(dir, "foo", "SKILL.md")); err != nil {
		t.Errorf("fallback download incomplete: %v", err)
	}
}

func TestDownloadRepo_AllBranchesFail(t *testing.T) {
	server := archiveServer(t, "acme", "tools", nil)
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	_, err := client.DownloadRepo(types.Repo{Owner: "acme", Name: "tools", Branch: "main"})
	if err == nil {
		t.Fatal("DownloadRepo() should fail when every branch 404s")
	}
	if !errors.Is(err, &DiscoveryError{Type: ErrorTypeNetwork}) {
		t.Errorf("error = %v, want network error", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status code, got %v", err)
	}
}

func TestBranchCandidates(t *testing.T) {
	tests := []struct {
		configured string
		want       []string
	}{
		{"main", []string{"main", "master"}},
		{"master", []string{"master", "main"}},
		{"dev", []string{"dev", "main", "master"}},
		{"", []string{"main", "master"}},
		{"  main  ", []string{"main", "master"}},
	}

	for _, tt := range tests {
		got := branchCandidates(tt.configured)
		if len(got) != len(tt.want) {
			t.Errorf("branchCandidates(%q) = %v, want %v", tt.configured, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("branchCandidates(%q) = %v, want %v", tt.configured, got, tt.want)
				break
			}
		}
	}
}

func TestExtractArchive_RejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("root/../../escape.txt")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	f.Write([]byte("nope"))
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	dest := t.TempDir()
	if err := extractArchive(buf.Bytes(), dest); err != nil {
		t.Fatalf("extractArchive() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "..", "..", "escape.txt")); !os.IsNotExist(err) {
		t.Error("entry escaping the extraction root must be skipped")
	}
}
