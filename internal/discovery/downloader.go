package discovery

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smy-101/skillsync/internal/types"
)

// DownloadRepo downloads a repository archive into a fresh temp directory
// and returns its path. The caller owns the directory and must remove it.
//
// Branches are tried in order: the configured branch first, then "main",
// then "master". The call fails only if every attempt fails, surfacing the
// most recent error.
func (c *Client) DownloadRepo(repo types.Repo) (string, error) {
	tempDir, err := os.MkdirTemp("", "skillsync-repo-")
	if err != nil {
		return "", &DiscoveryError{
			Type:    ErrorTypeFilesystem,
			Message: "failed to create temp directory",
			Err:     err,
		}
	}

	branches := branchCandidates(repo.Branch)

	var lastErr error
	for _, branch := range branches {
		url := c.ArchiveURL(repo.Owner, repo.Name, branch)
		data, err := c.FetchArchive(url)
		if err != nil {
			lastErr = err
			continue
		}
		if err := extractArchive(data, tempDir); err != nil {
			lastErr = err
			continue
		}
		return tempDir, nil
	}

	os.RemoveAll(tempDir)
	if lastErr == nil {
		lastErr = &DiscoveryError{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("download failed for %s/%s", repo.Owner, repo.Name),
		}
	}
	return "", lastErr
}

// branchCandidates builds the fallback chain without duplicates.
func branchCandidates(configured string) []string {
	candidates := []string{}
	configured = strings.TrimSpace(configured)
	if configured != "" {
		candidates = append(candidates, configured)
	}
	for _, fallback := range []string{"main", "master"} {
		if fallback != configured {
			candidates = append(candidates, fallback)
		}
	}
	return candidates
}

// extractArchive unpacks an in-memory zip into dest, stripping the single
// top-level directory GitHub always adds to archive downloads.
func extractArchive(data []byte, dest string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return &DiscoveryError{Type: ErrorTypeArchive, Message: "invalid zip archive", Err: err}
	}

	if len(reader.File) == 0 {
		return &DiscoveryError{Type: ErrorTypeArchive, Message: "empty archive"}
	}

	rootName := strings.SplitN(reader.File[0].Name, "/", 2)[0]
	prefix := rootName + "/"

	for _, file := range reader.File {
		relative := strings.TrimPrefix(file.Name, prefix)
		if relative == file.Name || relative == "" {
			continue
		}

		outPath := filepath.Join(dest, filepath.FromSlash(relative))
		// Reject entries that would escape the extraction root.
		if !strings.HasPrefix(outPath, filepath.Clean(dest)+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return &DiscoveryError{Type: ErrorTypeFilesystem, Message: "failed to create directory", Err: err}
			}
			continue
		}

		if err := extractFile(file, outPath); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return &DiscoveryError{Type: ErrorTypeFilesystem, Message: "failed to create directory", Err: err}
	}

	rc, err := file.Open()
	if err != nil {
		return &DiscoveryError{Type: ErrorTypeArchive, Message: "failed to read archive entry", Err: err}
	}
	defer rc.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return &DiscoveryError{Type: ErrorTypeFilesystem, Message: "failed to create file", Err: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return &DiscoveryError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to write file '%s'", outPath),
			Err:     err,
		}
	}
	return nil
}
