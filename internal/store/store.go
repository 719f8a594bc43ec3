// Package store owns the SSOT directory tree: one subdirectory per managed
// skill under ~/.skillsync/skills. No other component writes there directly;
// application directories are derived mirrors of this store.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smy-101/skillsync/internal/settings"
)

// Dir returns the SSOT root, creating it if needed.
func Dir() (string, error) {
	dir, err := settings.SSOTDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create SSOT directory: %w", err)
	}
	return dir, nil
}

// SkillPath returns the canonical path for one managed skill directory.
func SkillPath(directory string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, directory), nil
}

// Exists reports whether the store holds a copy of the given skill.
func Exists(directory string) (bool, error) {
	path, err := SkillPath(directory)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat SSOT entry '%s': %w", directory, err)
	}
	return true, nil
}

// CopyIn copies a skill directory from src into the store. A pre-existing
// entry is left untouched.
func CopyIn(src, directory string) (string, error) {
	dest, err := SkillPath(directory)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	if err := CopyDir(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Remove deletes a skill's canonical copy. Removing an absent entry is a
// no-op.
func Remove(directory string) error {
	path, err := SkillPath(directory)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove SSOT entry '%s': %w", directory, err)
	}
	return nil
}

// CopyDir recursively duplicates a directory tree.
func CopyDir(src, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dest, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read directory '%s': %w", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(srcPath, destPath); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", src, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat file '%s': %w", src, err)
	}

	if err := os.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", dest, err)
	}
	return nil
}
