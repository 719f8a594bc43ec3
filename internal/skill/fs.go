package skill

import (
	"os"
	"path/filepath"
)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func joinSlash(base, slashPath string) string {
	return filepath.Join(base, filepath.FromSlash(slashPath))
}

func removeAllQuiet(path string) {
	_ = os.RemoveAll(path)
}
