//go:build windows

package syncer

import "os"

// os.Symlink creates a directory symlink on Windows when the target is a
// directory; removal must use Remove on the link itself, never the target.
func createSymlink(src, dest string) error {
	return os.Symlink(src, dest)
}

func removeSymlink(path string) error {
	return os.Remove(path)
}
