//go:build !windows

package syncer

import "os"

func createSymlink(src, dest string) error {
	return os.Symlink(src, dest)
}

func removeSymlink(path string) error {
	return os.Remove(path)
}
