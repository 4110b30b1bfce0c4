//go:build !windows

package config

import "os"

func atomicRename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
