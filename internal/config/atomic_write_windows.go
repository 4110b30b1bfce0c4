//go:build windows

package config

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// atomicRename replaces newpath with oldpath. os.Rename on Windows fails when
// the target exists, MoveFileEx does not.
func atomicRename(oldpath, newpath string) error {
	from, err := windows.UTF16PtrFromString(oldpath)
	if err != nil {
		return fmt.Errorf("failed to convert oldpath to UTF16: %w", err)
	}
	to, err := windows.UTF16PtrFromString(newpath)
	if err != nil {
		return fmt.Errorf("failed to convert newpath to UTF16: %w", err)
	}
	if err := windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH); err != nil {
		return fmt.Errorf("MoveFileEx failed: %w", err)
	}
	return nil
}
