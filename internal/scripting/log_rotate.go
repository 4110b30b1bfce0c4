package scripting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// RotatingFile is an append-only log file that is renamed to path.1 once it
// would grow past maxBytes. Older backups shift up to path.N; anything beyond
// keep backups is removed. It is safe for concurrent use.
type RotatingFile struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	keep     int
	size     int64
	file     *os.File
}

// OpenRotatingFile opens path for appending, creating parent directories.
// maxSizeMB is raised to at least 1 and keep to at least 0.
func OpenRotatingFile(path string, maxSizeMB, keep int) (*RotatingFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	w := &RotatingFile{
		path:     path,
		maxBytes: int64(max(maxSizeMB, 1)) << 20,
		keep:     max(keep, 0),
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingFile) open() error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	w.file, w.size = f, info.Size()
	return nil
}

// Write appends p, rotating first if p would overflow a non-empty file. A
// single record is never split across files.
func (w *RotatingFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return 0, os.ErrClosed
	}
	if w.size > 0 && w.size+int64(len(p)) > w.maxBytes {
		if err := w.rotate(); err != nil {
			return 0, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotatingFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotatingFile) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil
	backup := func(n int) string { return w.path + "." + strconv.Itoa(n) }

	if w.keep == 0 {
		_ = os.Remove(w.path)
		return w.open()
	}
	_ = os.Remove(backup(w.keep))
	for n := w.keep - 1; n >= 1; n-- {
		_ = os.Rename(backup(n), backup(n+1))
	}
	_ = os.Rename(w.path, backup(1))
	return w.open()
}

var _ io.WriteCloser = (*RotatingFile)(nil)
