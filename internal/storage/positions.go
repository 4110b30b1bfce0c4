// Package storage remembers where each viewed file was last scrolled to.
//
// Positions live in a single JSON file next to the configuration. Every update
// is a read-modify-write under an exclusive file lock, so concurrent viewers
// never lose each other's entries.
package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/joeycumines/termscroll/internal/config"
)

const (
	// CurrentVersion is written to every positions file.
	CurrentVersion = 1

	// DefaultMaxEntries bounds the number of remembered files; the least
	// recently updated entries are dropped first.
	DefaultMaxEntries = 200

	lockPoll = 10 * time.Millisecond
)

// ErrLocked is returned by tryLock when another process holds the lock.
var ErrLocked = errors.New("positions file is locked")

// Position is the remembered scroll state of one file.
type Position struct {
	Y         int       `json:"y"`
	X         int       `json:"x"`
	UpdatedAt time.Time `json:"updated_at"`
}

type document struct {
	Version int                 `json:"version"`
	Files   map[string]Position `json:"files"`
}

// Store reads and writes a positions file.
type Store struct {
	path       string
	maxEntries int
	now        func() time.Time
}

// NewStore returns a store backed by path. The file is created on the first
// Put.
func NewStore(path string) *Store {
	return &Store{path: path, maxEntries: DefaultMaxEntries, now: time.Now}
}

// PathFor is positions.json in the directory of configPath.
func PathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "positions.json")
}

// Path returns the positions file path.
func (s *Store) Path() string { return s.path }

// Key normalizes file into the key positions are stored under.
func Key(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return filepath.Clean(file)
}

// Get returns the position of file. A missing positions file, or a file with
// no entry, reports false.
func (s *Store) Get(file string) (Position, bool, error) {
	doc, err := s.read()
	if err != nil {
		return Position{}, false, err
	}
	pos, ok := doc.Files[Key(file)]
	return pos, ok, nil
}

// Put records the position of file, waiting for the lock until ctx is done.
func (s *Store) Put(ctx context.Context, file string, pos Position) error {
	lock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock(lock)

	doc, err := s.read()
	if err != nil {
		return err
	}
	pos.UpdatedAt = s.now()
	doc.Files[Key(file)] = pos
	s.prune(doc)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}
	if err := config.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("failed to write positions: %w", err)
	}
	return nil
}

func (s *Store) read() (*document, error) {
	doc := &document{Version: CurrentVersion, Files: make(map[string]Position)}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc.Version > CurrentVersion {
		return nil, fmt.Errorf("positions file version %d is newer than supported version %d", doc.Version, CurrentVersion)
	}
	if doc.Files == nil {
		doc.Files = make(map[string]Position)
	}
	doc.Version = CurrentVersion
	return doc, nil
}

func (s *Store) prune(doc *document) {
	if s.maxEntries <= 0 || len(doc.Files) <= s.maxEntries {
		return
	}
	keys := make([]string, 0, len(doc.Files))
	for k := range doc.Files {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := doc.Files[a].UpdatedAt.Compare(doc.Files[b].UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, k := range keys[:len(keys)-s.maxEntries] {
		delete(doc.Files, k)
	}
}

func (s *Store) lock(ctx context.Context) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create positions directory: %w", err)
	}
	lockPath := s.path + ".lock"
	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()
	for {
		f, err := tryLock(lockPath)
		if !errors.Is(err, ErrLocked) {
			return f, err
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", lockPath, ctx.Err())
		case <-ticker.C:
		}
	}
}
