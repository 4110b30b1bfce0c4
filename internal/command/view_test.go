package command

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/demo"
	"github.com/joeycumines/termscroll/internal/storage"
	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

type viewRun struct {
	backend string
	pager   *demo.Pager
	smooth  bool
}

func newTestView(cfg *config.Config, terminal bool) (*ViewCommand, *viewRun) {
	return newTestViewWithPositions(cfg, terminal, nil, nil)
}

// newTestViewWithPositions stubs the runners; scroll, when set, runs inside
// the stubbed tea runner.
func newTestViewWithPositions(cfg *config.Config, terminal bool, positions *storage.Store, scroll func(*demo.Pager)) (*ViewCommand, *viewRun) {
	var run viewRun
	c := NewViewCommand(cfg, strings.NewReader(""), positions)
	c.isTerminal = func(io.Writer) bool { return terminal }
	c.runTea = func(ctx context.Context, p *demo.Pager, smooth bool, in io.Reader, out io.Writer) error {
		run = viewRun{backend: "tea", pager: p, smooth: smooth}
		if scroll != nil {
			scroll(p)
		}
		return nil
	}
	c.runTcell = func(ctx context.Context, p *demo.Pager) error {
		run = viewRun{backend: "tcell", pager: p}
		return context.Canceled
	}
	return c, &run
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))
	return path
}

func TestViewCommand_Tea(t *testing.T) {
	path := writeSample(t)
	c, run := newTestView(loadConfig(t, "[view]\nsmooth yes\n"), true)

	_, _, err := runCommand(t, c, path)
	require.NoError(t, err)
	assert.Equal(t, "tea", run.backend)
	assert.True(t, run.smooth)
	require.NotNil(t, run.pager)
	assert.Equal(t, 3, run.pager.Lines())

	run.pager.Resize(40, 5)
	assert.Contains(t, run.pager.Status(), "notes.txt")
}

func TestViewCommand_TcellWithFlags(t *testing.T) {
	path := writeSample(t)
	logFile := filepath.Join(t.TempDir(), "view.log")
	c, run := newTestView(nil, true)

	_, _, err := runCommand(t, c, "-backend", "TCELL", "-title", "mine", "-smooth=false", "-log", logFile, "-log-level", "debug", path)
	require.NoError(t, err, "a cancelled context is a normal exit")
	assert.Equal(t, "tcell", run.backend)
	run.pager.Resize(40, 5)
	assert.Contains(t, run.pager.Status(), "mine")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=view ")
	assert.Contains(t, string(data), "backend=tcell")
	assert.Contains(t, string(data), `msg="view closed"`)
}

func TestViewCommand_Errors(t *testing.T) {
	path := writeSample(t)
	tests := []struct {
		name     string
		terminal bool
		args     []string
		wantErr  string
	}{
		{"no file", true, nil, "expected exactly one file"},
		{"two files", true, []string{path, path}, "expected exactly one file"},
		{"missing file", true, []string{filepath.Join(t.TempDir(), "gone")}, "failed to read"},
		{"bad backend", true, []string{"-backend", "curses", path}, "invalid -backend"},
		{"bad glyphs", true, []string{"-glyphs", "emoji", path}, "-glyphs"},
		{"not a terminal", false, []string{path}, ErrNotTerminal.Error()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, run := newTestView(nil, tc.terminal)
			_, _, err := runCommand(t, c, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Nil(t, run.pager)
		})
	}
}

func TestViewCommand_Resume(t *testing.T) {
	path := writeSample(t)
	positions := storage.NewStore(filepath.Join(t.TempDir(), "positions.json"))

	c, _ := newTestViewWithPositions(nil, true, positions, func(p *demo.Pager) {
		p.Resize(20, 3)
		p.Apply(demo.AxisY, &scrollbar.Command{Offset: 2})
	})
	_, _, err := runCommand(t, c, path)
	require.NoError(t, err)

	pos, ok, err := positions.Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, pos.Y)

	var resumedAt int
	c, run := newTestViewWithPositions(nil, true, positions, func(p *demo.Pager) {
		resumedAt = p.Offset(demo.AxisY)
	})
	_, _, err = runCommand(t, c, "-resume", path)
	require.NoError(t, err)
	require.NotNil(t, run.pager)
	assert.Equal(t, 2, resumedAt)

	// without -resume the view starts at the top but still records
	c, _ = newTestViewWithPositions(nil, true, positions, func(p *demo.Pager) {
		resumedAt = p.Offset(demo.AxisY)
	})
	_, _, err = runCommand(t, c, path)
	require.NoError(t, err)
	assert.Zero(t, resumedAt)
	pos, _, err = positions.Get(path)
	require.NoError(t, err)
	assert.Zero(t, pos.Y)
}

func TestViewCommand_SaveFailureIsAWarning(t *testing.T) {
	path := writeSample(t)
	dir := t.TempDir()
	// a directory where the positions file should be
	bad := filepath.Join(dir, "positions.json")
	require.NoError(t, os.Mkdir(bad, 0755))

	c, _ := newTestViewWithPositions(nil, true, storage.NewStore(bad), nil)
	_, stderr, err := runCommand(t, c, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning:")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&strings.Builder{}))
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
