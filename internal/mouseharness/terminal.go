//go:build unix

// Package mouseharness drives terminal programs through a pseudo terminal,
// sending keys and SGR mouse reports and capturing everything they draw.
//
// Coordinates are 1-indexed, as in the SGR encoding: column 1, row 1 is the
// top left cell.
package mouseharness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Button numbers of the SGR mouse encoding.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2

	motionFlag = 32
	wheelUp    = 64
	wheelDown  = 65
)

// Terminal is a pseudo terminal pair. The program under test uses TTY; the
// harness writes input to, and reads output from, the controlling side.
type Terminal struct {
	ptmx, tty *os.File

	mu  sync.Mutex
	out bytes.Buffer

	done chan struct{}
}

// Open allocates a pseudo terminal of cols x rows cells.
func Open(cols, rows int) (*Terminal, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(tty, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		_ = tty.Close()
		_ = ptmx.Close()
		return nil, fmt.Errorf("failed to size pty: %w", err)
	}
	t := &Terminal{ptmx: ptmx, tty: tty, done: make(chan struct{})}
	go t.read()
	return t, nil
}

func (t *Terminal) read() {
	defer close(t.done)
	buf := make([]byte, 4096)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			t.mu.Lock()
			t.out.Write(buf[:n])
			t.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// TTY is the program side of the terminal.
func (t *Terminal) TTY() *os.File { return t.tty }

// Output returns everything written to the terminal so far, escape sequences
// included.
func (t *Terminal) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.String()
}

// WaitFor polls the output until it contains s.
func (t *Terminal) WaitFor(ctx context.Context, s string) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if strings.Contains(t.Output(), s) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", s, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Type sends raw input.
func (t *Terminal) Type(s string) error {
	_, err := io.WriteString(t.ptmx, s)
	return err
}

func (t *Terminal) sgr(button, x, y int, final byte) error {
	if err := t.Type(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x, y, final)); err != nil {
		return fmt.Errorf("failed to send mouse event: %w", err)
	}
	return nil
}

// Press sends a button press.
func (t *Terminal) Press(x, y, button int) error { return t.sgr(button, x, y, 'M') }

// Release sends a button release.
func (t *Terminal) Release(x, y, button int) error { return t.sgr(button, x, y, 'm') }

// Move sends motion with button held.
func (t *Terminal) Move(x, y, button int) error { return t.sgr(button|motionFlag, x, y, 'M') }

// Click presses and releases the left button.
func (t *Terminal) Click(x, y int) error {
	if err := t.Press(x, y, ButtonLeft); err != nil {
		return err
	}
	return t.Release(x, y, ButtonLeft)
}

// Drag presses the left button at from, moves through every point in path and
// releases at the last one.
func (t *Terminal) Drag(fromX, fromY int, path ...[2]int) error {
	if err := t.Press(fromX, fromY, ButtonLeft); err != nil {
		return err
	}
	x, y := fromX, fromY
	for _, p := range path {
		x, y = p[0], p[1]
		if err := t.Move(x, y, ButtonLeft); err != nil {
			return err
		}
	}
	return t.Release(x, y, ButtonLeft)
}

// ScrollWheel sends one wheel notch, "up" or "down".
func (t *Terminal) ScrollWheel(x, y int, direction string) error {
	switch direction {
	case "up":
		return t.sgr(wheelUp, x, y, 'M')
	case "down":
		return t.sgr(wheelDown, x, y, 'M')
	}
	return fmt.Errorf("invalid wheel direction %q", direction)
}

// Close releases both sides of the terminal.
func (t *Terminal) Close() error {
	err := t.tty.Close()
	if perr := t.ptmx.Close(); err == nil {
		err = perr
	}
	<-t.done
	return err
}
