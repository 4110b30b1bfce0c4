package demo

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar/tcellbackend"
)

// tcellView is the tcell front end of a Pager.
type tcellView struct {
	screen  tcell.Screen
	pager   *Pager
	tracker tcellbackend.MouseTracker
}

// RunTcell shows p on screen until the user quits or ctx is done. The screen
// must not be initialised yet; RunTcell finalises it before returning.
func RunTcell(ctx context.Context, screen tcell.Screen, p *Pager) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	v := &tcellView{screen: screen, pager: p}
	v.resize()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		v.draw()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if v.handle(ev) {
				return nil
			}
		}
	}
}

func (v *tcellView) resize() {
	w, h := v.screen.Size()
	v.pager.Resize(w, h)
}

// handle applies one event. It reports true when the user asked to quit.
func (v *tcellView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true
		}
		cmd := tcellbackend.KeyCommand(v.pager.Vertical(), ev)
		if cmd == nil {
			v.pager.Apply(AxisX, tcellbackend.KeyCommand(v.pager.Horizontal(), ev))
		} else {
			v.pager.Apply(AxisY, cmd)
		}
	case *tcell.EventMouse:
		if se, ok := v.tracker.Event(ev); ok {
			layout := v.pager.Layout()
			v.pager.HandleEvent(se, layout.Vertical, layout.Horizontal)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			v.tracker.Reset()
		}
	}
	return false
}

func (v *tcellView) draw() {
	v.screen.Clear()
	layout := v.pager.Layout()
	for i, row := range v.pager.Visible(v.pager.Offset(AxisY), v.pager.Offset(AxisX)) {
		drawString(v.screen, layout.Body.X, layout.Body.Y+i, row, tcell.StyleDefault)
	}
	buf := tcellbackend.Screen{Screen: v.screen}
	v.pager.Vertical().Render(layout.Vertical, buf)
	v.pager.Horizontal().Render(layout.Horizontal, buf)
	if !layout.Status.Empty() {
		drawString(v.screen, layout.Status.X, layout.Status.Y, v.pager.Status(), tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
