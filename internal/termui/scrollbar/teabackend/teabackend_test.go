package teabackend

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

func TestMouseEvent(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.MouseMsg
		want   scrollbar.Event
		wantOk bool
	}{
		{
			name:   "left press",
			msg:    tea.MouseMsg{X: 3, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
			want:   scrollbar.PointerEvent{Column: 3, Row: 7, Kind: scrollbar.PointerDown, Button: scrollbar.ButtonPrimary},
			wantOk: true,
		},
		{
			name:   "left release",
			msg:    tea.MouseMsg{X: 1, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
			want:   scrollbar.PointerEvent{Column: 1, Row: 2, Kind: scrollbar.PointerUp, Button: scrollbar.ButtonPrimary},
			wantOk: true,
		},
		{
			name:   "x10 release",
			msg:    tea.MouseMsg{X: 1, Y: 2, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease},
			want:   scrollbar.PointerEvent{Column: 1, Row: 2, Kind: scrollbar.PointerUp, Button: scrollbar.ButtonPrimary},
			wantOk: true,
		},
		{
			name:   "left motion is a drag",
			msg:    tea.MouseMsg{X: 0, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
			want:   scrollbar.PointerEvent{Column: 0, Row: 9, Kind: scrollbar.PointerDrag, Button: scrollbar.ButtonPrimary},
			wantOk: true,
		},
		{
			name:   "right press",
			msg:    tea.MouseMsg{Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
			want:   scrollbar.PointerEvent{Kind: scrollbar.PointerDown, Button: scrollbar.ButtonSecondary},
			wantOk: true,
		},
		{
			name:   "middle press",
			msg:    tea.MouseMsg{Button: tea.MouseButtonMiddle, Action: tea.MouseActionPress},
			want:   scrollbar.PointerEvent{Kind: scrollbar.PointerDown, Button: scrollbar.ButtonMiddle},
			wantOk: true,
		},
		{
			name:   "backward press",
			msg:    tea.MouseMsg{Button: tea.MouseButtonBackward, Action: tea.MouseActionPress},
			want:   scrollbar.PointerEvent{Kind: scrollbar.PointerDown, Button: scrollbar.ButtonOther},
			wantOk: true,
		},
		{
			name: "hover motion",
			msg:  tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionMotion},
		},
		{
			name: "press without button",
			msg:  tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionPress},
		},
		{
			name:   "wheel up",
			msg:    tea.MouseMsg{X: 4, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress},
			want:   scrollbar.WheelEvent{Axis: scrollbar.AxisVertical, Delta: -1, Column: 4, Row: 5},
			wantOk: true,
		},
		{
			name:   "wheel down",
			msg:    tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
			want:   scrollbar.WheelEvent{Axis: scrollbar.AxisVertical, Delta: 1},
			wantOk: true,
		},
		{
			name:   "shift wheel down",
			msg:    tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Shift: true},
			want:   scrollbar.WheelEvent{Axis: scrollbar.AxisHorizontal, Delta: 1},
			wantOk: true,
		},
		{
			name:   "wheel left",
			msg:    tea.MouseMsg{Button: tea.MouseButtonWheelLeft, Action: tea.MouseActionPress},
			want:   scrollbar.WheelEvent{Axis: scrollbar.AxisHorizontal, Delta: -1},
			wantOk: true,
		},
		{
			name:   "wheel right",
			msg:    tea.MouseMsg{Button: tea.MouseButtonWheelRight, Action: tea.MouseActionPress},
			want:   scrollbar.WheelEvent{Axis: scrollbar.AxisHorizontal, Delta: 1},
			wantOk: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MouseEvent(tc.msg)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandleMouse_DragSequence(t *testing.T) {
	sb := scrollbar.NewVertical(scrollbar.Lengths{ContentLen: 16, ViewportLen: 8})
	area := scrollbar.Rect{X: 10, Y: 0, Width: 1, Height: 4}
	in := scrollbar.NewInteraction()

	press := tea.MouseMsg{X: 10, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	assert.Nil(t, HandleMouse(sb, area, press, in))
	require.True(t, in.Dragging())

	motion := tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
	assert.Equal(t, &scrollbar.Command{Offset: 4}, HandleMouse(sb, area, motion, in))

	hover := tea.MouseMsg{X: 10, Y: 3, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}
	assert.Nil(t, HandleMouse(sb, area, hover, in))
	assert.True(t, in.Dragging())

	release := tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	assert.Nil(t, HandleMouse(sb, area, release, in))
	assert.False(t, in.Dragging())
}

func TestKeyCommand(t *testing.T) {
	v := scrollbar.NewVertical(scrollbar.Lengths{ContentLen: 100, ViewportLen: 20},
		scrollbar.WithOffset(40),
		scrollbar.WithScrollStep(2),
	)
	h := v.With(scrollbar.WithOrientation(scrollbar.Horizontal))

	tests := []struct {
		name string
		sb   scrollbar.ScrollBar
		key  tea.KeyMsg
		want *scrollbar.Command
	}{
		{"down", v, tea.KeyMsg{Type: tea.KeyDown}, &scrollbar.Command{Offset: 42}},
		{"up", v, tea.KeyMsg{Type: tea.KeyUp}, &scrollbar.Command{Offset: 38}},
		{"j", v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, &scrollbar.Command{Offset: 42}},
		{"left on vertical", v, tea.KeyMsg{Type: tea.KeyLeft}, nil},
		{"right", h, tea.KeyMsg{Type: tea.KeyRight}, &scrollbar.Command{Offset: 42}},
		{"h", h, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}, &scrollbar.Command{Offset: 38}},
		{"down on horizontal", h, tea.KeyMsg{Type: tea.KeyDown}, nil},
		{"pgdown", v, tea.KeyMsg{Type: tea.KeyPgDown}, &scrollbar.Command{Offset: 60}},
		{"pgup", h, tea.KeyMsg{Type: tea.KeyPgUp}, &scrollbar.Command{Offset: 20}},
		{"home", v, tea.KeyMsg{Type: tea.KeyHome}, &scrollbar.Command{Offset: 0}},
		{"end", v, tea.KeyMsg{Type: tea.KeyEnd}, &scrollbar.Command{Offset: 80}},
		{"unrelated", v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KeyCommand(tc.sb, tc.key))
		})
	}
}

func TestZoneRect(t *testing.T) {
	_, ok := ZoneRect(nil)
	assert.False(t, ok)

	m := zone.New()
	t.Cleanup(m.Close)
	assert.False(t, func() bool { _, ok := ZoneRect(m.Get("bar")); return ok }())

	view := "xx" + m.Mark("bar", "abc") + "\nyy"
	_ = m.Scan(view)

	var rect scrollbar.Rect
	require.Eventually(t, func() bool {
		var ok bool
		rect, ok = ZoneRect(m.Get("bar"))
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, scrollbar.Rect{X: 2, Y: 0, Width: 3, Height: 1}, rect)
}
