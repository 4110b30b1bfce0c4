package demo

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar/teabackend"
)

const (
	verticalZone   = "termscroll-vbar"
	horizontalZone = "termscroll-hbar"
)

var statusStyle = lipgloss.NewStyle().Reverse(true)

// AnimateMsg advances the smooth scrolling spring by one frame.
type AnimateMsg time.Time

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

// Model is the Bubble Tea front end of a Pager.
type Model struct {
	pager    *Pager
	zone     *zone.Manager
	viewport viewport.Model

	smooth    bool
	spring    harmonica.Spring
	animY     float64
	velY      float64
	animX     float64
	velX      float64
	animating bool
	shownX    int

	quitting bool
}

// NewModel wraps p. With smooth set, offset changes are animated with a
// critically damped spring instead of applied at once.
func NewModel(p *Pager, smooth bool) *Model {
	return &Model{
		pager:    p,
		zone:     zone.New(),
		viewport: viewport.New(0, 0),
		smooth:   smooth,
		spring:   harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9),
		shownX:   -1,
	}
}

// Close releases the zone manager.
func (m *Model) Close() { m.zone.Close() }

// Pager returns the wrapped pager.
func (m *Model) Pager() *Pager { return m.pager }

// Display returns the offsets currently drawn, which trail the pager's
// offsets while an animation runs.
func (m *Model) Display() (y, x int) {
	return int(math.Round(m.animY)), int(math.Round(m.animX))
}

// Animating reports whether a smooth scroll is in progress.
func (m *Model) Animating() bool { return m.animating }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pager.Resize(msg.Width, msg.Height)
		body := m.pager.Layout().Body
		m.viewport.Width, m.viewport.Height = body.Width, body.Height
		m.shownX = -1
		m.snap()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case AnimateMsg:
		return m.handleAnimate()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	cmd := teabackend.KeyCommand(m.pager.Vertical(), msg)
	if m.pager.Apply(AxisY, cmd) {
		return m, m.scrolled()
	}
	if cmd == nil {
		cmd = teabackend.KeyCommand(m.pager.Horizontal(), msg)
		if m.pager.Apply(AxisX, cmd) {
			return m, m.scrolled()
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev, ok := teabackend.MouseEvent(msg)
	if !ok {
		return m, nil
	}
	layout := m.pager.Layout()
	vArea, hArea := layout.Vertical, layout.Horizontal
	// Prefer the zones from the last render; they are empty until the first
	// scan completes.
	if r, ok := teabackend.ZoneRect(m.zone.Get(verticalZone)); ok {
		vArea = r
	}
	if r, ok := teabackend.ZoneRect(m.zone.Get(horizontalZone)); ok {
		hArea = r
	}
	if changed := m.pager.HandleEvent(ev, vArea, hArea); len(changed) > 0 {
		return m, m.scrolled()
	}
	return m, nil
}

// scrolled moves the display towards the pager offsets.
func (m *Model) scrolled() tea.Cmd {
	if !m.smooth {
		m.snap()
		return nil
	}
	if m.animating {
		return nil
	}
	m.animating = true
	return animateCmd()
}

func (m *Model) handleAnimate() (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}
	ty, tx := float64(m.pager.Offset(AxisY)), float64(m.pager.Offset(AxisX))
	m.animY, m.velY = m.spring.Update(m.animY, ty, m.velY)
	m.animX, m.velX = m.spring.Update(m.animX, tx, m.velX)
	if settled(m.animY, ty, m.velY) && settled(m.animX, tx, m.velX) {
		m.animating = false
		m.snap()
		return m, nil
	}
	m.sync()
	return m, animateCmd()
}

func settled(pos, target, vel float64) bool {
	return math.Abs(pos-target) < 0.5 && math.Abs(vel) < 0.5
}

// snap ends any animation and shows the pager offsets.
func (m *Model) snap() {
	m.animY, m.velY = float64(m.pager.Offset(AxisY)), 0
	m.animX, m.velX = float64(m.pager.Offset(AxisX)), 0
	m.animating = false
	m.sync()
}

// sync pushes the display offsets into the viewport.
func (m *Model) sync() {
	y, x := m.Display()
	if x != m.shownX {
		m.viewport.SetContent(strings.Join(m.pager.Columns(x), "\n"))
		m.shownX = x
	}
	m.viewport.SetYOffset(y)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	layout := m.pager.Layout()
	if layout.Status.Empty() {
		return ""
	}
	y, x := m.Display()

	var top string
	if !layout.Body.Empty() {
		vbar := m.pager.VerticalAt(y).View(layout.Vertical.Width, layout.Vertical.Height)
		top = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.zone.Mark(verticalZone, vbar))
	}
	rows := make([]string, 0, 3)
	if top != "" {
		rows = append(rows, top)
	}
	if !layout.Horizontal.Empty() {
		hbar := m.pager.HorizontalAt(x).View(layout.Horizontal.Width, layout.Horizontal.Height)
		rows = append(rows, m.zone.Mark(horizontalZone, hbar))
	}
	rows = append(rows, statusStyle.Render(m.pager.Status()))
	return m.zone.Scan(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Run shows p in the alternate screen until the user quits or ctx is done.
func Run(ctx context.Context, p *Pager, smooth bool, in io.Reader, out io.Writer) error {
	m := NewModel(p, smooth)
	defer m.Close()
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := prog.Run()
	return err
}

var _ tea.Model = (*Model)(nil)

