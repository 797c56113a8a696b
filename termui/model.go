package termui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zoobzio/clockz"

	"github.com/agiangrant/swiperefresh"
	"github.com/agiangrant/swiperefresh/nested"
)

const (
	// DefaultPixelsPerRow maps layout pixels to terminal rows.
	DefaultPixelsPerRow = 16

	// DefaultLoadTime is how long a simulated load takes.
	DefaultLoadTime = 1200 * time.Millisecond

	wheelRows   = 3
	wheelIdle   = 200 * time.Millisecond
	headerRows  = 1
	footerRows  = 1
	defaultFeed = 40
)

// Options configures the demo model.
type Options struct {
	Config       swiperefresh.Config
	Clock        clockz.Clock
	Logger       swiperefresh.Logger
	PixelsPerRow int
	LoadTime     time.Duration
	Items        []string
}

// Model is the Bubble Tea model hosting a layout.
type Model struct {
	layout *swiperefresh.Layout
	ind    *Indicator
	feed   *Feed

	frame    time.Duration
	ppr      int
	loadTime time.Duration

	width  int
	height int
	ready  bool

	pendingLoad bool
	loading     bool
	loadSeq     int
	loads       int

	dragging bool
	wheeling bool
	wheelSeq int

	status string
	styles styles
}

type styles struct {
	header lipgloss.Style
	footer lipgloss.Style
	status lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
	}
}

// New creates the model and its layout.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg.Density == 0 {
		cfg = swiperefresh.DefaultConfig()
	}

	m := &Model{
		frame:    time.Duration(cfg.Animation.FrameMS) * time.Millisecond,
		ppr:      opts.PixelsPerRow,
		loadTime: opts.LoadTime,
		styles:   defaultStyles(),
	}
	if m.ppr <= 0 {
		m.ppr = DefaultPixelsPerRow
	}
	if m.loadTime <= 0 {
		m.loadTime = DefaultLoadTime
	}

	items := opts.Items
	if len(items) == 0 {
		items = sampleItems(0, defaultFeed)
	}
	m.feed = NewFeed(items)
	m.ind = NewIndicator(cfg.CircleDiameter())

	layoutOpts := []swiperefresh.Option{
		swiperefresh.WithConfig(cfg),
		swiperefresh.WithContent(m.feed),
		swiperefresh.WithOnRefresh(func() { m.pendingLoad = true }),
	}
	if opts.Clock != nil {
		layoutOpts = append(layoutOpts, swiperefresh.WithClock(opts.Clock))
	}
	if opts.Logger != nil {
		layoutOpts = append(layoutOpts, swiperefresh.WithLogger(opts.Logger))
	}

	layout, err := swiperefresh.New(m.ind, layoutOpts...)
	if err != nil {
		return nil, fmt.Errorf("create layout: %w", err)
	}
	m.layout = layout
	return m, nil
}

// Layout returns the hosted layout.
func (m *Model) Layout() *swiperefresh.Layout { return m.layout }

// Feed returns the feed content.
func (m *Model) Feed() *Feed { return m.feed }

// ============================================================================
// Messages
// ============================================================================

type frameMsg time.Time

type loadDoneMsg struct{ seq int }

type wheelIdleMsg struct{ seq int }

// ConfigMsg delivers a reloaded configuration.
type ConfigMsg struct {
	Config swiperefresh.Config
	Err    error
}

// StatusMsg replaces the status line.
type StatusMsg string

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func loadCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return loadDoneMsg{seq: seq}
	})
}

func wheelIdleCmd(seq int) tea.Cmd {
	return tea.Tick(wheelIdle, func(time.Time) tea.Msg {
		return wheelIdleMsg{seq: seq}
	})
}

// ============================================================================
// Update
// ============================================================================

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.frame)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feed.SetSize(msg.Width, max(0, msg.Height-headerRows-footerRows))
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case frameMsg:
		m.layout.Registry().Tick(time.Time(msg))
		cmds := []tea.Cmd{frameCmd(m.frame)}
		if cmd := m.startLoad(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case loadDoneMsg:
		if !m.loading || msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.loads++
		m.feed.Prepend(sampleItems(m.loads*100, 3)...)
		if err := m.layout.SetRefreshing(false); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case wheelIdleMsg:
		if msg.seq == m.wheelSeq && m.wheeling {
			m.wheeling = false
			m.layout.StopNestedScroll(nested.TypeTouch)
		}
		return m, nil

	case ConfigMsg:
		if msg.Err != nil {
			m.status = "config: " + msg.Err.Error()
			return m, nil
		}
		if err := m.layout.ApplyConfig(msg.Config); err != nil {
			m.status = "config: " + err.Error()
			return m, nil
		}
		m.frame = time.Duration(msg.Config.Animation.FrameMS) * time.Millisecond
		m.loading = false
		m.status = "config reloaded"
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil
	}

	return m, nil
}

// startLoad turns a refresh request from the layout into a simulated load.
func (m *Model) startLoad() tea.Cmd {
	if !m.pendingLoad || m.loading {
		return nil
	}
	m.pendingLoad = false
	m.loading = true
	m.loadSeq++
	return loadCmd(m.loadTime, m.loadSeq)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		if m.layout.IsRefreshing() {
			return m, nil
		}
		if err := m.layout.SetRefreshing(true); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.pendingLoad = true
		return m, m.startLoad()

	case "s":
		m.loading = false
		if err := m.layout.SetRefreshing(false); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case "e":
		m.layout.SetEnabled(!m.layout.IsEnabled())
		m.loading = false
		m.wheeling = false
		return m, nil

	case "up", "k":
		m.feed.ScrollUp(1)
	case "down", "j":
		m.feed.ScrollDown(1)
	}
	return m, nil
}

// handleMouse turns a left-button drag into touch events and the wheel into
// nested scrolling with the feed as the scrolling child.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	y := float64((msg.Y - headerRows) * m.ppr)

	if msg.Action == tea.MouseActionRelease {
		if m.dragging {
			m.dragging = false
			m.layout.EndDrag(y)
		}
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			m.dragging = true
			m.layout.BeginDrag(y)
		case tea.MouseActionMotion:
			if m.dragging {
				m.layout.Drag(y)
			}
		}
		return nil

	case tea.MouseButtonWheelUp:
		m.wheelUp()
		m.wheelSeq++
		return wheelIdleCmd(m.wheelSeq)

	case tea.MouseButtonWheelDown:
		m.wheelDown()
		m.wheelSeq++
		return wheelIdleCmd(m.wheelSeq)
	}
	return nil
}

func (m *Model) wheelSession() bool {
	if m.wheeling && m.layout.NestedScrollInProgress() {
		return true
	}
	l := m.layout
	if !l.StartNestedScroll(nested.AxisVertical, nested.TypeTouch) {
		return false
	}
	l.NestedScrollAccepted(nested.AxisVertical, nested.TypeTouch)
	m.wheeling = true
	return true
}

func (m *Model) wheelUp() {
	scrolled := m.feed.ScrollUp(wheelRows)
	left := wheelRows - scrolled
	if left == 0 || !m.wheelSession() {
		return
	}
	var consumed nested.Delta
	m.layout.NestedScroll(0, -scrolled*m.ppr, 0, -left*m.ppr, nested.TypeTouch, &consumed)
}

func (m *Model) wheelDown() {
	if !m.wheeling || !m.layout.NestedScrollInProgress() {
		m.feed.ScrollDown(wheelRows)
		return
	}
	var consumed nested.Delta
	m.layout.NestedPreScroll(0, wheelRows*m.ppr, &consumed, nested.TypeTouch)
	m.feed.ScrollDown((wheelRows*m.ppr - consumed.Y) / m.ppr)
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	lines := strings.Split(m.feed.View(), "\n")
	if row, ok := m.ind.Row(m.ppr); ok && row < len(lines) {
		if glyph := m.ind.Render(); glyph != "" {
			lines[row] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, glyph)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		strings.Join(lines, "\n"),
		m.styles.footer.Render("drag down or wheel up at the top to refresh · r refresh · s stop · e enable · q quit"),
	)
}

func (m *Model) renderHeader() string {
	state := "idle"
	switch {
	case !m.layout.IsEnabled():
		state = "disabled"
	case m.layout.IsRefreshing():
		state = "refreshing"
	case m.layout.Dragging():
		state = "pulling"
	}
	header := m.styles.header.Render(fmt.Sprintf("swiperefresh · %s · %s · loads %d", state, m.ind.CurrentPhase(), m.loads))
	if m.status != "" {
		header += "  " + m.styles.status.Render(m.status)
	}
	return header
}

func sampleItems(start, n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", start+i+1)
	}
	return items
}

// Run starts the program and blocks until it exits. ready, when non-nil,
// receives the program before it starts so callers can Send to it.
func Run(opts Options, ready func(*tea.Program)) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if ready != nil {
		ready(p)
	}
	_, err = p.Run()
	return err
}
