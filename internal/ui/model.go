package ui

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/engine"
	"github.com/olivier-w/conveyor/internal/pool"
	"github.com/olivier-w/conveyor/internal/util"
)

// chromeRows is the status line plus the help line under the conveyor.
const chromeRows = 2

const statusTTL = 3 * time.Second

// Model is the Bubbletea model for the conveyor view.
type Model struct {
	eng     *engine.Engine
	surface *surface
	cfg     config.Config
	log     *slog.Logger
	now     func() time.Time

	help   help.Model
	meter  progress.Model
	about  viewport.Model
	reveal railReveal

	width    int
	height   int
	static   bool // window too narrow for physics
	hover    int  // slot under the pointer or keyboard focus, -1 for none
	inside   bool // pointer is over the columns or the rail
	frame    engine.Frame
	started  time.Time
	lastTick time.Time
	quitting bool

	statusMsg     string
	statusMsgTime time.Time
}

// New binds columns to a terminal surface and starts an engine over them.
func New(columns [][]pool.Item, cfg config.Config, log *slog.Logger, rng *rand.Rand) (Model, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := newSurface(cfg.Layout, max(cfg.Physics.BlurHover, cfg.Physics.BlurOverlay))
	eng, err := engine.New(s, columns, engine.Options{
		Physics:    cfg.Physics,
		CloseDelay: cfg.Overlay.CloseDelay,
		Logger:     log,
		Rand:       rng,
		Now:        time.Now(),
	})
	if err != nil {
		return Model{}, fmt.Errorf("starting conveyor: %w", err)
	}

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle

	return Model{
		eng:     eng,
		surface: s,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		help:    h,
		meter:   newMeter(),
		about:   newAbout(cfg.About),
		reveal:  newRailReveal(cfg.FPS, cfg.Overlay.SpringFrequency, cfg.Overlay.SpringDamping),
		hover:   -1,
		started: time.Now(),
	}, nil
}

// WithDrawer returns m with the named drawer already open.
func (m Model) WithDrawer(name string) Model {
	m.eng.Apply(engine.OpenDrawer{Name: name}, m.now())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.cfg.FPS), tea.SetWindowTitle("conveyor"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.advance(time.Time(msg))
		return m, frameCmd(m.cfg.FPS)

	case teardownMsg:
		if m.eng.Teardown(msg.generation) {
			m.log.Debug("overlay torn down", "generation", msg.generation)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Copied %q", msg.title))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.static = width < max(m.cfg.Layout.MinWidth, m.cfg.Layout.Columns*minColWidth)
	m.surface.resize(width, max(1, height-chromeRows))
	m.about = fitAbout(m.about, m.cfg.About, width, height)
	m.help.Width = width
}

// advance runs one animation frame.
func (m *Model) advance(now time.Time) {
	target := 0.0
	if r := m.surface.rail; r != nil && !r.Closing {
		target = 1
	}
	m.reveal.step(target)
	m.lastTick = now
	if !m.static {
		m.frame = m.eng.Step(now)
	}
	if m.statusMsg != "" && now.Sub(m.statusMsgTime) > statusTTL {
		m.statusMsg = ""
	}
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusMsgTime = m.now()
}

func (m *Model) apply(ev engine.Event) tea.Cmd {
	return teardownCmd(m.eng.Apply(ev, m.now()))
}

func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}
	if m.static {
		return m.staticView()
	}

	rows := m.conveyorRows()
	total := m.surface.totalWidth()
	if m.eng.DrawerOpen() {
		box, b := m.placeDrawer()
		for i, l := range strings.Split(box, "\n") {
			if r := b.y + i; r >= 0 && r < len(rows) {
				rows[r] = splice(rows[r], l, b.x, b.w, max(total, b.x+b.w))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString("  " + m.help.View(keys))
	return sb.String()
}

func (m Model) conveyorRows() []string {
	s := m.surface
	cols := make([][]string, len(s.slots))
	for _, slot := range m.eng.Slots() {
		if snap, ok := m.eng.Column(slot); ok && slot < len(cols) {
			cols[slot] = s.renderColumn(snap)
		}
	}

	rows := make([]string, s.height)
	blank := spaces(s.colWidth)
	for r := range rows {
		var sb strings.Builder
		for _, c := range cols {
			if c == nil {
				sb.WriteString(blank)
				continue
			}
			sb.WriteString(c[r])
		}
		rows[r] = sb.String()
	}

	if rw := m.railWidth(); rw > 0 {
		rail := s.renderRail(s.rail, rw)
		x := railX(s.rail.Column, len(s.slots), s.colWidth, rw)
		for r := range rows {
			rows[r] = splice(rows[r], rail[r], x, rw, s.totalWidth())
		}
	}
	return rows
}

// railWidth is the rail's current on-screen width, 0 when hidden.
func (m Model) railWidth() int {
	if m.surface.rail == nil {
		return 0
	}
	return m.reveal.width(min(m.cfg.Overlay.RailWidth, m.surface.colWidth))
}

func (m Model) statusLine() string {
	left := modeLabel(m.frame.Mode, m.eng.Drawer(), m.frame.Drifting)
	speed := 0.0
	if m.hover >= 0 {
		if snap, ok := m.eng.Column(m.hover); ok {
			speed = snap.Velocity
		}
	}
	meter := m.meter.ViewAs(speedRatio(speed, m.cfg.Physics.WheelClamp)) + "  " +
		statusStyle.Render(util.FormatDuration(m.lastTick.Sub(m.started)))
	msg := ""
	if m.statusMsg != "" {
		msg = helpStyle.Render(m.statusMsg)
	}
	return renderStatus(m.width, left, meter, msg)
}

// staticView lists each column on one line, for windows too narrow to
// animate.
func (m Model) staticView() string {
	var sb strings.Builder
	sb.WriteString("\n  " + headerStyle.Render("conveyor") + "\n\n")
	for _, slot := range m.eng.Slots() {
		snap, _ := m.eng.Column(slot)
		titles := make([]string, len(snap.Items))
		for i, it := range snap.Items {
			titles[i] = it.Kind.Badge() + " " + it.Label()
		}
		sb.WriteString("  " + ansi.Truncate(strings.Join(titles, "  "), max(1, m.width-4), "…") + "\n")
	}
	if m.eng.DrawerOpen() {
		sb.WriteString("\n" + drawerStyle.Render(m.drawerContent()) + "\n")
	}
	sb.WriteString("\n  " + m.help.View(keys))
	return sb.String()
}
