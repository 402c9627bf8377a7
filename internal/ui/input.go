package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/conveyor/internal/engine"
)

type zone int

const (
	zoneOutside zone = iota
	zoneColumn
	zoneRail
)

// hitTest maps a cell to what lies under it. The rail sits above the
// columns it covers.
func (m Model) hitTest(x, y int) (zone, int) {
	s := m.surface
	if x < 0 || y < 0 || y >= s.height {
		return zoneOutside, -1
	}
	if rw := m.railWidth(); rw > 0 {
		rx := railX(s.rail.Column, len(s.slots), s.colWidth, rw)
		if x >= rx && x < rx+rw {
			return zoneRail, -1
		}
	}
	slot := x / s.colWidth
	if slot >= len(s.slots) {
		return zoneOutside, -1
	}
	if _, ok := m.eng.Column(slot); !ok {
		return zoneOutside, -1
	}
	return zoneColumn, slot
}

// cellUnits converts a conveyor row to engine units, measured at the middle
// of the cell.
func (m Model) cellUnits(row int) float64 {
	return (float64(row) + 0.5) * m.cfg.Layout.UnitsPerRow
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.static {
		return m, nil
	}
	if m.eng.DrawerOpen() {
		return m.handleDrawerMouse(msg)
	}

	z, slot := m.hitTest(msg.X, msg.Y)
	cmd := m.track(z, slot)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := m.cfg.Layout.WheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		switch z {
		case zoneRail:
			return m, tea.Batch(cmd, m.apply(engine.OverlayScroll{Delta: delta}))
		case zoneColumn:
			return m, tea.Batch(cmd, m.apply(engine.PushScroll{Column: slot, Delta: delta}))
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m, tea.Batch(cmd, m.click(z, slot, msg.Y))
	}
	return m, cmd
}

// track updates hover state as the pointer moves between columns.
func (m *Model) track(z zone, slot int) tea.Cmd {
	var cmds []tea.Cmd
	if z != zoneColumn {
		slot = -1
	}
	if slot != m.hover {
		if m.hover >= 0 {
			cmds = append(cmds, m.apply(engine.HoverLeave{Column: m.hover}))
		}
		if slot >= 0 {
			cmds = append(cmds, m.apply(engine.HoverEnter{Column: slot}))
		}
		m.hover = slot
	}
	inside := z != zoneOutside
	if m.inside && !inside {
		cmds = append(cmds, m.apply(engine.PointerExit{}))
	}
	m.inside = inside
	return tea.Batch(cmds...)
}

func (m *Model) click(z zone, slot, row int) tea.Cmd {
	switch z {
	case zoneRail:
		return nil
	case zoneColumn:
		if it, top, ok := m.eng.ItemAt(slot, m.cellUnits(row)); ok {
			return m.apply(engine.OpenOverlay{Column: slot, Key: it.Key, Anchor: top})
		}
		if o := m.eng.Overlay(); o.Open && o.Column == slot {
			return nil
		}
	}
	return m.apply(engine.OutsideClick{})
}

func (m Model) handleDrawerMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if _, b := m.placeDrawer(); !b.contains(msg.X, msg.Y) {
			return m, m.apply(engine.CloseDrawer{Name: m.eng.Drawer()})
		}
		return m, nil
	}
	if m.eng.Drawer() == engine.DrawerAbout {
		var cmd tea.Cmd
		m.about, cmd = m.about.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, keys.Escape):
		return m, m.apply(engine.Escape{})
	case key.Matches(msg, keys.About):
		return m, m.apply(engine.ToggleDrawer{Name: engine.DrawerAbout})
	case key.Matches(msg, keys.Play):
		return m, m.apply(engine.ToggleDrawer{Name: engine.DrawerPlay})
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.eng.DrawerOpen() {
		if m.eng.Drawer() == engine.DrawerAbout {
			var cmd tea.Cmd
			m.about, cmd = m.about.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.static {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Left):
		return m, m.focus(m.hover - 1)
	case key.Matches(msg, keys.Right):
		return m, m.focus(m.hover + 1)
	case key.Matches(msg, keys.Up):
		return m, m.push(-m.cfg.Layout.KeyStep)
	case key.Matches(msg, keys.Down):
		return m, m.push(m.cfg.Layout.KeyStep)
	case key.Matches(msg, keys.Open):
		return m, m.openFocused()
	case key.Matches(msg, keys.Copy):
		return m, m.copyActive()
	}
	return m, nil
}

// focus moves the keyboard hover to slot, wrapping around the edges.
func (m *Model) focus(slot int) tea.Cmd {
	slots := m.eng.Slots()
	if len(slots) == 0 {
		return nil
	}
	if m.hover < 0 {
		slot = slots[0]
	}
	n := len(m.surface.slots)
	slot = ((slot % n) + n) % n
	if _, ok := m.eng.Column(slot); !ok {
		slot = slots[0]
	}
	var cmds []tea.Cmd
	if m.hover >= 0 {
		cmds = append(cmds, m.apply(engine.HoverLeave{Column: m.hover}))
	}
	cmds = append(cmds, m.apply(engine.HoverEnter{Column: slot}))
	m.hover = slot
	return tea.Batch(cmds...)
}

// push scrolls the rail while it is showing, else the focused column.
func (m *Model) push(delta float64) tea.Cmd {
	if o := m.eng.Overlay(); o.Open && !o.Closing {
		return m.apply(engine.OverlayScroll{Delta: delta})
	}
	if m.hover < 0 {
		return nil
	}
	return m.apply(engine.PushScroll{Column: m.hover, Delta: delta})
}

// openFocused opens the rail on the first card fully in view in the focused
// column.
func (m *Model) openFocused() tea.Cmd {
	if m.hover < 0 {
		return nil
	}
	half := m.cfg.Layout.UnitsPerRow / 2
	for row := 0; row < m.surface.height; row++ {
		it, top, ok := m.eng.ItemAt(m.hover, m.cellUnits(row))
		if ok && top >= -half {
			return m.apply(engine.OpenOverlay{Column: m.hover, Key: it.Key, Anchor: top})
		}
	}
	return nil
}

// copyActive copies the active item's title to the system clipboard.
func (m Model) copyActive() tea.Cmd {
	o := m.eng.Overlay()
	if !o.Open || o.Closing {
		return nil
	}
	snap, ok := m.eng.Column(o.Column)
	if !ok {
		return nil
	}
	for _, it := range snap.Items {
		if it.Key != o.ActiveKey {
			continue
		}
		title := it.Label()
		return func() tea.Msg {
			return copiedMsg{title: title, err: clipboard.WriteAll(title)}
		}
	}
	return nil
}
