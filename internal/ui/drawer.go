package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/conveyor/internal/engine"
)

const (
	drawerMaxWidth  = 64
	drawerMaxHeight = 16
)

// drawerBox is the on-screen rectangle of the open drawer, borders included.
type drawerBox struct {
	x, y, w, h int
}

func (b drawerBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func newAbout(text string) viewport.Model {
	return fitAbout(viewport.New(0, 0), text, drawerMaxWidth+4, drawerMaxHeight+2)
}

// fitAbout resizes the about viewport to the window, rewrapping its text.
func fitAbout(vp viewport.Model, text string, width, height int) viewport.Model {
	w := min(drawerMaxWidth, width-4) - 6
	h := min(drawerMaxHeight, height-2) - 4
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	vp.Width = w
	vp.Height = h
	vp.SetContent(ansi.Wrap(text, w, " "))
	return vp
}

func (m Model) drawerContent() string {
	switch m.eng.Drawer() {
	case engine.DrawerAbout:
		return headerStyle.Render("about") + "\n\n" + m.about.View()
	case engine.DrawerPlay:
		h := m.help
		h.ShowAll = true
		return headerStyle.Render("controls") + "\n\n" + h.View(keys)
	}
	return ""
}

// placeDrawer centers the drawer over the conveyor area.
func (m Model) placeDrawer() (string, drawerBox) {
	box := drawerStyle.Render(m.drawerContent())
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	b := drawerBox{
		x: max(0, (m.width-w)/2),
		y: max(0, (m.surface.height-h)/2),
		w: w,
		h: h,
	}
	return box, b
}
