package engine

// Mode is the global interaction state.
type Mode int

const (
	Idle Mode = iota
	Hovering
	OverlayOpen
	DrawerOpen
)

// Drawer names used by the terminal front end.
const (
	DrawerPlay  = "play"
	DrawerAbout = "about"
)

func (m Mode) String() string {
	switch m {
	case Hovering:
		return "hovering"
	case OverlayOpen:
		return "overlay"
	case DrawerOpen:
		return "drawer"
	default:
		return "idle"
	}
}

// Mode derives the interaction state. Drawer and overlay take precedence
// over hover; a closing overlay no longer counts as open.
func (e *Engine) Mode() Mode {
	switch {
	case e.drawer != "":
		return DrawerOpen
	case e.overlay.Open && !e.overlay.Closing:
		return OverlayOpen
	case e.anyHovered():
		return Hovering
	default:
		return Idle
	}
}

// blurTarget picks the blur a column should ease toward. The overlay keeps
// its stronger dimming through the close transition.
func (e *Engine) blurTarget(c *Column, hoveredAny bool) float64 {
	switch {
	case e.overlay.Open:
		if c.Slot == e.overlay.Column {
			return 0
		}
		return e.phys.BlurOverlay
	case hoveredAny:
		if c.Hovered {
			return 0
		}
		return e.phys.BlurHover
	default:
		return 0
	}
}

func (e *Engine) anyHovered() bool {
	for _, c := range e.cols {
		if c.Hovered {
			return true
		}
	}
	return false
}
