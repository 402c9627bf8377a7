package engine

// Event is an input fact handed to Engine.Apply. Input handlers only build
// events; all state changes happen inside Apply.
type Event interface {
	event()
}

// PushScroll is a wheel or drag delta aimed at the column in Column (a slot).
type PushScroll struct {
	Column int
	Delta  float64
}

// OverlayScroll is a delta aimed at the info rail's own viewport.
type OverlayScroll struct {
	Delta float64
}

// HoverEnter marks the pointer entering a column.
type HoverEnter struct {
	Column int
}

// HoverLeave marks the pointer leaving a column.
type HoverLeave struct {
	Column int
}

// PointerExit marks the pointer leaving the conveyor entirely.
type PointerExit struct{}

// OpenOverlay opens the info rail for Key in Column. Anchor is the rail
// position, in engine units, at which the clicked item's label should sit.
type OpenOverlay struct {
	Column int
	Key    string
	Anchor float64
}

// CloseOverlay requests the info rail to close.
type CloseOverlay struct{}

// OutsideClick is a click that hit neither the rail nor its column.
type OutsideClick struct{}

// Escape closes the overlay and every drawer.
type Escape struct{}

// OpenDrawer opens the named drawer, closing the overlay and other drawers.
type OpenDrawer struct {
	Name string
}

// CloseDrawer closes the named drawer if it is the open one.
type CloseDrawer struct {
	Name string
}

// ToggleDrawer opens the named drawer or closes it when already open.
type ToggleDrawer struct {
	Name string
}

func (PushScroll) event()    {}
func (OverlayScroll) event() {}
func (HoverEnter) event()    {}
func (HoverLeave) event()    {}
func (PointerExit) event()   {}
func (OpenOverlay) event()   {}
func (CloseOverlay) event()  {}
func (OutsideClick) event()  {}
func (Escape) event()        {}
func (OpenDrawer) event()    {}
func (CloseDrawer) event()   {}
func (ToggleDrawer) event()  {}
