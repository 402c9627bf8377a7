package engine

import "errors"

var (
	// ErrMissingRenderTarget means the sink has no surface for a column slot.
	// The column is skipped; the engine keeps the others.
	ErrMissingRenderTarget = errors.New("missing render target")

	// ErrDegenerateExtent means an item reported a non-positive size while
	// recycling. Recycling stops for that column until the next frame.
	ErrDegenerateExtent = errors.New("degenerate item extent")

	// ErrUnresolvedKey means a live item had no rail entry during sync.
	// The item is skipped for the frame.
	ErrUnresolvedKey = errors.New("unresolved rail key")

	// ErrNoColumns is returned by New when no column could be bound.
	ErrNoColumns = errors.New("no columns bound")
)
