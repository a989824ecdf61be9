package renderer

import (
	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/viewport"
)

// Texture is a backend-owned image handle.
type Texture struct {
	ID   uint32
	W, H int32
}

// Backend is the graphics subsystem the renderer drives.
//
// Acquisition happens in the order InitVideo, CreateWindow, CreateRenderer,
// and release in the reverse order. The renderer only releases what it
// successfully acquired, so implementations need not guard against
// unbalanced calls.
type Backend interface {
	InitVideo() error
	CreateWindow(title string, x, y, w, h int32) error
	CreateRenderer(vsync bool) error
	CreateTexture(s *Surface) (Texture, error)

	DestroyTexture(t Texture)
	DestroyRenderer()
	DestroyWindow()
	QuitVideo()

	// Clear starts a frame by filling the whole target with c.
	Clear(c palette.Color) error
	// Copy stretches t over dst, blending by alpha.
	Copy(t Texture, dst viewport.Rect) error
	DrawLine(l viewport.Line, c palette.Color) error
	// Present shows the composed frame, waiting for vsync if enabled.
	Present() error
}

// StatusDrawer is implemented by backends able to draw a one-line status bar.
type StatusDrawer interface {
	DrawStatus(text string)
}

// Closer is implemented by backends with a user-closable window.
type Closer interface {
	ShouldClose() bool
}
