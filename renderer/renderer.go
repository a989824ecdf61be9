// Package renderer draws simulation snapshots into a fixed-size window.
//
// A Renderer owns the window, the rendering context and the background
// texture. Init acquires them, Draw composes and presents one frame per call,
// and Quit releases everything that was acquired. All three run on the
// caller's goroutine; Draw must not be called concurrently.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/telemetry"
	"github.com/pthm-cable/blobs/viewport"
)

// Window geometry.
const (
	WindowTitle  = "Blobs"
	WindowX      = 100
	WindowY      = 100
	WindowWidth  = 960
	WindowHeight = 960
	Padding      = 10
)

// ErrInit wraps every initialisation failure.
var ErrInit = errors.New("renderer init")

// Bounds is the logical size of the simulated arena.
type Bounds struct {
	W, H float64
}

// Renderer holds the graphics resources acquired by Init.
type Renderer struct {
	backend Backend
	log     *slog.Logger
	perf    *telemetry.PerfCollector

	vsync      bool
	background palette.Color
	border     palette.Color
	food       palette.Color
	status     string

	view  viewport.Viewport
	bgTex Texture

	// Acquisition state, one flag per resource.
	videoUp    bool
	windowUp   bool
	rendererUp bool
	bgUp       bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for init diagnostics and frame warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithVSync toggles vertical-sync presentation (default on).
func WithVSync(on bool) Option {
	return func(r *Renderer) { r.vsync = on }
}

// WithBackground sets the colour of the background plane (default white).
func WithBackground(c palette.Color) Option {
	return func(r *Renderer) { r.background = c }
}

// WithPerf records per-phase frame timings into pc.
func WithPerf(pc *telemetry.PerfCollector) Option {
	return func(r *Renderer) { r.perf = pc }
}

// Init acquires the video subsystem, a window, a vsync rendering context and
// the background texture, in that order. If any step fails, everything
// acquired so far is released and an error wrapping ErrInit is returned.
func Init(b Backend, bounds Bounds, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		backend:    b,
		log:        slog.Default(),
		vsync:      true,
		background: palette.White,
		border:     palette.Black,
		food:       palette.Red,
	}
	for _, opt := range opts {
		opt(r)
	}

	if b == nil {
		return nil, fmt.Errorf("%w: no backend", ErrInit)
	}
	if !(bounds.W > 0 && bounds.H > 0) {
		return nil, fmt.Errorf("%w: bounds %gx%g must be positive", ErrInit, bounds.W, bounds.H)
	}

	if err := r.acquire(bounds); err != nil {
		r.log.Error("renderer init failed", "error", err)
		r.Quit()
		return nil, err
	}

	r.log.Info("renderer ready",
		"window_w", WindowWidth,
		"window_h", WindowHeight,
		"viewport", r.view.Rect,
		"scale", r.view.Scale,
		"vsync", r.vsync,
	)
	return r, nil
}

// acquire performs the init steps. Returning nil is the only success path.
func (r *Renderer) acquire(bounds Bounds) error {
	if err := r.backend.InitVideo(); err != nil {
		return initError("initialising video", err)
	}
	r.videoUp = true

	if err := r.backend.CreateWindow(WindowTitle, WindowX, WindowY, WindowWidth, WindowHeight); err != nil {
		return initError("creating window", err)
	}
	r.windowUp = true

	if err := r.backend.CreateRenderer(r.vsync); err != nil {
		return initError("creating renderer", err)
	}
	r.rendererUp = true

	r.view = viewport.Fit(bounds.W, bounds.H, WindowWidth, WindowHeight, Padding)

	bg, err := NewSurface(WindowWidth, WindowHeight)
	if err != nil {
		return initError("creating background surface", err)
	}
	bg.Fill(r.background)

	tex, err := r.backend.CreateTexture(bg)
	if err != nil {
		return initError("creating background texture", err)
	}
	r.bgTex = tex
	r.bgUp = true

	return nil
}

func initError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInit, step, err)
}

// Quit releases the background texture, rendering context, window and video
// subsystem, in that order, skipping anything not acquired. It is safe on a
// nil or partially initialised Renderer and may be called repeatedly.
func (r *Renderer) Quit() {
	if r == nil || r.backend == nil {
		return
	}
	if r.bgUp {
		r.backend.DestroyTexture(r.bgTex)
		r.bgUp = false
	}
	if r.rendererUp {
		r.backend.DestroyRenderer()
		r.rendererUp = false
	}
	if r.windowUp {
		r.backend.DestroyWindow()
		r.windowUp = false
	}
	if r.videoUp {
		r.backend.QuitVideo()
		r.videoUp = false
	}
}

// Ready reports whether every resource is held.
func (r *Renderer) Ready() bool {
	return r != nil && r.videoUp && r.windowUp && r.rendererUp && r.bgUp
}

// Viewport returns the area entities are drawn into.
func (r *Renderer) Viewport() viewport.Viewport {
	return r.view
}

// SetStatus sets the text of the status bar drawn on the next frames.
// An empty string hides it. Ignored by backends without a status bar.
func (r *Renderer) SetStatus(text string) {
	r.status = text
}
