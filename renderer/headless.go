package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/viewport"
)

// Headless composes frames onto an offscreen canvas instead of a window.
// With FrameDir set, every FrameEvery-th presented frame is saved as PNG.
type Headless struct {
	FrameDir   string
	FrameEvery int

	video    bool
	canvas   *image.RGBA
	ready    bool
	textures map[uint32]*image.RGBA
	nextID   uint32
	frames   int
}

// NewHeadless returns an unopened offscreen backend.
func NewHeadless() *Headless {
	return &Headless{textures: make(map[uint32]*image.RGBA)}
}

// InitVideo marks the backend as started.
func (h *Headless) InitVideo() error {
	h.video = true
	return nil
}

// CreateWindow allocates a w x hgt canvas.
func (h *Headless) CreateWindow(title string, x, y, w, hgt int32) error {
	if !h.video {
		return errors.New("headless: video not initialised")
	}
	if w <= 0 || hgt <= 0 {
		return fmt.Errorf("headless: bad window size %dx%d", w, hgt)
	}
	h.canvas = image.NewRGBA(image.Rect(0, 0, int(w), int(hgt)))
	return nil
}

// CreateRenderer enables drawing onto the canvas. vsync is ignored.
func (h *Headless) CreateRenderer(vsync bool) error {
	if h.canvas == nil {
		return errors.New("headless: no window")
	}
	h.ready = true
	return nil
}

// CreateTexture copies s into an RGBA image.
func (h *Headless) CreateTexture(s *Surface) (Texture, error) {
	if !h.ready {
		return Texture{}, errors.New("headless: no renderer")
	}
	img := &image.RGBA{
		Pix:    s.Bytes(),
		Stride: 4 * int(s.W),
		Rect:   image.Rect(0, 0, int(s.W), int(s.H)),
	}
	h.nextID++
	h.textures[h.nextID] = img
	return Texture{ID: h.nextID, W: s.W, H: s.H}, nil
}

// DestroyTexture drops t.
func (h *Headless) DestroyTexture(t Texture) {
	delete(h.textures, t.ID)
}

// DestroyRenderer drops every texture and stops drawing.
func (h *Headless) DestroyRenderer() {
	clear(h.textures)
	h.ready = false
}

// DestroyWindow releases the canvas.
func (h *Headless) DestroyWindow() {
	h.canvas = nil
}

// QuitVideo marks the backend as stopped.
func (h *Headless) QuitVideo() {
	h.video = false
}

// Clear fills the canvas with c.
func (h *Headless) Clear(c palette.Color) error {
	if !h.ready {
		return errors.New("headless: no renderer")
	}
	xdraw.Draw(h.canvas, h.canvas.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, xdraw.Src)
	return nil
}

// Copy scales t over dst with nearest-neighbour sampling.
func (h *Headless) Copy(t Texture, dst viewport.Rect) error {
	src, ok := h.textures[t.ID]
	if !ok {
		return fmt.Errorf("headless: unknown texture %d", t.ID)
	}
	r := image.Rect(int(dst.X), int(dst.Y), int(dst.X+dst.W), int(dst.Y+dst.H))
	xdraw.NearestNeighbor.Scale(h.canvas, r, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// DrawLine plots a one-pixel line with Bresenham's algorithm.
func (h *Headless) DrawLine(l viewport.Line, c palette.Color) error {
	if !h.ready {
		return errors.New("headless: no renderer")
	}
	col := c.RGBA()
	x, y := int(l.X1), int(l.Y1)
	x2, y2 := int(l.X2), int(l.Y2)
	dx, sx := abs(x2-x), sign(x2-x)
	dy, sy := -abs(y2-y), sign(y2-y)
	e := dx + dy
	for {
		h.canvas.SetRGBA(x, y, col)
		if x == x2 && y == y2 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Present counts the frame and saves it when FrameDir is set.
func (h *Headless) Present() error {
	if !h.ready {
		return errors.New("headless: no renderer")
	}
	h.frames++
	if h.FrameDir == "" {
		return nil
	}
	every := max(h.FrameEvery, 1)
	if h.frames%every != 0 {
		return nil
	}
	return h.saveFrame(filepath.Join(h.FrameDir, fmt.Sprintf("frame_%06d.png", h.frames)))
}

func (h *Headless) saveFrame(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	if err := png.Encode(f, h.canvas); err != nil {
		f.Close()
		return fmt.Errorf("encoding frame: %w", err)
	}
	return f.Close()
}

// DrawStatus writes text in the bottom-left corner.
func (h *Headless) DrawStatus(text string) {
	if h.canvas == nil {
		return
	}
	d := font.Drawer{
		Dst:  h.canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, h.canvas.Bounds().Dy()-4),
	}
	d.DrawString(text)
}

// Frame returns the canvas holding the last composed frame.
func (h *Headless) Frame() *image.RGBA {
	return h.canvas
}

// Frames returns how many frames have been presented.
func (h *Headless) Frames() int {
	return h.frames
}

// Textures returns how many textures are alive.
func (h *Headless) Textures() int {
	return len(h.textures)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
