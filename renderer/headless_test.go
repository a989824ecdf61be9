package renderer

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/blobs/palette"
)

func TestHeadlessFrame(t *testing.T) {
	h := NewHeadless()
	r := mustInit(t, h)
	defer r.Quit()

	r.Draw(&Snapshot{
		Food:  []Entity{{X: 20, Y: 20, Size: 1}},
		Blobs: []Entity{{X: 0, Y: 0, Size: 2, Color: palette.Blue}},
	})

	frame := h.Frame()
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}

	if got := frame.RGBAAt(0, 0); got != white {
		t.Errorf("expected white background outside the viewport, got %v", got)
	}
	if got := frame.RGBAAt(9, 244); got != black {
		t.Errorf("expected border corner at (9,244), got %v", got)
	}
	if got := frame.RGBAAt(949, 400); got != black {
		t.Errorf("expected right border at x=949, got %v", got)
	}
	if got := frame.RGBAAt(500, 714); got != black {
		t.Errorf("expected bottom border at y=714, got %v", got)
	}

	// Blob at the world origin lands on the viewport origin.
	if got := frame.RGBAAt(10, 245); got != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Errorf("expected blue blob at viewport origin, got %v", got)
	}
	// Food at (20,20) is at 188 pixels from the viewport origin.
	if got := frame.RGBAAt(10+188, 245+188); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("expected red food, got %v", got)
	}
	// Empty viewport pixels let the background through.
	if got := frame.RGBAAt(600, 600); got != white {
		t.Errorf("expected background inside empty viewport, got %v", got)
	}

	if h.Frames() != 1 {
		t.Errorf("expected 1 presented frame, got %d", h.Frames())
	}
	if h.Textures() != 1 {
		t.Errorf("expected only the background texture alive, got %d", h.Textures())
	}
}

func TestHeadlessQuitReleases(t *testing.T) {
	h := NewHeadless()
	r := mustInit(t, h)
	r.Draw(nil)
	r.Quit()

	if h.Textures() != 0 {
		t.Errorf("expected no textures after Quit, got %d", h.Textures())
	}
	if h.Frame() != nil {
		t.Error("expected canvas released after Quit")
	}
	r.Quit()
}

func TestHeadlessWritesFrames(t *testing.T) {
	dir := t.TempDir()
	h := NewHeadless()
	h.FrameDir = dir
	h.FrameEvery = 2

	r := mustInit(t, h)
	defer r.Quit()
	for i := 0; i < 5; i++ {
		r.Draw(nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 frame files, got %d", len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_000004.png")); err != nil {
		t.Errorf("expected frame_000004.png: %v", err)
	}
}

func TestHeadlessStatus(t *testing.T) {
	h := NewHeadless()
	r := mustInit(t, h)
	defer r.Quit()

	r.SetStatus("blobs 12")
	r.Draw(nil)

	// Some glyph pixels in the bottom-left corner must be dark.
	frame := h.Frame()
	b := frame.Bounds()
	dark := 0
	for y := b.Max.Y - 16; y < b.Max.Y; y++ {
		for x := 0; x < 80; x++ {
			if frame.RGBAAt(x, y).R < 0x80 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected status text to be drawn")
	}
}

func TestHeadlessRequiresOrder(t *testing.T) {
	h := NewHeadless()
	if err := h.CreateWindow("x", 0, 0, 10, 10); err == nil {
		t.Error("expected window creation to fail before InitVideo")
	}
	if err := h.CreateRenderer(true); err == nil {
		t.Error("expected renderer creation to fail without a window")
	}
	if _, err := h.CreateTexture(&Surface{W: 1, H: 1, Pix: make([]palette.Color, 1)}); err == nil {
		t.Error("expected texture creation to fail without a renderer")
	}
}
