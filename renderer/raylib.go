package renderer

import (
	"errors"
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/viewport"
)

const statusBarHeight = 20

// Raylib draws into a native window through raylib.
//
// raylib has no separate video subsystem: the GL context comes up with the
// window. CreateRenderer therefore only checks the context and, with vsync,
// paces presentation to the monitor refresh rate.
type Raylib struct {
	textures map[uint32]rl.Texture2D
	drawing  bool
}

// NewRaylib returns an unopened raylib backend.
func NewRaylib() *Raylib {
	return &Raylib{textures: make(map[uint32]rl.Texture2D)}
}

// InitVideo quiets raylib logging; raylib has no separate video subsystem.
func (b *Raylib) InitVideo() error {
	rl.SetTraceLogLevel(rl.LogWarning)
	return nil
}

// CreateWindow opens the window and moves it to (x, y).
func (b *Raylib) CreateWindow(title string, x, y, w, h int32) error {
	rl.InitWindow(w, h, title)
	if !rl.IsWindowReady() {
		return errors.New("raylib: window not ready")
	}
	rl.SetWindowPosition(int(x), int(y))
	return nil
}

// CreateRenderer checks the GL context and sets frame pacing.
func (b *Raylib) CreateRenderer(vsync bool) error {
	if !rl.IsWindowReady() {
		return errors.New("raylib: no GL context")
	}
	fps := int32(0)
	if vsync {
		fps = int32(rl.GetMonitorRefreshRate(rl.GetCurrentMonitor()))
		if fps <= 0 {
			fps = 60
		}
	}
	rl.SetTargetFPS(fps)
	return nil
}

// CreateTexture uploads s to the GPU.
func (b *Raylib) CreateTexture(s *Surface) (Texture, error) {
	img := rl.NewImage(s.Bytes(), s.W, s.H, 1, rl.UncompressedR8g8b8a8)
	tex := rl.LoadTextureFromImage(img)
	if tex.ID == 0 {
		return Texture{}, fmt.Errorf("raylib: uploading %dx%d texture failed", s.W, s.H)
	}
	b.textures[tex.ID] = tex
	return Texture{ID: tex.ID, W: tex.Width, H: tex.Height}, nil
}

// DestroyTexture unloads t. Unknown handles are ignored.
func (b *Raylib) DestroyTexture(t Texture) {
	if tex, ok := b.textures[t.ID]; ok {
		rl.UnloadTexture(tex)
		delete(b.textures, t.ID)
	}
}

// DestroyRenderer unloads every remaining texture and closes an open frame.
func (b *Raylib) DestroyRenderer() {
	for id, tex := range b.textures {
		rl.UnloadTexture(tex)
		delete(b.textures, id)
	}
	if b.drawing {
		rl.EndDrawing()
		b.drawing = false
	}
}

// DestroyWindow closes the window and its GL context.
func (b *Raylib) DestroyWindow() {
	rl.CloseWindow()
}

// QuitVideo is a no-op; the window owns everything raylib holds.
func (b *Raylib) QuitVideo() {}

// Clear begins a frame if needed and fills it with c.
func (b *Raylib) Clear(c palette.Color) error {
	if !b.drawing {
		rl.BeginDrawing()
		b.drawing = true
	}
	rl.ClearBackground(c.RGBA())
	return nil
}

// Copy stretches t over dst.
func (b *Raylib) Copy(t Texture, dst viewport.Rect) error {
	tex, ok := b.textures[t.ID]
	if !ok {
		return fmt.Errorf("raylib: unknown texture %d", t.ID)
	}
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: float32(tex.Height)}
	dest := rl.Rectangle{X: float32(dst.X), Y: float32(dst.Y), Width: float32(dst.W), Height: float32(dst.H)}
	rl.DrawTexturePro(tex, src, dest, rl.Vector2{}, 0, rl.White)
	return nil
}

// DrawLine draws a one-pixel line.
func (b *Raylib) DrawLine(l viewport.Line, c palette.Color) error {
	rl.DrawLine(l.X1, l.Y1, l.X2, l.Y2, c.RGBA())
	return nil
}

// Present ends the frame and swaps buffers.
func (b *Raylib) Present() error {
	if !b.drawing {
		return errors.New("raylib: present without a frame")
	}
	rl.EndDrawing()
	b.drawing = false
	return nil
}

// DrawStatus draws text in a status bar along the bottom edge.
func (b *Raylib) DrawStatus(text string) {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	gui.StatusBar(rl.Rectangle{X: 0, Y: h - statusBarHeight, Width: w, Height: statusBarHeight}, text)
}

// ShouldClose reports whether the user asked to close the window.
func (b *Raylib) ShouldClose() bool {
	return rl.WindowShouldClose()
}
