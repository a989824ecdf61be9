package renderer

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/viewport"
)

// MaxSurfaceSide bounds either dimension of a Surface.
const MaxSurfaceSide = 8192

// ErrSurfaceSize is returned for surfaces with an unusable size.
var ErrSurfaceSize = errors.New("invalid surface size")

// Surface is a CPU pixel buffer of packed colours. A new surface is fully
// transparent.
type Surface struct {
	W, H int32
	Pix  []palette.Color
}

// NewSurface allocates a w x h surface.
func NewSurface(w, h int32) (*Surface, error) {
	if w <= 0 || h <= 0 || w > MaxSurfaceSide || h > MaxSurfaceSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceSize, w, h)
	}
	return &Surface{
		W:   w,
		H:   h,
		Pix: make([]palette.Color, int(w)*int(h)),
	}, nil
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c palette.Color) {
	for i := range s.Pix {
		s.Pix[i] = c
	}
}

// FillRect sets the pixels of r to c. r is clipped to the surface.
func (s *Surface) FillRect(r viewport.Rect, c palette.Color) {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, s.W), min(r.Y+r.H, s.H)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for y := y0; y < y1; y++ {
		row := s.Pix[int(y)*int(s.W):]
		for x := x0; x < x1; x++ {
			row[x] = c
		}
	}
}

// At returns the pixel at (x, y), or 0 outside the surface.
func (s *Surface) At(x, y int32) palette.Color {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return 0
	}
	return s.Pix[int(y)*int(s.W)+int(x)]
}

// Bytes encodes the surface as R, G, B, A bytes per pixel, row-major.
func (s *Surface) Bytes() []byte {
	order := palette.Active().Order
	buf := make([]byte, 4*len(s.Pix))
	for i, p := range s.Pix {
		order.PutUint32(buf[4*i:], uint32(p))
	}
	return buf
}
