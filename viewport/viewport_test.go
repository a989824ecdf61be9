package viewport

import (
	"math"
	"testing"
)

func TestFitWideWorld(t *testing.T) {
	v := Fit(100, 50, 960, 960, 10)

	if math.Abs(v.Scale-9.4) > 1e-9 {
		t.Errorf("expected scale 9.4, got %f", v.Scale)
	}
	want := Rect{X: 10, Y: 245, W: 940, H: 470}
	if v.Rect != want {
		t.Errorf("expected viewport %+v, got %+v", want, v.Rect)
	}
	if v.Window != (Rect{0, 0, 960, 960}) {
		t.Errorf("expected full window rect, got %+v", v.Window)
	}
}

func TestFitSquareWorld(t *testing.T) {
	v := Fit(100, 100, 960, 960, 10)

	if math.Abs(v.Scale-9.4) > 1e-9 {
		t.Errorf("expected scale 9.4, got %f", v.Scale)
	}
	want := Rect{X: 10, Y: 10, W: 940, H: 940}
	if v.Rect != want {
		t.Errorf("expected viewport %+v, got %+v", want, v.Rect)
	}
}

func TestFitNeverOverflowsPaddedWindow(t *testing.T) {
	const win, pad = 960, 10
	bounds := []struct{ w, h float64 }{
		{1, 1}, {3, 7}, {100, 50}, {50, 100}, {123.456, 78.9},
		{1e-3, 2e-3}, {9999, 1}, {1, 9999}, {640, 480}, {941, 939},
	}

	for _, b := range bounds {
		v := Fit(b.w, b.h, win, win, pad)
		if v.W > win-2*pad || v.H > win-2*pad {
			t.Errorf("bounds %v: viewport %dx%d exceeds padded window", b, v.W, v.H)
		}
		if v.X < pad-1 || v.Y < pad-1 {
			t.Errorf("bounds %v: viewport origin (%d,%d) inside padding", b, v.X, v.Y)
		}

		// One axis fills the padded span; the scale is shared by both.
		sx := float64(win-2*pad) / b.w
		sy := float64(win-2*pad) / b.h
		if v.Scale != math.Min(sx, sy) {
			t.Errorf("bounds %v: scale %f is not the minimum of %f and %f", b, v.Scale, sx, sy)
		}
	}
}

func TestCellMinimumSize(t *testing.T) {
	v := Fit(100, 50, 960, 960, 10)

	c := v.Cell(10, 5, 0)
	if c.W != 1 || c.H != 1 {
		t.Errorf("expected 1x1 cell for zero size, got %dx%d", c.W, c.H)
	}
	if c.X != 94 || c.Y != 47 {
		t.Errorf("expected origin (94,47), got (%d,%d)", c.X, c.Y)
	}

	c = v.Cell(0, 0, 1)
	if c.W != 9 || c.H != 9 {
		t.Errorf("expected 9x9 cell for unit size at scale 9.4, got %dx%d", c.W, c.H)
	}

	c = v.Cell(0, 0, 0.75)
	if c.W != 7 {
		t.Errorf("expected side rounded to 7, got %d", c.W)
	}
}

func TestBorderFramesViewport(t *testing.T) {
	v := Fit(100, 50, 960, 960, 10)
	b := v.Border()

	want := [4]Line{
		{9, 244, 9, 714},
		{949, 244, 949, 714},
		{9, 244, 949, 244},
		{9, 714, 949, 714},
	}
	if b != want {
		t.Errorf("expected border %+v, got %+v", want, b)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	if !r.Contains(10, 10) || !r.Contains(14, 14) {
		t.Error("expected corners inside")
	}
	if r.Contains(15, 10) || r.Contains(9, 12) {
		t.Error("expected outside points to miss")
	}
}
