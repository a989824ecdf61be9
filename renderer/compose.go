package renderer

import (
	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/telemetry"
)

// Entity is one square in a snapshot, in world units.
type Entity struct {
	X, Y  float64
	Size  float64
	Color palette.Color
}

// Snapshot is the state drawn by one Draw call. The renderer reads it only
// during that call and never modifies it. Food colours are ignored.
type Snapshot struct {
	Food  []Entity
	Blobs []Entity
}

// Draw composes and presents one frame: clear, background, viewport border,
// entity layer, optional status bar, present.
//
// Failure to allocate the entity surface or texture skips the entity layer
// for this frame only. Any failing primitive is logged as a warning and the
// frame carries on.
func (r *Renderer) Draw(snap *Snapshot) {
	if !r.Ready() {
		return
	}

	r.perf.StartFrame()

	r.perf.StartPhase(telemetry.PhaseClear)
	r.check("clear", r.backend.Clear(r.border))

	r.perf.StartPhase(telemetry.PhaseBackground)
	r.check("copy background", r.backend.Copy(r.bgTex, r.view.Window))

	r.perf.StartPhase(telemetry.PhaseBorder)
	for _, l := range r.view.Border() {
		r.check("draw border", r.backend.DrawLine(l, r.border))
	}

	r.perf.StartPhase(telemetry.PhaseEntities)
	r.drawEntities(snap)

	r.perf.StartPhase(telemetry.PhasePresent)
	if sd, ok := r.backend.(StatusDrawer); ok && r.status != "" {
		sd.DrawStatus(r.status)
	}
	r.check("present", r.backend.Present())

	r.perf.EndFrame()
}

// drawEntities rasterises food then blobs onto a frame-scoped surface and
// copies it into the viewport. Blobs win over food on shared pixels.
func (r *Renderer) drawEntities(snap *Snapshot) {
	surf, err := NewSurface(r.view.W, r.view.H)
	if err != nil {
		r.log.Warn("skipping entity layer", "step", "surface", "error", err)
		return
	}

	if snap != nil {
		for _, f := range snap.Food {
			surf.FillRect(r.view.Cell(f.X, f.Y, f.Size), r.food)
		}
		for _, b := range snap.Blobs {
			surf.FillRect(r.view.Cell(b.X, b.Y, b.Size), b.Color)
		}
	}

	tex, err := r.backend.CreateTexture(surf)
	if err != nil {
		r.log.Warn("skipping entity layer", "step", "texture", "error", err)
		return
	}
	r.check("copy entities", r.backend.Copy(tex, r.view.Rect))
	r.backend.DestroyTexture(tex)
}

// check reports a failed primitive. Primitive failures never stop a frame.
func (r *Renderer) check(op string, err error) {
	if err != nil {
		r.log.Warn("render primitive failed", "op", op, "error", err)
	}
}
