// Package game wires the simulation, renderer and telemetry into a frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/renderer"
	"github.com/pthm-cable/blobs/simulation"
	"github.com/pthm-cable/blobs/telemetry"
)

// Options configures a Game.
type Options struct {
	Config        *config.Config // nil uses config.Cfg()
	Seed          int64
	Headless      bool
	StepsPerFrame int  // 0 uses the config value
	ShowHUD       bool // forces the status bar on
	OutputDir     string
	FrameDir      string // headless only: where presented frames are saved
	FrameEvery    int
	Logger        *slog.Logger
}

// Game holds the simulation and the resources used to draw it.
type Game struct {
	cfg *config.Config
	log *slog.Logger

	sim     *simulation.Simulation
	backend renderer.Backend
	render  *renderer.Renderer

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lastFlush     int64

	snap          renderer.Snapshot
	stepsPerFrame int
	showHUD       bool
}

// New builds the world and opens the renderer. On error nothing is left open.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	g := &Game{
		cfg:           cfg,
		log:           log,
		sim:           simulation.New(cfg, rand.New(rand.NewSource(opts.Seed))),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		stepsPerFrame: cfg.Display.StepsPerFrame,
		showHUD:       cfg.Display.ShowHUD || opts.ShowHUD,
	}
	if opts.StepsPerFrame > 0 {
		g.stepsPerFrame = opts.StepsPerFrame
	}

	if opts.Headless {
		h := renderer.NewHeadless()
		if opts.FrameDir != "" {
			if err := os.MkdirAll(opts.FrameDir, 0755); err != nil {
				return nil, fmt.Errorf("creating frame directory: %w", err)
			}
			h.FrameDir = opts.FrameDir
			h.FrameEvery = opts.FrameEvery
		}
		g.backend = h
	} else {
		g.backend = renderer.NewRaylib()
	}

	r, err := renderer.Init(g.backend, g.sim.Bounds(),
		renderer.WithLogger(log),
		renderer.WithVSync(cfg.Display.VSync),
		renderer.WithBackground(cfg.Derived.Background),
		renderer.WithPerf(g.perf),
	)
	if err != nil {
		return nil, err
	}
	g.render = r

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		r.Quit()
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		log.Error("failed to write config", "error", err)
	}

	blobs, food := g.sim.Counts()
	log.Info("game ready",
		"seed", opts.Seed,
		"headless", opts.Headless,
		"blobs", blobs,
		"food", food,
		"steps_per_frame", g.stepsPerFrame,
	)
	return g, nil
}

// Update advances the simulation by the configured steps per frame.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerFrame; i++ {
		g.sim.Step()
	}
}

// Draw renders the current world state.
func (g *Game) Draw() {
	if g.showHUD {
		g.render.SetStatus(g.status())
	}
	g.sim.Snapshot(&g.snap)
	g.render.Draw(&g.snap)
	g.flushPerf()
}

func (g *Game) status() string {
	blobs, food := g.sim.Counts()
	births, deaths := g.sim.Totals()
	return fmt.Sprintf("step %d  blobs %d  food %d  births %d  deaths %d",
		g.sim.Steps(), blobs, food, births, deaths)
}

// flushPerf writes frame stats once per completed perf window.
func (g *Game) flushPerf() {
	frames := g.perf.Frames()
	if !g.perf.WindowFull() || frames == g.lastFlush {
		return
	}
	g.lastFlush = frames

	stats := g.perf.Stats()
	if g.cfg.Telemetry.LogPerf {
		g.log.Info("frame stats", "frame", frames, "perf", stats)
	}
	if err := g.outputManager.WritePerf(stats, frames); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}
}

// ShouldClose reports whether the window asked to close.
// Headless runs never do.
func (g *Game) ShouldClose() bool {
	if c, ok := g.backend.(renderer.Closer); ok {
		return c.ShouldClose()
	}
	return false
}

// Frames returns the number of frames drawn.
func (g *Game) Frames() int64 {
	return g.perf.Frames()
}

// Steps returns the number of simulation steps run.
func (g *Game) Steps() int64 {
	return g.sim.Steps()
}

// Unload releases the renderer and closes telemetry output.
// Safe to call more than once.
func (g *Game) Unload() {
	g.render.Quit()
	if err := g.outputManager.Close(); err != nil {
		g.log.Error("failed to close output", "error", err)
	}
}
