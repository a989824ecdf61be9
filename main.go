package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render offscreen instead of opening a window")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	stepsPerFrame := flag.Int("steps-per-frame", 0, "Simulation steps per frame (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for perf CSV and config snapshot")
	frameDir := flag.String("frame-dir", "", "Headless only: directory for PNG frames")
	frameEvery := flag.Int("frame-every", 1, "Headless only: save every Nth frame")
	hud := flag.Bool("hud", false, "Show the status bar")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.New(game.Options{
		Seed:          rngSeed,
		Headless:      *headless,
		StepsPerFrame: *stepsPerFrame,
		ShowHUD:       *hud,
		OutputDir:     *outputDir,
		FrameDir:      *frameDir,
		FrameEvery:    *frameEvery,
		Logger:        logger,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !g.ShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frames() >= *maxFrames {
			slog.Info("max frames reached", "frame", g.Frames(), "step", g.Steps())
			return
		}
	}
}
