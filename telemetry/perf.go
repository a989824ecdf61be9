package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one rendered frame.
const (
	PhaseClear      = "clear"
	PhaseBackground = "background"
	PhaseBorder     = "border"
	PhaseEntities   = "entities"
	PhasePresent    = "present"
)

// Phases lists the frame phases in drawing order.
var Phases = []string{PhaseClear, PhaseBackground, PhaseBorder, PhaseEntities, PhasePresent}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
// All methods are no-ops on a nil collector.
type PerfCollector struct {
	windowSize    int
	samples       []FrameSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
	frames        int64
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]FrameSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	if p == nil {
		return
	}
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.lastPhase = ""

	p.samples[p.writeIndex] = FrameSample{
		Duration: now.Sub(p.frameStart),
		Phases:   p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.frames++
}

// Frames returns the number of frames recorded since creation.
func (p *PerfCollector) Frames() int64 {
	if p == nil {
		return 0
	}
	return p.frames
}

// WindowFull reports whether the rolling window has just wrapped, i.e. the
// last frame completed a full window.
func (p *PerfCollector) WindowFull() bool {
	return p != nil && p.frames > 0 && p.frames%int64(p.windowSize) == 0
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	Samples int

	AvgFrame    time.Duration
	MinFrame    time.Duration
	MaxFrame    time.Duration
	StdDevFrame time.Duration
	P95Frame    time.Duration

	// Average duration and share of frame time per phase.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FPS float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil || p.sampleCount == 0 {
		return s
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		durations[i] = float64(sample.Duration)
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}

	mean := stat.Mean(durations, nil)
	s.Samples = p.sampleCount
	s.AvgFrame = time.Duration(mean)
	s.MinFrame = time.Duration(floats.Min(durations))
	s.MaxFrame = time.Duration(floats.Max(durations))
	if p.sampleCount > 1 {
		s.StdDevFrame = time.Duration(stat.StdDev(durations, nil))
	}

	sort.Float64s(durations)
	s.P95Frame = time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		s.PhaseAvg[phase] = avg
		if mean > 0 {
			s.PhasePct[phase] = float64(avg) / mean * 100
		}
	}

	if mean > 0 {
		s.FPS = float64(time.Second) / mean
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Float64("fps", s.FPS),
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of frame stats.
type PerfStatsCSV struct {
	Frame         int64   `csv:"frame"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	StdDevFrameUS int64   `csv:"stddev_frame_us"`
	P95FrameUS    int64   `csv:"p95_frame_us"`
	FPS           float64 `csv:"fps"`
	ClearPct      float64 `csv:"clear_pct"`
	BackgroundPct float64 `csv:"background_pct"`
	BorderPct     float64 `csv:"border_pct"`
	EntitiesPct   float64 `csv:"entities_pct"`
	PresentPct    float64 `csv:"present_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:         frame,
		AvgFrameUS:    s.AvgFrame.Microseconds(),
		MinFrameUS:    s.MinFrame.Microseconds(),
		MaxFrameUS:    s.MaxFrame.Microseconds(),
		StdDevFrameUS: s.StdDevFrame.Microseconds(),
		P95FrameUS:    s.P95Frame.Microseconds(),
		FPS:           s.FPS,
		ClearPct:      s.PhasePct[PhaseClear],
		BackgroundPct: s.PhasePct[PhaseBackground],
		BorderPct:     s.PhasePct[PhaseBorder],
		EntitiesPct:   s.PhasePct[PhaseEntities],
		PresentPct:    s.PhasePct[PhasePresent],
	}
}
