package simulation

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/renderer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func isBlobColor(c palette.Color) bool {
	for _, bc := range palette.BlobColors {
		if bc == c {
			return true
		}
	}
	return false
}

func TestNewSeedsPopulation(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, rand.New(rand.NewSource(1)))

	blobs, food := s.Counts()
	if blobs != cfg.Population.InitialBlobs {
		t.Errorf("expected %d blobs, got %d", cfg.Population.InitialBlobs, blobs)
	}
	if food != cfg.Food.Count {
		t.Errorf("expected %d food, got %d", cfg.Food.Count, food)
	}

	b := s.Bounds()
	if b.W != cfg.World.Width || b.H != cfg.World.Height {
		t.Errorf("unexpected bounds %+v", b)
	}

	var snap renderer.Snapshot
	s.Snapshot(&snap)
	if len(snap.Blobs) != blobs || len(snap.Food) != food {
		t.Errorf("snapshot sizes %d/%d do not match counts %d/%d", len(snap.Blobs), len(snap.Food), blobs, food)
	}
	for _, e := range snap.Blobs {
		if !isBlobColor(e.Color) {
			t.Errorf("blob colour %#08x not from the blob table", e.Color)
		}
	}
}

func TestStepKeepsInvariants(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, rand.New(rand.NewSource(2)))

	var snap renderer.Snapshot
	for i := 0; i < 2000; i++ {
		s.Step()
	}
	if s.Steps() != 2000 {
		t.Errorf("expected 2000 steps, got %d", s.Steps())
	}

	s.Snapshot(&snap)
	blobs, food := s.Counts()
	if len(snap.Blobs) != blobs || len(snap.Food) != food {
		t.Fatalf("counts %d/%d drifted from world %d/%d", blobs, food, len(snap.Blobs), len(snap.Food))
	}
	if blobs == 0 || blobs > cfg.Population.MaxBlobs {
		t.Errorf("blob count %d outside (0, %d]", blobs, cfg.Population.MaxBlobs)
	}
	if food > cfg.Food.Count {
		t.Errorf("food count %d above target %d", food, cfg.Food.Count)
	}

	const eps = 1e-9
	for _, e := range append(snap.Blobs, snap.Food...) {
		if e.X < -eps || e.Y < -eps || e.X+e.Size > cfg.World.Width+eps || e.Y+e.Size > cfg.World.Height+eps {
			t.Errorf("entity %+v escaped the arena", e)
		}
	}
}

func TestFeedingGrowsBlob(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.InitialBlobs = 0
	cfg.Food.Count = 0
	cfg.Blob.Jitter = 0
	cfg.Blob.Metabolism = 0
	s := New(cfg, rand.New(rand.NewSource(3)))

	s.spawnBlob(10, 10, 1, palette.Green)
	for _, x := range []float64{10.5, 10.2} {
		pos := components.Position{X: x, Y: 10.5}
		body := components.Body{Size: 0.4}
		s.foodMapper.NewEntity(&pos, &body, &components.Food{})
		s.numFood++
	}
	far := components.Position{X: 50, Y: 40}
	s.foodMapper.NewEntity(&far, &components.Body{Size: 0.4}, &components.Food{})
	s.numFood++

	s.Step()

	var snap renderer.Snapshot
	s.Snapshot(&snap)
	if len(snap.Food) != 1 {
		t.Fatalf("expected only the far pellet left, got %d", len(snap.Food))
	}
	if _, food := s.Counts(); food != 1 {
		t.Errorf("expected food count 1, got %d", food)
	}
	want := 1 + 2*0.4*cfg.Blob.EatGain
	if got := snap.Blobs[0].Size; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected size %f, got %f", want, got)
	}
}

func TestSplitAndStarve(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.InitialBlobs = 0
	cfg.Food.Count = 0
	cfg.Blob.Jitter = 0
	cfg.Blob.Metabolism = 0
	s := New(cfg, rand.New(rand.NewSource(4)))

	s.spawnBlob(20, 20, cfg.Blob.SplitSize, palette.Red)
	s.spawnBlob(40, 20, cfg.Blob.MinSize/2, palette.Black)

	s.Step()

	blobs, _ := s.Counts()
	if blobs != 2 {
		t.Fatalf("expected split parent and child, got %d blobs", blobs)
	}
	births, deaths := s.Totals()
	if births != 1 || deaths != 1 {
		t.Errorf("expected 1 birth and 1 death, got %d/%d", births, deaths)
	}

	var snap renderer.Snapshot
	s.Snapshot(&snap)
	for _, e := range snap.Blobs {
		if e.Size != cfg.Blob.SplitSize/2 {
			t.Errorf("expected halves of %f, got %f", cfg.Blob.SplitSize, e.Size)
		}
		if e.Color == palette.Black {
			t.Error("starved blob still present")
		}
	}
}

func TestRespawnWhenExtinct(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.InitialBlobs = 3
	cfg.Blob.Metabolism = 10
	s := New(cfg, rand.New(rand.NewSource(5)))

	s.Step()

	if blobs, _ := s.Counts(); blobs != 3 {
		t.Errorf("expected population reseeded to 3, got %d", blobs)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, rand.New(rand.NewSource(6)))

	var snap renderer.Snapshot
	s.Snapshot(&snap)
	orig := snap.Blobs[0]
	snap.Blobs[0].X = -100

	var again renderer.Snapshot
	s.Snapshot(&again)
	if again.Blobs[0] != orig {
		t.Errorf("mutating the snapshot changed the world: %+v vs %+v", again.Blobs[0], orig)
	}

	// Reuse keeps capacity.
	capBefore := cap(snap.Food)
	s.Snapshot(&snap)
	if cap(snap.Food) != capBefore {
		t.Error("expected snapshot slices to be reused")
	}
}

func TestReflect(t *testing.T) {
	testCases := []struct {
		x, v, limit float64
		wantX       float64
		wantV       float64
	}{
		{5, 1, 10, 5, 1},
		{-2, -1, 10, 2, 1},
		{12, 1, 10, 8, -1},
		{-30, -1, 10, 10, 1},
		{3, 1, -1, 0, -1},
	}
	for _, tc := range testCases {
		x, v := reflect(tc.x, tc.v, tc.limit)
		if x != tc.wantX || v != tc.wantV {
			t.Errorf("reflect(%v, %v, %v) = (%v, %v), want (%v, %v)", tc.x, tc.v, tc.limit, x, v, tc.wantX, tc.wantV)
		}
	}
}
