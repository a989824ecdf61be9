// Package simulation runs the blob and food world the renderer draws.
package simulation

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/palette"
	"github.com/pthm-cable/blobs/renderer"
)

// Simulation holds the world state. It is not safe for concurrent use.
type Simulation struct {
	world *ecs.World
	rng   *rand.Rand

	blobMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
	]
	blobFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
	]
	foodMapper *ecs.Map3[components.Position, components.Body, components.Food]
	foodFilter *ecs.Filter3[components.Position, components.Body, components.Food]

	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]

	pop    config.PopulationConfig
	blob   config.BlobConfig
	food   config.FoodConfig
	width  float64
	height float64

	steps    int64
	numBlobs int
	numFood  int
	births   int64
	deaths   int64

	// Scratch buffers reused across steps.
	pellets []pellet
	eaten   map[ecs.Entity]bool
}

type pellet struct {
	entity ecs.Entity
	pos    components.Position
	body   components.Body
}

// New creates a world sized by cfg.World and seeds the initial population.
func New(cfg *config.Config, rng *rand.Rand) *Simulation {
	world := ecs.NewWorld()

	s := &Simulation{
		world: world,
		rng:   rng,
		blobMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
		](world),
		blobFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
		](world),
		foodMapper: ecs.NewMap3[components.Position, components.Body, components.Food](world),
		foodFilter: ecs.NewFilter3[components.Position, components.Body, components.Food](world),
		posMap:     ecs.NewMap1[components.Position](world),
		bodyMap:    ecs.NewMap1[components.Body](world),
		pop:        cfg.Population,
		blob:       cfg.Blob,
		food:       cfg.Food,
		width:      cfg.World.Width,
		height:     cfg.World.Height,
		eaten:      make(map[ecs.Entity]bool),
	}

	s.spawnInitialBlobs()
	for s.numFood < s.food.Count {
		s.spawnFood()
	}

	return s
}

// Bounds returns the logical size of the arena. It never changes.
func (s *Simulation) Bounds() renderer.Bounds {
	return renderer.Bounds{W: s.width, H: s.height}
}

// Steps returns the number of completed steps.
func (s *Simulation) Steps() int64 {
	return s.steps
}

// Counts returns the live blob and food populations.
func (s *Simulation) Counts() (blobs, food int) {
	return s.numBlobs, s.numFood
}

// spawnInitialBlobs scatters the initial population at random.
func (s *Simulation) spawnInitialBlobs() {
	for i := 0; i < s.pop.InitialBlobs; i++ {
		x := s.rng.Float64() * (s.width - s.blob.InitialSize)
		y := s.rng.Float64() * (s.height - s.blob.InitialSize)
		s.spawnBlob(x, y, s.blob.InitialSize, palette.RandBlobColor(s.rng))
	}
}

// spawnBlob creates a blob at rest.
func (s *Simulation) spawnBlob(x, y, size float64, c palette.Color) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Size: size}
	tint := components.Tint{Color: c}

	s.numBlobs++
	return s.blobMapper.NewEntity(&pos, &vel, &body, &tint)
}

// spawnFood places one pellet at a random position.
func (s *Simulation) spawnFood() ecs.Entity {
	pos := components.Position{
		X: s.rng.Float64() * math.Max(s.width-s.food.Size, 0),
		Y: s.rng.Float64() * math.Max(s.height-s.food.Size, 0),
	}
	body := components.Body{Size: s.food.Size}
	food := components.Food{}

	s.numFood++
	return s.foodMapper.NewEntity(&pos, &body, &food)
}

// Snapshot copies the drawable state into dst, reusing its slices.
// dst does not alias simulation storage.
func (s *Simulation) Snapshot(dst *renderer.Snapshot) {
	dst.Food = dst.Food[:0]
	foodQuery := s.foodFilter.Query()
	for foodQuery.Next() {
		pos, body, _ := foodQuery.Get()
		dst.Food = append(dst.Food, renderer.Entity{X: pos.X, Y: pos.Y, Size: body.Size, Color: palette.Red})
	}

	dst.Blobs = dst.Blobs[:0]
	blobQuery := s.blobFilter.Query()
	for blobQuery.Next() {
		pos, _, body, tint := blobQuery.Get()
		dst.Blobs = append(dst.Blobs, renderer.Entity{X: pos.X, Y: pos.Y, Size: body.Size, Color: tint.Color})
	}
}

// Totals returns cumulative births and deaths since creation.
func (s *Simulation) Totals() (births, deaths int64) {
	return s.births, s.deaths
}
