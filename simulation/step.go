package simulation

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/palette"
)

// Step advances the world by one tick: move, feed, split or starve, regrow.
func (s *Simulation) Step() {
	s.moveBlobs()
	s.feed()
	s.lifecycle()
	s.regrowFood()
	s.steps++
}

// moveBlobs applies a random walk, shrinks by metabolism and keeps every
// blob inside the arena by reflecting off its edges.
func (s *Simulation) moveBlobs() {
	query := s.blobFilter.Query()
	for query.Next() {
		pos, vel, body, _ := query.Get()

		vel.X += (s.rng.Float64()*2 - 1) * s.blob.Jitter
		vel.Y += (s.rng.Float64()*2 - 1) * s.blob.Jitter
		if speed := math.Hypot(vel.X, vel.Y); speed > s.blob.Speed {
			scale := s.blob.Speed / speed
			vel.X *= scale
			vel.Y *= scale
		}

		pos.X, vel.X = reflect(pos.X+vel.X, vel.X, s.width-body.Size)
		pos.Y, vel.Y = reflect(pos.Y+vel.Y, vel.Y, s.height-body.Size)

		body.Size = math.Max(body.Size-s.blob.Metabolism, 0)
	}
}

// reflect folds x back into [0, limit], flipping v when it hits an edge.
func reflect(x, v, limit float64) (float64, float64) {
	limit = math.Max(limit, 0)
	switch {
	case x < 0:
		return math.Min(-x, limit), -v
	case x > limit:
		return math.Max(2*limit-x, 0), -v
	}
	return x, v
}

// feed lets each blob eat every pellet it overlaps. A pellet is eaten once.
func (s *Simulation) feed() {
	s.pellets = s.pellets[:0]
	foodQuery := s.foodFilter.Query()
	for foodQuery.Next() {
		pos, body, _ := foodQuery.Get()
		s.pellets = append(s.pellets, pellet{entity: foodQuery.Entity(), pos: *pos, body: *body})
	}

	clear(s.eaten)
	blobQuery := s.blobFilter.Query()
	for blobQuery.Next() {
		pos, _, body, _ := blobQuery.Get()
		for _, p := range s.pellets {
			if s.eaten[p.entity] || !components.Overlaps(*pos, *body, p.pos, p.body) {
				continue
			}
			s.eaten[p.entity] = true
			body.Size += p.body.Size * s.blob.EatGain
		}
		// Growth extends right and down; keep the square in the arena.
		pos.X = math.Max(math.Min(pos.X, s.width-body.Size), 0)
		pos.Y = math.Max(math.Min(pos.Y, s.height-body.Size), 0)
	}

	for e := range s.eaten {
		s.world.RemoveEntity(e)
		s.numFood--
	}
}

// lifecycle removes starved blobs and splits those that reached SplitSize.
func (s *Simulation) lifecycle() {
	var starved, grown []ecs.Entity

	query := s.blobFilter.Query()
	for query.Next() {
		_, _, body, _ := query.Get()
		switch {
		case body.Size < s.blob.MinSize:
			starved = append(starved, query.Entity())
		case body.Size >= s.blob.SplitSize:
			grown = append(grown, query.Entity())
		}
	}

	for _, e := range starved {
		s.world.RemoveEntity(e)
		s.numBlobs--
		s.deaths++
	}

	for _, e := range grown {
		if s.numBlobs >= s.pop.MaxBlobs {
			break
		}
		s.split(e)
	}

	if s.numBlobs == 0 {
		s.spawnInitialBlobs()
	}
}

// split halves a blob and places a newly coloured child beside it.
func (s *Simulation) split(parent ecs.Entity) {
	body := s.bodyMap.Get(parent)
	pos := s.posMap.Get(parent)

	half := body.Size / 2
	body.Size = half

	x, _ := reflect(pos.X+half, 0, s.width-half)
	y, _ := reflect(pos.Y+(s.rng.Float64()*2-1)*half, 0, s.height-half)
	s.spawnBlob(x, y, half, palette.RandBlobColor(s.rng))
	s.births++
}

// regrowFood tops the pellet count back up to its target, a few per step.
func (s *Simulation) regrowFood() {
	for i := 0; i < s.food.RegrowPerStep && s.numFood < s.food.Count; i++ {
		s.spawnFood()
	}
}
