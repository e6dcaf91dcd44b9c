package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// Picker chooses the shape of the next cell.
type Picker interface {
	Pick() geom.ShapeKind
}

// RandomPicker draws shapes from weighted, seeded randomness.
type RandomPicker struct {
	rng     *rand.Rand
	weights Weights
}

// NewRandomPicker returns a picker whose sequence is fully determined by seed.
// Weights with no positive entry fall back to DefaultWeights.
func NewRandomPicker(seed uint64, w Weights) *RandomPicker {
	if w.Square < 0 || w.Circle < 0 || w.Triangle < 0 || w.Total() <= 0 {
		w = DefaultWeights
	}
	return &RandomPicker{
		rng:     rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		weights: w,
	}
}

// Pick returns the next shape.
func (p *RandomPicker) Pick() geom.ShapeKind {
	n := p.rng.IntN(p.weights.Total())
	if n < p.weights.Circle {
		return geom.Circle
	}
	n -= p.weights.Circle
	if n < p.weights.Triangle {
		return geom.Triangle
	}
	return geom.Square
}

// SequencePicker replays a fixed list of shapes, wrapping around at the end.
type SequencePicker struct {
	kinds []geom.ShapeKind
	next  int
}

// NewSequencePicker returns a picker cycling through kinds. An empty list
// always yields squares.
func NewSequencePicker(kinds ...geom.ShapeKind) *SequencePicker {
	return &SequencePicker{kinds: kinds}
}

// Pick returns the next shape in the sequence.
func (p *SequencePicker) Pick() geom.ShapeKind {
	if len(p.kinds) == 0 {
		return geom.Square
	}
	k := p.kinds[p.next%len(p.kinds)]
	p.next++
	return k
}
