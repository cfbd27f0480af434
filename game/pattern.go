package game

import (
	"math/rand"
	"time"

	"github.com/the-lightning-land/simond/machine"
)

// Pattern is the ordered sequence of channels the user has to repeat.
type Pattern []machine.Channel

// Generator draws patterns from a single random source.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator uses src, or a source seeded from the wall clock if src is nil.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	return &Generator{rand: rand.New(src)}
}

// GetRandom returns a uniformly distributed number in [lower, upper]. An empty
// range yields lower.
func (g *Generator) GetRandom(lower, upper int) int {
	if upper <= lower {
		return lower
	}

	return g.rand.Intn(upper-lower+1) + lower
}

func (g *Generator) Generate(length int) Pattern {
	pattern := make(Pattern, length)

	for i := range pattern {
		pattern[i] = machine.Channel(g.GetRandom(0, machine.NumChannels-1))
	}

	return pattern
}
