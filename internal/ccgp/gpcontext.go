// Package ccgp implements the cooperative coevolutionary GP driver: two
// populations of programs, context individuals used as cross-population
// evaluation partners, and the breeding operators (tournament selection,
// subtree crossover, subtree mutation) that produce each new generation.
package ccgp

import (
	"math/rand"

	"github.com/fjss-ccgp/ccgp/internal/gp"
)

// GPContext owns the population size and depth bound shared by
// initialization and both breeding operators, plus the random source
// driving every stochastic choice (letting a caller make runs
// reproducible via a seeded *rand.Rand).
type GPContext struct {
	PopulationSize int
	MaxDepth       int
	Rand           *rand.Rand
}

// NewGPContext builds a GPContext with the given population size, depth
// bound, and random source.
func NewGPContext(populationSize, maxDepth int, r *rand.Rand) *GPContext {
	return &GPContext{PopulationSize: populationSize, MaxDepth: maxDepth, Rand: r}
}

// GenFull builds a tree of depth exactly depth: a terminal at depth 0,
// else an internal node whose children are each GenFull(depth-1).
func (c *GPContext) GenFull(depth int) *gp.Node {
	if depth == 0 {
		return gp.RandomTerminal(c.Rand)
	}
	return gp.RandomInternal(c.Rand, func() *gp.Node { return c.GenFull(depth - 1) })
}

// GenGrow builds a tree of depth at most depth: a terminal at depth 0,
// else a terminal with probability 9/15 or an internal (children from
// GenGrow(depth-1)) with probability 6/15.
func (c *GPContext) GenGrow(depth int) *gp.Node {
	if depth == 0 {
		return gp.RandomTerminal(c.Rand)
	}
	return gp.RandomGeneric(c.Rand, func() *gp.Node { return c.GenGrow(depth - 1) })
}

// RampedHalfAndHalf initializes a population mixing fully-grown and
// partially-grown trees across depths [1, MaxDepth-2]. For each depth it
// yields PopulationSize/2/MaxDepth (rounded down) (GenFull, GenGrow)
// pairs; the resulting population may be slightly smaller than
// PopulationSize due to integer division, which is expected.
func (c *GPContext) RampedHalfAndHalf() []*gp.Program {
	var programs []*gp.Program
	halfSize := c.PopulationSize / 2
	countPerDepth := halfSize / c.MaxDepth
	for depth := 1; depth <= c.MaxDepth-2; depth++ {
		for i := 0; i < countPerDepth; i++ {
			programs = append(programs, gp.NewProgram(c.GenFull(depth)))
			programs = append(programs, gp.NewProgram(c.GenGrow(depth)))
		}
	}
	return programs
}

// InitPopulation is an alias for RampedHalfAndHalf kept to name the
// operation the driver actually calls at generation zero.
func (c *GPContext) InitPopulation() []*gp.Program {
	return c.RampedHalfAndHalf()
}

// Crossover applies subtree crossover to p1 and p2: with probability 0.5
// their roles are swapped, both are deep-copied, a random insertion point
// n1 is chosen in the (possibly swapped) p1's descendants, and a random
// admissible donor n2 is chosen among p2's descendants — admissible
// meaning the resulting tree cannot exceed MaxDepth. n1's contents are
// replaced in place with a copy of n2's; the modified p1 copy is
// returned.
func (c *GPContext) Crossover(p1, p2 *gp.Program) *gp.Program {
	if c.Rand.Float64() < 0.5 {
		p1, p2 = p2, p1
	}

	p1 = p1.Copy()
	p2 = p2.Copy()

	h1 := p1.Root.Height()
	h2 := p2.Root.Height()

	d1 := p1.Root.Descendants()
	n1 := d1[c.Rand.Intn(len(d1))]
	heightN1 := n1.Height()
	depthN1 := h1 - heightN1

	var admissible []*gp.Node
	for _, n2 := range p2.Root.Descendants() {
		heightN2 := n2.Height()
		depthN2 := h2 - heightN2
		if max(heightN1+depthN2, heightN2+depthN1) <= c.MaxDepth {
			admissible = append(admissible, n2)
		}
	}
	// Always non-empty: p2's root itself is admissible whenever neither
	// parent already violates the depth bound.
	n2 := admissible[c.Rand.Intn(len(admissible))]

	n1.Assign(n2.Copy())
	return p1
}

// Mutate applies subtree mutation to p: deep-copy p, pick a random
// descendant n, and replace its contents with a freshly grown subtree
// whose depth keeps the whole tree within MaxDepth.
func (c *GPContext) Mutate(p *gp.Program) *gp.Program {
	p = p.Copy()
	descendants := p.Root.Descendants()
	n := descendants[c.Rand.Intn(len(descendants))]
	n.Assign(c.GenGrow(c.MaxDepth - p.Root.Height() + n.Height()))
	return p
}
