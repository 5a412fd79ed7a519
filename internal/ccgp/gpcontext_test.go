package ccgp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fjss-ccgp/ccgp/internal/gp"
)

func TestGenFull_ProducesExactDepth(t *testing.T) {
	c := NewGPContext(20, 6, rand.New(rand.NewSource(1)))
	for depth := 0; depth <= 4; depth++ {
		n := c.GenFull(depth)
		assert.Equal(t, depth, n.Height())
	}
}

func TestGenGrow_NeverExceedsDepth(t *testing.T) {
	c := NewGPContext(20, 6, rand.New(rand.NewSource(2)))
	for trial := 0; trial < 200; trial++ {
		n := c.GenGrow(4)
		assert.LessOrEqual(t, n.Height(), 4)
	}
}

func TestRampedHalfAndHalf_EveryDepthWithinBound(t *testing.T) {
	c := NewGPContext(60, 6, rand.New(rand.NewSource(3)))
	pop := c.InitPopulation()
	assert.NotEmpty(t, pop)
	for _, p := range pop {
		assert.LessOrEqual(t, p.Root.Height(), c.MaxDepth)
	}
}

func TestRampedHalfAndHalf_StartsAtPositiveInfinityFitness(t *testing.T) {
	c := NewGPContext(40, 6, rand.New(rand.NewSource(4)))
	pop := c.InitPopulation()
	for _, p := range pop {
		assert.True(t, p.Fitness > 1e300)
	}
}

// TestCrossover_DepthBoundHolds exercises the depth-bound postcondition:
// repeated crossover over many trials never produces a tree taller than
// MaxDepth.
func TestCrossover_DepthBoundHolds(t *testing.T) {
	c := NewGPContext(40, 5, rand.New(rand.NewSource(5)))
	pop := c.InitPopulation()
	for trial := 0; trial < 300; trial++ {
		p1 := pop[c.Rand.Intn(len(pop))]
		p2 := pop[c.Rand.Intn(len(pop))]
		child := c.Crossover(p1, p2)
		assert.LessOrEqual(t, child.Root.Height(), c.MaxDepth)
	}
}

// TestCrossover_DoesNotMutateParents checks p1/p2 are left untouched —
// Crossover must operate on deep copies only.
func TestCrossover_DoesNotMutateParents(t *testing.T) {
	c := NewGPContext(40, 5, rand.New(rand.NewSource(6)))
	pop := c.InitPopulation()
	p1 := pop[0]
	p2 := pop[1]
	before1 := p1.Root.String()
	before2 := p2.Root.String()

	_ = c.Crossover(p1, p2)

	assert.Equal(t, before1, p1.Root.String())
	assert.Equal(t, before2, p2.Root.String())
}

// TestCrossover_RootInsertionPointYieldsDonorSubtree exercises the law that
// when the insertion point n1 happens to be p1's own root, the result of
// replacing it with a copy of some n2 from p2 equals that subtree of p2
// exactly. We isolate this by forcing a single-node tree for p1 (its only
// possible insertion point is the root) and checking the result matches
// one of p2's descendants.
func TestCrossover_RootInsertionPointYieldsDonorSubtree(t *testing.T) {
	c := NewGPContext(1, 5, rand.New(rand.NewSource(7)))
	p1 := gp.NewProgram(gp.NewTerminal(gp.W))
	p2 := gp.NewProgram(gp.NewInternal(gp.ADD, gp.NewTerminal(gp.PT), gp.NewTerminal(gp.NIQ)))

	found := false
	for trial := 0; trial < 50 && !found; trial++ {
		child := c.Crossover(p1, p2)
		for _, d := range p2.Root.Descendants() {
			if child.Root.String() == d.String() {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected at least one crossover trial to graft a descendant of p2 onto p1's single node")
}

func TestMutate_DepthBoundHolds(t *testing.T) {
	c := NewGPContext(40, 5, rand.New(rand.NewSource(8)))
	pop := c.InitPopulation()
	for trial := 0; trial < 300; trial++ {
		p := pop[c.Rand.Intn(len(pop))]
		mutant := c.Mutate(p)
		assert.LessOrEqual(t, mutant.Root.Height(), c.MaxDepth)
	}
}

func TestMutate_DoesNotMutateParent(t *testing.T) {
	c := NewGPContext(40, 5, rand.New(rand.NewSource(9)))
	pop := c.InitPopulation()
	p := pop[0]
	before := p.Root.String()

	_ = c.Mutate(p)

	assert.Equal(t, before, p.Root.String())
}

func TestMutate_ProducesIndependentTree(t *testing.T) {
	c := NewGPContext(1, 5, rand.New(rand.NewSource(10)))
	p := gp.NewProgram(gp.NewInternal(gp.ADD, gp.NewTerminal(gp.PT), gp.NewTerminal(gp.NIQ)))
	originalKind := p.Root.Kind
	mutant := c.Mutate(p)

	mutant.Root.Kind = gp.W
	mutant.Root.Children = nil
	assert.Equal(t, originalKind, p.Root.Kind)
}
