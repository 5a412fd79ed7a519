package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgram_StartsAtPositiveInfinity(t *testing.T) {
	p := NewProgram(NewTerminal(W))
	assert.True(t, math.IsInf(p.Fitness, 1))
}

func TestProgram_Copy_Independent(t *testing.T) {
	root := NewInternal(ADD, NewTerminal(W), NewTerminal(TIS))
	p := NewProgram(root)
	p.Fitness = 12.5
	p.Metadata = map[string]string{"generation": "3"}

	cp := p.Copy()
	cp.Root.Children[0].Assign(NewTerminal(NOR))
	cp.Metadata["generation"] = "4"
	cp.Fitness = 99

	assert.Equal(t, W, p.Root.Children[0].Kind, "mutating the copy's tree must not affect the original")
	assert.Equal(t, NOR, cp.Root.Children[0].Kind)
	assert.Equal(t, "3", p.Metadata["generation"], "mutating the copy's metadata must not affect the original")
	assert.Equal(t, 12.5, p.Fitness, "the original's fitness is unaffected by changes to the copy")
	assert.Equal(t, 99.0, cp.Fitness)
}

func TestProgram_Copy_CarriesFitnessUntilReevaluated(t *testing.T) {
	p := NewProgram(NewTerminal(W))
	p.Fitness = 7.0
	cp := p.Copy()
	assert.Equal(t, 7.0, cp.Fitness)
}

func TestProgram_String(t *testing.T) {
	p := NewProgram(NewTerminal(PT))
	p.Fitness = 3.5
	assert.Equal(t, "PT (fitness 3.5)", p.String())
}
