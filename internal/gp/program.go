package gp

import (
	"fmt"
	"math"
)

// Program owns a root node and a fitness value assigned by the CCGP
// driver. Programs are value objects: Copy deep-copies the root so
// mutating a copy's tree never affects its parent's tree or fitness.
type Program struct {
	Root    *Node
	Fitness float64
	// Metadata carries optional driver-assigned bookkeeping (e.g. which
	// generation produced this program). It is never read by Calc.
	Metadata map[string]string
}

// NewProgram wraps root as a fresh, unevaluated program.
func NewProgram(root *Node) *Program {
	return &Program{
		Root:    root,
		Fitness: math.Inf(1),
	}
}

// Copy returns an independent deep copy: a new root tree and a separate
// copy of the metadata map, with the same fitness value (copies inherit fitness until
// re-evaluated, matching the source's Program.copy()).
func (p *Program) Copy() *Program {
	cp := &Program{
		Root:    p.Root.Copy(),
		Fitness: p.Fitness,
	}
	if p.Metadata != nil {
		cp.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}

// String renders the program's tree and fitness for diagnostic output.
func (p *Program) String() string {
	return fmt.Sprintf("%s (fitness %v)", p.Root.String(), p.Fitness)
}
