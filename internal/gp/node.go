// Package gp implements the symbolic expression language evaluated inside
// the simulator's hot loop: a fixed alphabet of terminal and internal
// nodes forming routing and sequencing rules.
package gp

import (
	"math"
	"strings"

	apperrors "github.com/fjss-ccgp/ccgp/pkg/errors"
)

// Kind is the closed tag over every node shape in the expression language.
// Dispatch on Kind is exhaustive: Calc's default case panics rather than
// silently returning zero, per the evaluator's never-silent contract.
type Kind int

const (
	// Terminals (arity 0).
	NPT Kind = iota
	WKR
	NOR
	W
	TIS
	NIQ
	MWT
	PT
	OWT
	// Internals (arity 2).
	ADD
	SUB
	MUL
	MIN
	MAX
	DIV
)

// terminalKinds and internalKinds enumerate the two halves of the
// alphabet in a fixed order used by random generation.
var terminalKinds = []Kind{NPT, WKR, NOR, W, TIS, NIQ, MWT, PT, OWT}
var internalKinds = []Kind{ADD, SUB, MUL, MIN, MAX, DIV}

// String returns the prefix-notation tag for a node kind, e.g. "ADD".
func (k Kind) String() string {
	switch k {
	case NPT:
		return "NPT"
	case WKR:
		return "WKR"
	case NOR:
		return "NOR"
	case W:
		return "W"
	case TIS:
		return "TIS"
	case NIQ:
		return "NIQ"
	case MWT:
		return "MWT"
	case PT:
		return "PT"
	case OWT:
		return "OWT"
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case MUL:
		return "MUL"
	case MIN:
		return "MIN"
	case MAX:
		return "MAX"
	case DIV:
		return "DIV"
	default:
		panic(apperrors.Wrap(apperrors.CodeUnknownNodeKind, "unknown node kind", nil))
	}
}

// Arity returns the number of children a node of this kind must have.
func (k Kind) Arity() int {
	switch k {
	case NPT, WKR, NOR, W, TIS, NIQ, MWT, PT, OWT:
		return 0
	case ADD, SUB, MUL, MIN, MAX, DIV:
		return 2
	default:
		panic(apperrors.Wrap(apperrors.CodeUnknownNodeKind, "unknown node kind", nil))
	}
}

// EvalContext is the tuple an expression tree is evaluated against:
// (sim, job, operation index, machine). EvalContext is implemented by the
// simulator package; gp only depends on this narrow interface so the tree
// package never imports the simulator, avoiding an import cycle.
type EvalContext interface {
	// Now returns the current simulation time.
	Now() float64
	// QueueLen returns the number of items currently queued at machine m.
	QueueLen(m int) int
	// BusyUntil returns the time machine m is busy until.
	BusyUntil(m int) float64
}

// Job is the narrow job view the expression language reads from.
// internal/fitness adapts *model.Job to it.
type Job interface {
	NumOperations() int
	MedianWorkTimeAt(i int) float64
	MedianWorkRemainingAt(i int) float64
	ProcessingTime(opIndex, machine int) float64
	LastOperationReadyTime() float64
}

// Node is an expression tree node: exactly one Kind, plus Children sized
// to match that Kind's arity. Node is an owned value — Copy produces an
// independent tree, and Assign replaces a node's tag and children in
// place (the mechanism subtree crossover and mutation both use).
type Node struct {
	Kind     Kind
	Children []*Node
}

// NewTerminal creates a leaf node of the given terminal kind.
func NewTerminal(k Kind) *Node {
	return &Node{Kind: k}
}

// NewInternal creates an internal node of the given binary kind with the
// two supplied children.
func NewInternal(k Kind, left, right *Node) *Node {
	return &Node{Kind: k, Children: []*Node{left, right}}
}

// Calc evaluates the tree rooted at n against the given context. Calc is
// total and side-effect-free: protected division never raises, and every
// well-formed node produces a finite result.
func (n *Node) Calc(ctx EvalContext, job Job, opIndex, machine int) float64 {
	switch n.Kind {
	case NPT:
		if opIndex+1 < job.NumOperations() {
			return job.MedianWorkTimeAt(opIndex + 1)
		}
		return 0.0
	case WKR:
		return job.MedianWorkRemainingAt(opIndex)
	case NOR:
		return float64(job.NumOperations() - 1 - opIndex)
	case W:
		return 1.0
	case TIS:
		return ctx.Now()
	case NIQ:
		return float64(ctx.QueueLen(machine))
	case MWT:
		return math.Max(0.0, ctx.Now()-ctx.BusyUntil(machine))
	case PT:
		return job.ProcessingTime(opIndex, machine)
	case OWT:
		return ctx.Now() - job.LastOperationReadyTime()
	case ADD:
		return n.Children[0].Calc(ctx, job, opIndex, machine) + n.Children[1].Calc(ctx, job, opIndex, machine)
	case SUB:
		return n.Children[0].Calc(ctx, job, opIndex, machine) - n.Children[1].Calc(ctx, job, opIndex, machine)
	case MUL:
		return n.Children[0].Calc(ctx, job, opIndex, machine) * n.Children[1].Calc(ctx, job, opIndex, machine)
	case MIN:
		return math.Min(n.Children[0].Calc(ctx, job, opIndex, machine), n.Children[1].Calc(ctx, job, opIndex, machine))
	case MAX:
		return math.Max(n.Children[0].Calc(ctx, job, opIndex, machine), n.Children[1].Calc(ctx, job, opIndex, machine))
	case DIV:
		first := n.Children[0].Calc(ctx, job, opIndex, machine)
		second := n.Children[1].Calc(ctx, job, opIndex, machine)
		if math.Abs(second) >= 1e-8 {
			return first / second
		}
		return 1.0
	default:
		panic(apperrors.Wrap(apperrors.CodeUnknownNodeKind, "unknown node kind in Calc", nil))
	}
}

// Height returns 0 for a leaf and 1+max(child height) for an internal node.
func (n *Node) Height() int {
	if len(n.Children) == 0 {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if h := c.Height(); h > max {
			max = h
		}
	}
	return max + 1
}

// Descendants returns every node in the subtree rooted at n, in preorder,
// including n itself. The returned pointers alias into the tree, so
// replacing a returned node's contents via Assign mutates the tree.
func (n *Node) Descendants() []*Node {
	result := []*Node{n}
	for _, c := range n.Children {
		result = append(result, c.Descendants()...)
	}
	return result
}

// Copy returns a deep, independent copy of the subtree rooted at n.
func (n *Node) Copy() *Node {
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Copy()
	}
	return &Node{Kind: n.Kind, Children: children}
}

// Assign replaces n's tag and children with those of other, in place.
// This is the sole mutation primitive trees expose: crossover and
// mutation never touch a node's fields directly.
func (n *Node) Assign(other *Node) {
	n.Kind = other.Kind
	n.Children = other.Children
}

// String renders the tree in prefix form: "OP(child1,child2)" for
// internals, bare "TERM" for leaves.
func (n *Node) String() string {
	if len(n.Children) == 0 {
		return n.Kind.String()
	}
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
