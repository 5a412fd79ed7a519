package ccgp

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fjss-ccgp/ccgp/internal/fitness"
	"github.com/fjss-ccgp/ccgp/internal/gp"
	"github.com/fjss-ccgp/ccgp/pkg/model"
	"github.com/fjss-ccgp/ccgp/pkg/parallel"
	"github.com/fjss-ccgp/ccgp/pkg/utils"
)

var tracer = otel.Tracer("github.com/fjss-ccgp/ccgp/internal/ccgp")

// Breeding operator weights, matching the source's choices([1,2,3],
// weights=[80,15,5]).
const (
	crossoverWeight    = 80
	mutationWeight     = 15
	reproductionWeight = 5
	tournamentSize     = 7
	elitismCount       = 2
)

// Config configures a Driver.
type Config struct {
	GP       *GPContext
	Problems []*model.Problem
	Parallel parallel.PoolConfig
	Logger   utils.Logger
}

// Generation is one yielded step of the driver's lazy sequence: the
// generation index and the current best (lowest-fitness) context
// individual from each population.
type Generation struct {
	Index             int
	RoutingContext    *gp.Program
	SequencingContext *gp.Program
}

// Driver runs the per-generation algorithm described by the component
// design: elitism, weighted breeding via tournament selection, parallel
// evaluation against the opposing population's context, and monotone
// context update.
type Driver struct {
	cfg Config

	routingPop    []*gp.Program
	sequencingPop []*gp.Program

	routingContext    *gp.Program
	sequencingContext *gp.Program

	generation int
}

// NewDriver initializes both populations via ramped half-and-half and
// draws each context individual from its OWN population — the corrected
// behavior per the documented context-initialization fix; fitness
// semantics are unaffected since the first generation's evaluation phase
// replaces both contexts.
func NewDriver(cfg Config) *Driver {
	if cfg.Logger == nil {
		cfg.Logger = &utils.NullLogger{}
	}
	routingPop := cfg.GP.InitPopulation()
	sequencingPop := cfg.GP.InitPopulation()

	d := &Driver{
		cfg:               cfg,
		routingPop:        routingPop,
		sequencingPop:     sequencingPop,
		routingContext:    routingPop[cfg.GP.Rand.Intn(len(routingPop))],
		sequencingContext: sequencingPop[cfg.GP.Rand.Intn(len(sequencingPop))],
	}
	return d
}

// Next runs one generation and returns the resulting context pair. Each
// call replaces the driver's populations with the next generation; the
// caller stops calling Next to terminate the otherwise-unbounded
// sequence.
func (d *Driver) Next(ctx context.Context) (Generation, error) {
	ctx, span := tracer.Start(ctx, "ccgp.generation", trace.WithAttributes(
		attribute.Int("fjss.generation.index", d.generation+1),
		attribute.Int("fjss.generation.routing_population_size", len(d.routingPop)),
		attribute.Int("fjss.generation.sequencing_population_size", len(d.sequencingPop)),
	))
	defer span.End()

	newRoutingPop := d.breedPopulation(d.routingPop)
	newSequencingPop := d.breedPopulation(d.sequencingPop)

	if err := d.evaluate(ctx, newRoutingPop, newSequencingPop); err != nil {
		span.RecordError(err)
		return Generation{}, err
	}

	d.routingContext = argminFitness(append(append([]*gp.Program{}, newRoutingPop...), d.routingContext))
	d.sequencingContext = argminFitness(append(append([]*gp.Program{}, newSequencingPop...), d.sequencingContext))

	d.routingPop = newRoutingPop
	d.sequencingPop = newSequencingPop
	d.generation++

	span.SetAttributes(
		attribute.Float64("fjss.generation.routing_fitness", float64(d.routingContext.Fitness)),
		attribute.Float64("fjss.generation.sequencing_fitness", float64(d.sequencingContext.Fitness)),
	)

	d.cfg.Logger.Debug("generation %d: routing fitness %v, sequencing fitness %v",
		d.generation, d.routingContext.Fitness, d.sequencingContext.Fitness)

	return Generation{
		Index:             d.generation,
		RoutingContext:    d.routingContext,
		SequencingContext: d.sequencingContext,
	}, nil
}

// breedPopulation carries the elitismCount lowest-fitness programs
// forward unchanged, then fills the rest of the new population one
// offspring at a time via weighted operator selection over tournament-7
// parents.
func (d *Driver) breedPopulation(pop []*gp.Program) []*gp.Program {
	newPop := elitism(pop, elitismCount)
	for len(newPop) < len(pop) {
		newPop = append(newPop, d.generateOffspring(pop))
	}
	return newPop
}

// generateOffspring picks crossover (weight 80), mutation (weight 15), or
// reproduction (weight 5) and applies it to tournament-7-selected
// parent(s) drawn from pop.
func (d *Driver) generateOffspring(pop []*gp.Program) *gp.Program {
	r := d.cfg.GP.Rand
	roll := r.Intn(crossoverWeight + mutationWeight + reproductionWeight)
	switch {
	case roll < crossoverWeight:
		p1 := d.tournamentSelect(pop)
		p2 := d.tournamentSelect(pop)
		return d.cfg.GP.Crossover(p1, p2)
	case roll < crossoverWeight+mutationWeight:
		p := d.tournamentSelect(pop)
		return d.cfg.GP.Mutate(p)
	default:
		p := d.tournamentSelect(pop)
		return p.Copy()
	}
}

// tournamentSelect draws tournamentSize candidates uniformly at random
// with replacement and returns the lowest-fitness one.
func (d *Driver) tournamentSelect(pop []*gp.Program) *gp.Program {
	r := d.cfg.GP.Rand
	best := pop[r.Intn(len(pop))]
	for i := 1; i < tournamentSize; i++ {
		candidate := pop[r.Intn(len(pop))]
		if candidate.Fitness < best.Fitness {
			best = candidate
		}
	}
	return best
}

// evaluate assigns fitness to every new program: each routing program is
// scored against the current sequencing context, and each sequencing
// program against the current routing context. Dispatched to a worker
// pool since every (program, instance-set) evaluation is independent.
func (d *Driver) evaluate(ctx context.Context, newRoutingPop, newSequencingPop []*gp.Program) error {
	ctx, span := tracer.Start(ctx, "ccgp.fitness_batch", trace.WithAttributes(
		attribute.Int("fjss.fitness_batch.routing_count", len(newRoutingPop)),
		attribute.Int("fjss.fitness_batch.sequencing_count", len(newSequencingPop)),
		attribute.Int("fjss.fitness_batch.problem_count", len(d.cfg.Problems)),
	))
	defer span.End()

	type job struct {
		program   *gp.Program
		isRouting bool
	}
	jobs := make([]job, 0, len(newRoutingPop)+len(newSequencingPop))
	for _, p := range newRoutingPop {
		jobs = append(jobs, job{program: p, isRouting: true})
	}
	for _, p := range newSequencingPop {
		jobs = append(jobs, job{program: p, isRouting: false})
	}

	_, err := parallel.ForEach(ctx, jobs, d.cfg.Parallel, func(_ context.Context, j job) error {
		var routing, sequencing *gp.Program
		if j.isRouting {
			routing, sequencing = j.program, d.sequencingContext
		} else {
			routing, sequencing = d.routingContext, j.program
		}
		score, err := fitness.NormalizedMakespan(routing, sequencing, d.cfg.Problems, d.cfg.Parallel)
		if err != nil {
			return err
		}
		j.program.Fitness = score
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// elitism returns the k lowest-fitness programs from pop, ties broken by
// original insertion order (sort.SliceStable preserves this).
func elitism(pop []*gp.Program, k int) []*gp.Program {
	sorted := append([]*gp.Program{}, pop...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Fitness < sorted[j].Fitness })
	if k > len(sorted) {
		k = len(sorted)
	}
	return append([]*gp.Program{}, sorted[:k]...)
}

// argminFitness returns the lowest-fitness program in candidates.
func argminFitness(candidates []*gp.Program) *gp.Program {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Fitness < best.Fitness {
			best = c
		}
	}
	return best
}
