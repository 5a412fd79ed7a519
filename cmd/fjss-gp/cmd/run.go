package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fjss-ccgp/ccgp/internal/ccgp"
	"github.com/fjss-ccgp/ccgp/internal/instancestore"
	"github.com/fjss-ccgp/ccgp/internal/problem"
	"github.com/fjss-ccgp/ccgp/internal/repository"
	"github.com/fjss-ccgp/ccgp/pkg/config"
	"github.com/fjss-ccgp/ccgp/pkg/parallel"
	"github.com/fjss-ccgp/ccgp/pkg/telemetry"
	"github.com/fjss-ccgp/ccgp/pkg/utils"
	"github.com/fjss-ccgp/ccgp/pkg/writer"
)

var (
	runID       string
	recordDB    bool
	historyPath string
)

// generationHistoryEntry is one row of the optional per-generation
// history file written via --history-file.
type generationHistoryEntry struct {
	Generation        int     `json:"generation"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
	RoutingFitness    float64 `json:"routing_fitness"`
	SequencingFitness float64 `json:"sequencing_fitness"`
	RoutingProgram    string  `json:"routing_program"`
	SequencingProgram string  `json:"sequencing_program"`
}

// runCmd evolves routing/sequencing programs against a problem set,
// printing three lines per generation: the index, normalized makespan and
// elapsed wall-clock time, then the best routing and the best sequencing
// program, each as its prefix-form string followed by its fitness.
var runCmd = &cobra.Command{
	Use:   "run [problem-set selector]",
	Short: "Run cooperative coevolutionary GP against a set of FJSS instances",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runID, "run-id", "", "Run identifier used when recording generation history (auto-generated if empty)")
	runCmd.Flags().BoolVar(&recordDB, "record", false, "Persist per-generation run history to the configured database")
	runCmd.Flags().StringVar(&historyPath, "history-file", "", "Write per-generation fitness history as pretty-printed JSON to this path")
}

func runRun(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	selector := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Telemetry.Enabled {
		applyTelemetryEnv(cfg)
		shutdown, err := telemetry.Init(context.Background())
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer shutdown(context.Background())
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		return fmt.Errorf("failed to build lower-bound resolver: %w", err)
	}

	selector, err = ensureSelectorLocal(context.Background(), cfg, selector, log)
	if err != nil {
		return fmt.Errorf("failed to sync instance files: %w", err)
	}

	problems, err := problem.LoadSet(selector, resolver)
	if err != nil {
		return fmt.Errorf("failed to load problem set %q: %w", selector, err)
	}
	if len(problems) == 0 {
		return fmt.Errorf("no instances matched selector %q", selector)
	}
	log.Info("loaded %d instance(s) matching %q", len(problems), selector)

	var recorder repository.RunRecorder
	if recordDB {
		recorder, err = buildRecorder(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize run recorder: %w", err)
		}
	}
	if runID == "" {
		runID = fmt.Sprintf("run-%d", os.Getpid())
	}

	seed := cfg.GP.Seed
	if seed == 0 {
		seed = 1
	}
	gpCtx := ccgp.NewGPContext(cfg.GP.PopulationSize, cfg.GP.MaxDepth, rand.New(rand.NewSource(seed)))

	poolCfg := parallel.PoolConfig{MaxWorkers: cfg.Parallel.MaxWorkers}

	driver := ccgp.NewDriver(ccgp.Config{
		GP:       gpCtx,
		Problems: problems,
		Parallel: poolCfg,
		Logger:   log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received interrupt, stopping after current generation")
		cancel()
	}()

	maxGenerations := cfg.GP.Generations

	clock := utils.NewRealClock()
	runStart := clock.Now()
	var history []generationHistoryEntry

	for g := 1; maxGenerations == 0 || g <= maxGenerations; g++ {
		select {
		case <-ctx.Done():
			return writeHistory(history)
		default:
		}

		gen, err := driver.Next(ctx)
		if err != nil {
			return fmt.Errorf("generation %d failed: %w", g, err)
		}
		elapsed := clock.Since(runStart)

		fmt.Printf("%d %v (%s elapsed)\n", gen.Index, gen.RoutingContext.Fitness, elapsed.Round(time.Millisecond))
		fmt.Println(gen.RoutingContext.String())
		fmt.Println(gen.SequencingContext.String())

		if recorder != nil {
			record := &repository.GenerationRecord{
				RunID:             runID,
				GenerationIndex:   gen.Index,
				RoutingFitness:    gen.RoutingContext.Fitness,
				SequencingFitness: gen.SequencingContext.Fitness,
				RoutingProgram:    gen.RoutingContext.String(),
				SequencingProgram: gen.SequencingContext.String(),
			}
			if err := recorder.RecordGeneration(ctx, record); err != nil {
				log.Warn("failed to record generation %d: %v", gen.Index, err)
			}
		}

		if historyPath != "" {
			history = append(history, generationHistoryEntry{
				Generation:        gen.Index,
				ElapsedSeconds:    elapsed.Seconds(),
				RoutingFitness:    gen.RoutingContext.Fitness,
				SequencingFitness: gen.SequencingContext.Fitness,
				RoutingProgram:    gen.RoutingContext.String(),
				SequencingProgram: gen.SequencingContext.String(),
			})
		}
	}

	return writeHistory(history)
}

// writeHistory writes the accumulated generation history to historyPath
// as pretty-printed JSON, if the flag was set.
func writeHistory(history []generationHistoryEntry) error {
	if historyPath == "" {
		return nil
	}
	w := writer.NewPrettyJSONWriter[[]generationHistoryEntry]()
	if err := w.WriteToFile(history, historyPath); err != nil {
		return fmt.Errorf("failed to write history file %q: %w", historyPath, err)
	}
	return nil
}

// ensureSelectorLocal syncs a plain (non-glob) selector naming a single
// instance file out of the configured instance store and into the local
// cache before LoadSet reads it off disk, so a run can name an instance
// by its object-store key without the caller having fetched it first.
// Glob selectors are left untouched since a store key names one object,
// not a pattern, and the local backend is a no-op since LoadSet already
// reads straight off the filesystem LocalStorage is rooted at.
func ensureSelectorLocal(ctx context.Context, cfg *config.Config, selector string, log utils.Logger) (string, error) {
	if strings.ContainsAny(selector, "*?[") {
		return selector, nil
	}
	if instancestore.StorageType(cfg.Storage.Type) != instancestore.StorageTypeCOS {
		return selector, nil
	}

	store, err := instancestore.NewStorage(cfg.Storage)
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(cfg.Storage.LocalPath, selector)
	if err := instancestore.EnsureLocal(ctx, store, selector, localPath); err != nil {
		return "", err
	}
	log.Debug("synced instance %q from remote storage to %q", selector, localPath)
	return localPath, nil
}

// applyTelemetryEnv bridges the viper-loaded TelemetryConfig into the
// environment variables pkg/telemetry reads, since that package's Config
// is loaded exclusively from the environment.
func applyTelemetryEnv(cfg *config.Config) {
	os.Setenv("OTEL_ENABLED", "true")
	os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	if cfg.Telemetry.Insecure {
		os.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	}
}

// buildResolver builds a problem.LowerBoundResolver from the configured
// source: an explicit map from ProblemConfig, a sidecar JSON catalogue,
// or an environment-variable mapping.
func buildResolver(cfg *config.Config) (problem.LowerBoundResolver, error) {
	switch cfg.LowerBound.Source {
	case "", "explicit":
		resolver := make(problem.ExplicitResolver, len(cfg.Problem.LowerBounds))
		for path, lb := range cfg.Problem.LowerBounds {
			resolver[path] = lb
		}
		return resolver, nil
	case "json":
		return problem.LoadJSONResolver(cfg.LowerBound.CatalogPath)
	case "env":
		return problem.NewEnvResolver(cfg.LowerBound.EnvPrefix), nil
	default:
		return nil, fmt.Errorf("unknown lower-bound source: %s", cfg.LowerBound.Source)
	}
}

// buildRecorder opens the configured database and wraps it in a
// repository.RunRecorder.
func buildRecorder(cfg *config.Config) (repository.RunRecorder, error) {
	gormDB, err := repository.NewGormDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	return repository.NewGormRunRecorder(gormDB)
}
