package problem

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/fjss-ccgp/ccgp/pkg/errors"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// LowerBoundResolver supplies an optional known lower bound for an
// instance file, keyed by its path. This replaces the source's single
// hard-coded JSON catalogue with a pluggable boundary, per the design
// notes' canonical-model requirement.
type LowerBoundResolver interface {
	// Resolve returns the lower bound for path and whether one is known.
	Resolve(path string) (model.Time, bool)
}

// ExplicitResolver resolves lower bounds from an in-memory map, e.g. one
// built up by the caller from command-line flags or test fixtures.
type ExplicitResolver map[string]model.Time

// Resolve implements LowerBoundResolver.
func (r ExplicitResolver) Resolve(path string) (model.Time, bool) {
	lb, ok := r[path]
	return lb, ok
}

// jsonCatalogueEntry mirrors one record of the source's instances.json:
// an explicit optimum, or a bounds.lower fallback when the optimum is
// unknown.
type jsonCatalogueEntry struct {
	Path    string   `json:"path"`
	Optimum *float64 `json:"optimum"`
	Bounds  *struct {
		Lower *float64 `json:"lower"`
	} `json:"bounds"`
}

// JSONResolver resolves lower bounds from a sidecar JSON catalogue file,
// keyed by the "path" field of each entry (matching fjsp-instances'
// instances.json layout). Entries with neither optimum nor bounds.lower
// are skipped.
type JSONResolver struct {
	bounds map[string]model.Time
}

// LoadJSONResolver reads and indexes a sidecar JSON catalogue.
func LoadJSONResolver(catalogPath string) (*JSONResolver, error) {
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "cannot read lower-bound catalogue "+catalogPath, err)
	}
	var entries []jsonCatalogueEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "cannot parse lower-bound catalogue "+catalogPath, err)
	}
	bounds := make(map[string]model.Time, len(entries))
	for _, e := range entries {
		switch {
		case e.Optimum != nil:
			bounds[e.Path] = model.Time(*e.Optimum)
		case e.Bounds != nil && e.Bounds.Lower != nil:
			bounds[e.Path] = model.Time(*e.Bounds.Lower)
		}
	}
	return &JSONResolver{bounds: bounds}, nil
}

// Resolve implements LowerBoundResolver.
func (r *JSONResolver) Resolve(path string) (model.Time, bool) {
	lb, ok := r.bounds[path]
	return lb, ok
}

// EnvResolver resolves lower bounds from a single environment variable
// holding a "path=value,path=value" list, for lightweight CI overrides
// without a catalogue file on disk.
type EnvResolver struct {
	bounds map[string]model.Time
}

// NewEnvResolver parses the value of envVar (e.g. FJSS_LOWER_BOUNDS) from
// the current environment.
func NewEnvResolver(envVar string) *EnvResolver {
	bounds := make(map[string]model.Time)
	raw := os.Getenv(envVar)
	if raw == "" {
		return &EnvResolver{bounds: bounds}
	}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			continue
		}
		bounds[strings.TrimSpace(kv[0])] = model.Time(v)
	}
	return &EnvResolver{bounds: bounds}
}

// Resolve implements LowerBoundResolver.
func (r *EnvResolver) Resolve(path string) (model.Time, bool) {
	lb, ok := r.bounds[path]
	return lb, ok
}
