package problem

import (
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/fjss-ccgp/ccgp/pkg/errors"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// hasGlobMeta reports whether pattern contains any glob metacharacter.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// matchingPaths expands selector into the lexicographically sorted set of
// instance file paths it names. selector is either a glob pattern (if it
// contains *, ?, or [) or a plain path prefix, matched against every file
// under its directory.
func matchingPaths(selector string) ([]string, error) {
	var matches []string
	var err error
	if hasGlobMeta(selector) {
		matches, err = filepath.Glob(selector)
	} else {
		matches, err = filepath.Glob(selector + "*")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid problem-set selector "+selector, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadSet loads every instance matching selector (a glob pattern or path
// prefix) into a sorted slice of problems, named by their file path.
func LoadSet(selector string, resolver LowerBoundResolver) ([]*model.Problem, error) {
	paths, err := matchingPaths(selector)
	if err != nil {
		return nil, err
	}
	problems := make([]*model.Problem, 0, len(paths))
	for _, path := range paths {
		problem, err := LoadInstance(path, path, resolver)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}
	return problems, nil
}
