// Package problem loads FJSS instances from Brandimarte-style instance
// files, resolves their lower bounds, generates dynamic-arrival instances
// for stress testing, and groups static instances into sets selected by
// path prefix or glob.
package problem

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/fjss-ccgp/ccgp/pkg/errors"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// lineTokenizer walks whitespace-separated integer tokens one source line
// at a time, tracking the 1-based line number for error messages.
type lineTokenizer struct {
	scanner *bufio.Scanner
	tokens  []string
	cursor  int
	line    int
	path    string
}

func newLineTokenizer(path string, f *os.File) *lineTokenizer {
	return &lineTokenizer{scanner: bufio.NewScanner(f), path: path}
}

// nextLine advances to the next non-blank source line, replacing the
// token buffer. Returns false at end of file.
func (t *lineTokenizer) nextLine() bool {
	for t.scanner.Scan() {
		t.line++
		fields := strings.Fields(t.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		t.tokens = fields
		t.cursor = 0
		return true
	}
	return false
}

// nextInt consumes the next integer token on the current line.
func (t *lineTokenizer) nextInt() (int, error) {
	if t.cursor >= len(t.tokens) {
		return 0, t.errorf("expected another integer, line ran out of tokens")
	}
	tok := t.tokens[t.cursor]
	t.cursor++
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, t.errorf("expected an integer, got %q", tok)
	}
	return v, nil
}

func (t *lineTokenizer) errorf(format string, args ...any) error {
	msg := fmt.Sprintf("%s:%d: %s", t.path, t.line, fmt.Sprintf(format, args...))
	return apperrors.Wrap(apperrors.CodeMalformedInstance, msg, nil)
}

// LoadInstance parses a Brandimarte-style instance file at path. Machine
// indices on disk are 1-based; they are converted to 0-based internally.
// All jobs are given arrival time 0, as the format has no arrival-time
// field. The returned problem's LowerBound is populated by resolver, which
// may be nil to leave it unset.
func LoadInstance(name, path string, resolver LowerBoundResolver) (*model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedInstance, fmt.Sprintf("cannot open instance file %s", path), err)
	}
	defer f.Close()

	t := newLineTokenizer(path, f)
	if !t.nextLine() {
		return nil, t.errorf("empty instance file")
	}
	numJobs, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	numMachines, err := t.nextInt()
	if err != nil {
		return nil, err
	}

	jobs := make([]*model.Job, 0, numJobs)
	for i := 0; i < numJobs; i++ {
		if !t.nextLine() {
			return nil, t.errorf("expected %d job lines, file ended after %d", numJobs, i)
		}
		job, err := parseJobLine(t, i, numMachines)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	problem := &model.Problem{
		Name:        name,
		NumMachines: numMachines,
		Jobs:        jobs,
	}
	if resolver != nil {
		if lb, ok := resolver.Resolve(path); ok {
			problem.LowerBound = &lb
		}
	}
	return problem, nil
}

func parseJobLine(t *lineTokenizer, jobIndex, numMachines int) (*model.Job, error) {
	numOps, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	if numOps <= 0 {
		return nil, t.errorf("job %d has no operations", jobIndex+1)
	}

	operations := make([]*model.Operation, 0, numOps)
	for j := 0; j < numOps; j++ {
		numEligible, err := t.nextInt()
		if err != nil {
			return nil, err
		}
		if numEligible <= 0 {
			return nil, apperrors.Wrap(apperrors.CodeEmptyEligibleMachines,
				fmt.Sprintf("%s: job %d operation %d has no eligible machines", t.path, jobIndex+1, j+1), nil)
		}
		processingTimes := make(map[int]model.Time, numEligible)
		for k := 0; k < numEligible; k++ {
			machine1Based, err := t.nextInt()
			if err != nil {
				return nil, err
			}
			pt, err := t.nextInt()
			if err != nil {
				return nil, err
			}
			if pt <= 0 {
				return nil, t.errorf("job %d operation %d: processing time must be positive, got %d", jobIndex+1, j+1, pt)
			}
			machine := machine1Based - 1
			if machine < 0 || machine >= numMachines {
				return nil, t.errorf("job %d operation %d: machine index %d out of range [1,%d]", jobIndex+1, j+1, machine1Based, numMachines)
			}
			processingTimes[machine] = model.Time(pt)
		}
		operations = append(operations, model.NewOperation(fmt.Sprintf("%d:%d", jobIndex+1, j+1), processingTimes))
	}

	return model.NewJob(fmt.Sprintf("%d", jobIndex+1), 0, operations), nil
}
