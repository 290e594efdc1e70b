package sweep

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Step is one sweep unit of a job: a free-text argument string applied to
// every invocation, a batch specification whose expansions fan out into
// separate invocations, and a literal options string prefixed verbatim.
type Step struct {
	Name    string
	Args    string
	Batch   string
	Options string
}

// IterArgs expands the step into one argument list per batch combination.
// Each list is options, then the batch assignments, then the collected
// free-text arguments in sorted order so output does not depend on the order
// keys appear in the specification.
func (s *Step) IterArgs() ([][]string, error) {
	args, err := CollectString(s.Args)
	if err != nil {
		return nil, fmt.Errorf("step %q args: %w", s.Name, err)
	}
	sort.Strings(args)

	options := SplitTokens(s.Options)

	batches, err := Expand(s.Batch)
	if err != nil {
		return nil, fmt.Errorf("step %q batch: %w", s.Name, err)
	}

	out := make([][]string, 0, len(batches))
	for _, batch := range batches {
		row := make([]string, 0, len(options)+len(batch)+len(args))
		row = append(row, options...)
		row = append(row, batch...)
		row = append(row, args...)
		out = append(out, row)
	}
	return out, nil
}

// Job is a named sequence of sweep steps.
type Job struct {
	Name  string
	Steps []Step
}

// IterBatches expands every step of the job into invocation argument lists.
// Each invocation carries the job name and a unique sweep directory so
// concurrent submissions never collide.
func (j *Job) IterBatches() ([][]string, error) {
	jobName := "job.name=" + j.Name

	var out [][]string
	for i := range j.Steps {
		lists, err := j.Steps[i].IterArgs()
		if err != nil {
			return nil, err
		}
		for _, args := range lists {
			sweepDir := "sweep.dir=multirun/" + uuid.New().String()
			row := make([]string, 0, len(args)+2)
			row = append(row, sweepDir, jobName)
			row = append(row, args...)
			out = append(out, row)
		}
	}
	return out, nil
}
