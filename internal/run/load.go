package run

import (
	"golang.org/x/sync/errgroup"
)

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	nJobs   int
	runOpts []Option
}

// NJobs sets the number of workers constructing runs. Zero (the default)
// loads strictly sequentially.
func NJobs(n int) LoadOption {
	return func(o *loadOptions) { o.nJobs = n }
}

// WithRunOptions forwards construction options (factories) to every run.
func WithRunOptions(opts ...Option) LoadOption {
	return func(o *loadOptions) { o.runOpts = append(o.runOpts, opts...) }
}

// Load constructs a collection from run directories. Construction touches
// each run's metadata so a bounded thread pool pays off on large
// collections; result order always matches input order regardless of worker
// count, and a failing worker aborts the whole batch.
func Load(dirs []string, opts ...LoadOption) (*Collection, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	runs := make([]*Run, len(dirs))

	if o.nJobs == 0 {
		for i, dir := range dirs {
			runs[i] = New(dir, o.runOpts...)
			runs[i].Info.JobName()
		}
		return &Collection{runs: runs}, nil
	}

	var g errgroup.Group
	if o.nJobs > 0 {
		g.SetLimit(o.nJobs)
	}

	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			r := New(dir, o.runOpts...)
			r.Info.JobName()
			runs[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Collection{runs: runs}, nil
}
