// Package run provides the run record entity and the in-memory query engine
// over collections of run records. A run wraps a persisted run directory and
// exposes its configuration snapshot, identity metadata, and an optional
// user-supplied implementation object through a single attribute-resolution
// interface.
package run

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/sweeplab/sweeprun/internal/conftree"
)

// configFile is the config snapshot path relative to a run's artifacts
// directory.
const configFile = "config.yaml"

// Factory constructs an implementation object from a run's artifacts
// directory.
type Factory func(artifactsDir string) (any, error)

// ConfigFactory constructs an implementation object from a run's artifacts
// directory and its loaded configuration. Use this variant when the
// implementation needs to adjust its behavior based on the run's config.
type ConfigFactory func(artifactsDir string, cfg *conftree.Tree) (any, error)

// AttributeProvider lets an implementation object answer attribute lookups
// by name. Attribute resolution consults the provider before the
// configuration tree and the run's metadata.
type AttributeProvider interface {
	// RunAttribute returns the value for key and whether the provider
	// knows the key.
	RunAttribute(key string) (any, bool)
}

// Run represents one completed or in-progress execution of a parameterized
// experiment.
//
// The configuration tree and the implementation object are loaded lazily and
// independently: accessing one never forces the other, and each is
// constructed at most once per Run.
type Run struct {
	Info *Info

	factory    Factory
	cfgFactory ConfigFactory

	cfgOnce sync.Once
	cfg     *conftree.Tree

	implOnce sync.Once
	impl     any
	implErr  error
}

// Option configures a Run at construction time.
type Option func(*Run)

// WithFactory sets a factory that receives the artifacts directory.
func WithFactory(f Factory) Option {
	return func(r *Run) { r.factory = f }
}

// WithConfigFactory sets a factory that receives the artifacts directory and
// the loaded configuration.
func WithConfigFactory(f ConfigFactory) Option {
	return func(r *Run) { r.cfgFactory = f }
}

// New wraps a run directory.
func New(dir string, opts ...Option) *Run {
	r := &Run{Info: NewInfo(dir)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ArtifactsDir is the directory holding the run's persisted artifacts,
// including its config snapshot.
func (r *Run) ArtifactsDir() string {
	return filepath.Join(r.Info.Dir, "artifacts")
}

// Config returns the run's configuration tree, loading it on first access.
// A missing snapshot degrades to an empty tree; the load happens at most
// once per Run.
func (r *Run) Config() *conftree.Tree {
	r.cfgOnce.Do(func() {
		path := filepath.Join(r.ArtifactsDir(), configFile)
		tree, err := conftree.Load(path)
		if err != nil {
			tree = conftree.New()
		}
		r.cfg = tree
	})
	return r.cfg
}

// Impl returns the implementation object, constructing it on first access
// with whichever factory was supplied. Runs without a factory have no
// implementation object.
func (r *Run) Impl() (any, error) {
	r.implOnce.Do(func() {
		switch {
		case r.cfgFactory != nil:
			r.impl, r.implErr = r.cfgFactory(r.ArtifactsDir(), r.Config())
		case r.factory != nil:
			r.impl, r.implErr = r.factory(r.ArtifactsDir())
		}
	})
	return r.impl, r.implErr
}

// Get resolves a dotted key to a value. Resolution order, first hit wins:
// the implementation object (when it provides the attribute), the
// configuration tree, then the run's identity fields (bare or prefixed with
// "info."). The double-underscore spelling "db__name" resolves identically
// to "db.name". An unresolved key yields a *NotFoundError.
func (r *Run) Get(key string) (any, error) {
	if v, ok := r.resolve(key); ok {
		return v, nil
	}
	return nil, &NotFoundError{Key: key}
}

// TryGet resolves a key, reporting whether it was found.
func (r *Run) TryGet(key string) (any, bool) {
	return r.resolve(key)
}

// GetOr resolves a key, falling back to a default. A default of type
// func(*Run) any is invoked with the run and its result returned.
func (r *Run) GetOr(key string, def any) any {
	if v, ok := r.resolve(key); ok {
		return v
	}
	if fn, ok := def.(func(*Run) any); ok {
		return fn(r)
	}
	return def
}

func (r *Run) resolve(key string) (any, bool) {
	if impl, err := r.Impl(); err == nil && impl != nil {
		if provider, ok := impl.(AttributeProvider); ok {
			if v, ok := provider.RunAttribute(key); ok {
				return invokeIfCallable(v), true
			}
		}
	}

	path := strings.ReplaceAll(key, "__", ".")
	if v, ok := r.Config().Select(path); ok {
		return v, true
	}

	info := r.Info.ToMap()
	field := strings.TrimPrefix(key, "info.")
	if v, ok := info[field]; ok {
		return v, true
	}

	return nil, false
}

// invokeIfCallable calls a no-argument provider value so method-like
// attributes resolve to their results.
func invokeIfCallable(v any) any {
	switch fn := v.(type) {
	case func() any:
		return fn()
	default:
		return v
	}
}

// Update sets a default value at a configuration path only if the path is
// currently unset. With force, the value always overwrites. A value of type
// func(*Run) any is invoked with the run to produce the value to set.
func (r *Run) Update(key string, value any, force bool) error {
	cfg := r.Config()
	path := strings.ReplaceAll(key, "__", ".")

	if !force && cfg.IsSet(path) {
		return nil
	}

	if fn, ok := value.(func(*Run) any); ok {
		value = fn(r)
	}
	cfg.Set(path, value)
	return nil
}

// UpdateEach sets defaults at several configuration paths at once. The value
// must be a slice of the same length as keys (or a func(*Run) any returning
// one); a mismatch is a *TypeMismatchError. The update is skipped only when
// every path is already set, so a partially-set tuple is completed from the
// supplied values.
func (r *Run) UpdateEach(keys []string, value any, force bool) error {
	cfg := r.Config()

	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = strings.ReplaceAll(k, "__", ".")
	}

	if !force {
		allSet := true
		for _, p := range paths {
			if !cfg.IsSet(p) {
				allSet = false
				break
			}
		}
		if allSet {
			return nil
		}
	}

	if fn, ok := value.(func(*Run) any); ok {
		value = fn(r)
	}

	rv := reflect.ValueOf(value)
	if value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return &TypeMismatchError{Reason: "value for a multi-key update must be a slice"}
	}
	if rv.Len() != len(paths) {
		return &TypeMismatchError{
			Reason: "value length does not match the number of keys",
		}
	}

	for i, p := range paths {
		if force || !cfg.IsSet(p) {
			cfg.Set(p, rv.Index(i).Interface())
		}
	}
	return nil
}

// ToMap flattens the run into a single map: identity fields plus the dotted
// leaves of the configuration tree.
func (r *Run) ToMap() map[string]any {
	out := r.Info.ToMap()
	for k, v := range r.Config().Flatten() {
		out[k] = v
	}
	return out
}
