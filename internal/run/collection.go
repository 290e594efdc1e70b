package run

import (
	"fmt"
	"sort"
)

// Predicate tests one run during filtering.
type Predicate interface {
	matches(r *Run) (bool, error)
}

type keyPredicate struct {
	key       string
	criterion any
}

func (p keyPredicate) matches(r *Run) (bool, error) {
	attr, err := r.Get(p.key)
	if err != nil {
		return false, err
	}
	return Matches(normalizeCriterionAttr(attr), normalizeCriterionAttr(p.criterion)), nil
}

// normalizeCriterionAttr keeps config sequence values and literal slices on
// equal footing before matching.
func normalizeCriterionAttr(v any) any {
	if isSequence(v) {
		return toSlice(v)
	}
	return v
}

type funcPredicate func(r *Run) bool

func (p funcPredicate) matches(r *Run) (bool, error) {
	return p(r), nil
}

// Where builds a predicate that resolves key on each run and tests the
// resolved attribute against a criterion (see Matches for the criterion
// language).
func Where(key string, criterion any) Predicate {
	return keyPredicate{key: key, criterion: criterion}
}

// WhereFunc builds a whole-record predicate.
func WhereFunc(fn func(*Run) bool) Predicate {
	return funcPredicate(fn)
}

// Collection is an ordered sequence of run records. Transformations return a
// new collection; the source record list is never mutated except through the
// explicit update operations, which write into each member's config.
type Collection struct {
	runs []*Run
}

// NewCollection builds a collection over the given runs. The slice is
// copied.
func NewCollection(runs []*Run) *Collection {
	out := make([]*Run, len(runs))
	copy(out, runs)
	return &Collection{runs: out}
}

// Len returns the number of runs in the collection.
func (c *Collection) Len() int {
	return len(c.runs)
}

// At returns the run at index i.
func (c *Collection) At(i int) *Run {
	return c.runs[i]
}

// Runs returns a copy of the underlying run slice.
func (c *Collection) Runs() []*Run {
	out := make([]*Run, len(c.runs))
	copy(out, c.runs)
	return out
}

// Slice returns a new collection over the half-open index range [lo, hi).
func (c *Collection) Slice(lo, hi int) *Collection {
	return NewCollection(c.runs[lo:hi])
}

// Concat returns a new collection holding this collection's runs followed by
// the other's.
func (c *Collection) Concat(other *Collection) *Collection {
	out := make([]*Run, 0, len(c.runs)+len(other.runs))
	out = append(out, c.runs...)
	out = append(out, other.runs...)
	return &Collection{runs: out}
}

// Filter returns a new collection holding the runs that satisfy every
// predicate, preserving relative order.
func (c *Collection) Filter(preds ...Predicate) (*Collection, error) {
	return c.filter(preds, false)
}

// Exclude returns a new collection holding the runs that do not satisfy the
// conjunction of the predicates.
func (c *Collection) Exclude(preds ...Predicate) (*Collection, error) {
	return c.filter(preds, true)
}

func (c *Collection) filter(preds []Predicate, invert bool) (*Collection, error) {
	out := make([]*Run, 0, len(c.runs))
	for _, r := range c.runs {
		ok := true
		for _, p := range preds {
			matched, err := p.matches(r)
			if err != nil {
				return nil, err
			}
			if !matched {
				ok = false
				break
			}
		}
		if ok != invert {
			out = append(out, r)
		}
	}
	return &Collection{runs: out}, nil
}

// Get returns the single run matching the predicates. Zero matches yield a
// *NotFoundError and more than one an *AmbiguousError.
func (c *Collection) Get(preds ...Predicate) (*Run, error) {
	r, err := c.TryGet(preds...)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &NotFoundError{}
	}
	return r, nil
}

// TryGet returns the single run matching the predicates, or nil when
// nothing matches. More than one match is still a *AmbiguousError.
func (c *Collection) TryGet(preds ...Predicate) (*Run, error) {
	filtered, err := c.Filter(preds...)
	if err != nil {
		return nil, err
	}
	switch filtered.Len() {
	case 0:
		return nil, nil
	case 1:
		return filtered.At(0), nil
	default:
		return nil, &AmbiguousError{Count: filtered.Len()}
	}
}

// First returns the first run matching the predicates.
func (c *Collection) First(preds ...Predicate) (*Run, error) {
	filtered, err := c.Filter(preds...)
	if err != nil {
		return nil, err
	}
	if filtered.Len() == 0 {
		return nil, &NotFoundError{}
	}
	return filtered.At(0), nil
}

// Last returns the last run matching the predicates.
func (c *Collection) Last(preds ...Predicate) (*Run, error) {
	filtered, err := c.Filter(preds...)
	if err != nil {
		return nil, err
	}
	if filtered.Len() == 0 {
		return nil, &NotFoundError{}
	}
	return filtered.At(filtered.Len() - 1), nil
}

// ToList projects one attribute across all runs. An unresolved key on any
// run propagates the resolver's failure.
func (c *Collection) ToList(key string) ([]any, error) {
	out := make([]any, len(c.runs))
	for i, r := range c.runs {
		v, err := r.Get(key)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ToListOr projects one attribute across all runs, substituting a default
// (literal or func(*Run) any) for unresolved keys.
func (c *Collection) ToListOr(key string, def any) []any {
	out := make([]any, len(c.runs))
	for i, r := range c.runs {
		out[i] = r.GetOr(key, def)
	}
	return out
}

// Floats projects one attribute as float64 values. Non-numeric values are
// an error.
func (c *Collection) Floats(key string) ([]float64, error) {
	values, err := c.ToList(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("attribute %s: value %v is not numeric", key, v)
		}
		out[i] = f
	}
	return out, nil
}

// Strings projects one attribute as rendered strings.
func (c *Collection) Strings(key string) ([]string, error) {
	values, err := c.ToList(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(v)
		}
	}
	return out, nil
}

// Unique returns the distinct projected values of one attribute, in order
// of first appearance. Distinctness follows ToHashable, so array-like
// values with equal elements collapse to one entry.
func (c *Collection) Unique(key string) ([]any, error) {
	values, err := c.ToList(key)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(values))
	var out []any
	for _, v := range values {
		k := hashKey([]any{v})
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// NUnique returns the number of distinct projected values of one attribute.
func (c *Collection) NUnique(key string) (int, error) {
	values, err := c.Unique(key)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

// Sort returns a new collection sorted by the given attributes: primary key
// first, ties broken by subsequent keys in listed order. The sort is
// stable. With no keys the collection itself is returned unchanged.
func (c *Collection) Sort(keys ...string) (*Collection, error) {
	return c.sort(keys, false)
}

// SortReverse sorts like Sort but in descending order.
func (c *Collection) SortReverse(keys ...string) (*Collection, error) {
	return c.sort(keys, true)
}

func (c *Collection) sort(keys []string, reverse bool) (*Collection, error) {
	if len(keys) == 0 {
		return c, nil
	}

	columns := make([][]any, len(keys))
	for i, key := range keys {
		col, err := c.ToList(key)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	index := make([]int, len(c.runs))
	for i := range index {
		index[i] = i
	}

	sort.SliceStable(index, func(a, b int) bool {
		for _, col := range columns {
			cmp := compareValues(col[index[a]], col[index[b]])
			if cmp != 0 {
				if reverse {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return false
	})

	out := make([]*Run, len(index))
	for i, j := range index {
		out[i] = c.runs[j]
	}
	return &Collection{runs: out}, nil
}

// Update fans out Run.Update across every member.
func (c *Collection) Update(key string, value any, force bool) error {
	for _, r := range c.runs {
		if err := r.Update(key, value, force); err != nil {
			return err
		}
	}
	return nil
}

// UpdateEach fans out Run.UpdateEach across every member.
func (c *Collection) UpdateEach(keys []string, value any, force bool) error {
	for _, r := range c.runs {
		if err := r.UpdateEach(keys, value, force); err != nil {
			return err
		}
	}
	return nil
}
