package run

// Group is one partition of a grouped collection: the attribute values the
// group shares (one per grouping key) and the member runs in their original
// relative order.
type Group struct {
	Key  []any
	Runs *Collection
}

// GroupBy is an ordered mapping from grouping keys to sub-collections.
// Group order follows the first appearance of each key in the source
// collection.
type GroupBy struct {
	By     []string
	groups []*Group
	index  map[string]*Group
}

// GroupBy partitions the collection by the normalized values of the given
// attributes. Every member of a group shares identical normalized key
// values; first-seen key ordering is preserved.
func (c *Collection) GroupBy(keys ...string) (*GroupBy, error) {
	g := &GroupBy{
		By:    keys,
		index: make(map[string]*Group),
	}

	for _, r := range c.runs {
		values := make([]any, len(keys))
		for i, key := range keys {
			v, err := r.Get(key)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}

		id := hashKey(values)
		group, ok := g.index[id]
		if !ok {
			group = &Group{Key: values, Runs: &Collection{}}
			g.index[id] = group
			g.groups = append(g.groups, group)
		}
		group.Runs.runs = append(group.Runs.runs, r)
	}
	return g, nil
}

// Len returns the number of groups.
func (g *GroupBy) Len() int {
	return len(g.groups)
}

// Groups returns the groups in first-seen order.
func (g *GroupBy) Groups() []*Group {
	return g.groups
}

// Get returns the sub-collection for the given key values.
func (g *GroupBy) Get(values ...any) (*Collection, bool) {
	group, ok := g.index[hashKey(values)]
	if !ok {
		return nil, false
	}
	return group.Runs, true
}

// Aggregation computes one column value per group for Agg.
type Aggregation struct {
	Name string
	Fn   func(*Collection) (any, error)
}

// Reduce builds an aggregation from a reducer callable.
func Reduce(name string, fn func(*Collection) (any, error)) Aggregation {
	return Aggregation{Name: name, Fn: fn}
}

// Values builds an aggregation that projects an attribute across each
// group's members into a list column.
func Values(key string) Aggregation {
	return Aggregation{
		Name: key,
		Fn: func(c *Collection) (any, error) {
			return c.ToList(key)
		},
	}
}

// Count is an aggregation holding each group's member count.
func Count(name string) Aggregation {
	return Aggregation{
		Name: name,
		Fn: func(c *Collection) (any, error) {
			return c.Len(), nil
		},
	}
}

// Agg flattens the grouping into a tabular structure with one row per
// group: the grouping keys become columns, followed by one column per
// aggregation.
func (g *GroupBy) Agg(aggs ...Aggregation) (*Frame, error) {
	f := NewFrame()

	for i, name := range g.By {
		col := make([]any, len(g.groups))
		for j, group := range g.groups {
			col[j] = group.Key[i]
		}
		f.AddColumn(name, col)
	}

	for _, agg := range aggs {
		col := make([]any, len(g.groups))
		for j, group := range g.groups {
			v, err := agg.Fn(group.Runs)
			if err != nil {
				return nil, err
			}
			col[j] = v
		}
		f.AddColumn(agg.Name, col)
	}
	return f, nil
}
