package run

import "sort"

// Frame is a column-ordered tabular projection of a collection.
type Frame struct {
	names   []string
	columns map[string][]any
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{columns: make(map[string][]any)}
}

// AddColumn appends a named column. Re-adding a name replaces its values
// without changing column order.
func (f *Frame) AddColumn(name string, values []any) {
	if _, ok := f.columns[name]; !ok {
		f.names = append(f.names, name)
	}
	f.columns[name] = values
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column returns the values of a named column.
func (f *Frame) Column(name string) ([]any, bool) {
	col, ok := f.columns[name]
	return col, ok
}

// NumRows returns the row count, the length of the longest column.
func (f *Frame) NumRows() int {
	n := 0
	for _, col := range f.columns {
		if len(col) > n {
			n = len(col)
		}
	}
	return n
}

// Row returns one row as a column-name-to-value map. Columns shorter than
// the row index contribute nil.
func (f *Frame) Row(i int) map[string]any {
	out := make(map[string]any, len(f.names))
	for _, name := range f.names {
		col := f.columns[name]
		if i < len(col) {
			out[name] = col[i]
		} else {
			out[name] = nil
		}
	}
	return out
}

// ComputedColumn builds one value per run for ToFrameWith. Literal values
// broadcast; map-valued results flatten into dotted nested columns.
type ComputedColumn func(*Run) (any, error)

// Lit broadcasts a literal value to every row.
func Lit(v any) ComputedColumn {
	return func(*Run) (any, error) { return v, nil }
}

// ToFrame projects the given attributes across all runs, one column per
// key. With no keys, each run contributes one row of its full flattened
// attribute map, and columns are the union of observed keys.
func (c *Collection) ToFrame(keys ...string) (*Frame, error) {
	if len(keys) == 0 {
		return c.fullFrame(), nil
	}
	return c.ToFrameWith(keys, nil)
}

// ToFrameWith projects bare keys plus computed columns. Computed column
// names are applied in sorted order for stable output; a computed result
// that is a map[string]any spreads into one column per dotted sub-key.
func (c *Collection) ToFrameWith(keys []string, computed map[string]ComputedColumn) (*Frame, error) {
	f := NewFrame()

	for _, key := range keys {
		col, err := c.ToList(key)
		if err != nil {
			return nil, err
		}
		f.AddColumn(key, col)
	}

	names := make([]string, 0, len(computed))
	for name := range computed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := make([]any, len(c.runs))
		structured := false
		for i, r := range c.runs {
			v, err := computed[name](r)
			if err != nil {
				return nil, err
			}
			if _, ok := v.(map[string]any); ok {
				structured = true
			}
			values[i] = v
		}

		if !structured {
			f.AddColumn(name, values)
			continue
		}

		for _, sub := range nestedColumns(values) {
			col := make([]any, len(values))
			for i, v := range values {
				if m, ok := v.(map[string]any); ok {
					col[i] = m[sub]
				}
			}
			f.AddColumn(name+"."+sub, col)
		}
	}
	return f, nil
}

// nestedColumns returns the sorted union of sub-keys across map-valued
// cells.
func nestedColumns(values []any) []string {
	seen := make(map[string]struct{})
	for _, v := range values {
		if m, ok := v.(map[string]any); ok {
			for k := range m {
				seen[k] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// fullFrame builds one row per run from each run's flattened attribute map.
// Column order follows first appearance across runs, info fields first.
func (c *Collection) fullFrame() *Frame {
	maps := make([]map[string]any, len(c.runs))
	var names []string
	seen := make(map[string]struct{})

	appendName := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			names = append(names, k)
		}
	}

	for i, r := range c.runs {
		maps[i] = r.ToMap()
		appendName("run_id")
		appendName("run_dir")
		appendName("job_name")

		keys := make([]string, 0, len(maps[i]))
		for k := range maps[i] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendName(k)
		}
	}

	f := NewFrame()
	for _, name := range names {
		col := make([]any, len(c.runs))
		for i, m := range maps {
			col[i] = m[name]
		}
		f.AddColumn(name, col)
	}
	return f
}
