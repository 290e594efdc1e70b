// Package conftree provides the hierarchical key-value tree that holds a
// run's configuration snapshot. Values are addressed by dotted paths
// ("db.name") and the tree is mutable after load so callers can backfill
// defaults into older runs.
package conftree

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tree is a hierarchical key-value document. Nested sections decode as
// map[string]any and sequences as []any, matching yaml.v3's generic mapping.
type Tree struct {
	root map[string]any
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: make(map[string]any)}
}

// FromMap builds a tree from an existing nested map. The map is used
// directly, not copied.
func FromMap(m map[string]any) *Tree {
	if m == nil {
		m = make(map[string]any)
	}
	return &Tree{root: m}
}

// Load reads a YAML document from path into a tree.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document into a tree. An empty document yields an
// empty tree.
func Parse(data []byte) (*Tree, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return FromMap(root), nil
}

// Select returns the value at a dotted path. The second return value reports
// whether the full path exists.
func (t *Tree) Select(key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	var cur any = t.root
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// IsSet reports whether a dotted path exists in the tree.
func (t *Tree) IsSet(key string) bool {
	_, ok := t.Select(key)
	return ok
}

// Set writes a value at a dotted path, creating intermediate sections as
// needed. A non-section value on the path is replaced by a section.
func (t *Tree) Set(key string, value any) {
	parts := strings.Split(key, ".")
	m := t.root
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
}

// AsMap returns the underlying nested map.
func (t *Tree) AsMap() map[string]any {
	return t.root
}

// Flatten returns a map from dotted leaf paths to values.
func (t *Tree) Flatten() map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", t.root)
	return out
}

// Keys returns the sorted dotted leaf paths of the tree.
func (t *Tree) Keys() []string {
	flat := t.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of leaf values.
func (t *Tree) Len() int {
	return len(t.Flatten())
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenInto(out, key, child)
			continue
		}
		out[key] = v
	}
}
