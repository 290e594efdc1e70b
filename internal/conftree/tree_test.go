package conftree

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleYAML = `
model:
  name: resnet
  depth: 50
lr: 0.1
tags:
  - a
  - b
`

func TestParse(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		key  string
		want any
	}{
		{"lr", 0.1},
		{"model.name", "resnet"},
		{"model.depth", 50},
	}
	for _, tt := range tests {
		got, ok := tree.Select(tt.key)
		if !ok {
			t.Errorf("Select(%q) not found", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("Select(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}

	tags, ok := tree.Select("tags")
	if !ok {
		t.Fatal("Select(tags) not found")
	}
	if !reflect.DeepEqual(tags, []any{"a", "b"}) {
		t.Errorf("Select(tags) = %v", tags)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	tree, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tree.Len() != 0 {
		t.Errorf("empty document has %d leaves", tree.Len())
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("a: [1, 2\n")); err == nil {
		t.Error("Parse succeeded on invalid YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	tree, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := tree.Select("a"); v != 1 {
		t.Errorf("Select(a) = %v, want 1", v)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load succeeded for a missing file")
	}
}

func TestSelectMissing(t *testing.T) {
	tree, _ := Parse([]byte(sampleYAML))

	for _, key := range []string{"", "missing", "model.missing", "lr.nested", "model.name.deeper"} {
		if _, ok := tree.Select(key); ok {
			t.Errorf("Select(%q) found a value", key)
		}
	}
}

func TestSet(t *testing.T) {
	tree := New()

	tree.Set("a", 1)
	tree.Set("b.c.d", "deep")

	if v, _ := tree.Select("a"); v != 1 {
		t.Errorf("Select(a) = %v", v)
	}
	if v, _ := tree.Select("b.c.d"); v != "deep" {
		t.Errorf("Select(b.c.d) = %v", v)
	}
	if !tree.IsSet("b.c") {
		t.Error("intermediate section not set")
	}

	// A scalar on the path is replaced by a section.
	tree.Set("a.x", 2)
	if v, _ := tree.Select("a.x"); v != 2 {
		t.Errorf("Select(a.x) = %v", v)
	}
}

func TestFlatten(t *testing.T) {
	tree, _ := Parse([]byte(sampleYAML))

	flat := tree.Flatten()
	want := map[string]any{
		"model.name":  "resnet",
		"model.depth": 50,
		"lr":          0.1,
		"tags":        []any{"a", "b"},
	}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("Flatten = %v, want %v", flat, want)
	}

	wantKeys := []string{"lr", "model.depth", "model.name", "tags"}
	if !reflect.DeepEqual(tree.Keys(), wantKeys) {
		t.Errorf("Keys = %v, want %v", tree.Keys(), wantKeys)
	}
	if tree.Len() != 4 {
		t.Errorf("Len = %d, want 4", tree.Len())
	}
}

func TestFromMapNil(t *testing.T) {
	tree := FromMap(nil)
	tree.Set("a", 1)
	if !tree.IsSet("a") {
		t.Error("Set on nil-backed tree failed")
	}
}
