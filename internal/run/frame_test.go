package run

import (
	"reflect"
	"testing"
)

func TestFrameBasics(t *testing.T) {
	f := NewFrame()
	f.AddColumn("a", []any{1, 2, 3})
	f.AddColumn("b", []any{"x", "y", "z"})

	if !reflect.DeepEqual(f.Columns(), []string{"a", "b"}) {
		t.Errorf("Columns = %v", f.Columns())
	}
	if f.NumRows() != 3 {
		t.Errorf("NumRows = %d, want 3", f.NumRows())
	}

	row := f.Row(1)
	if row["a"] != 2 || row["b"] != "y" {
		t.Errorf("Row(1) = %v", row)
	}

	// Re-adding a column replaces values without reordering.
	f.AddColumn("a", []any{9, 9, 9})
	if !reflect.DeepEqual(f.Columns(), []string{"a", "b"}) {
		t.Errorf("Columns after replace = %v", f.Columns())
	}
	col, _ := f.Column("a")
	if !reflect.DeepEqual(col, []any{9, 9, 9}) {
		t.Errorf("replaced column = %v", col)
	}
}

func TestToFrame(t *testing.T) {
	c := testCollection(t)

	f, err := c.ToFrame("model", "lr")
	if err != nil {
		t.Fatalf("ToFrame failed: %v", err)
	}

	if !reflect.DeepEqual(f.Columns(), []string{"model", "lr"}) {
		t.Errorf("Columns = %v", f.Columns())
	}

	models, _ := f.Column("model")
	if !reflect.DeepEqual(models, []any{"resnet", "resnet", "vit", "vit"}) {
		t.Errorf("model column = %v", models)
	}
}

func TestToFrameNoKeys(t *testing.T) {
	c := testCollection(t)

	f, err := c.ToFrame()
	if err != nil {
		t.Fatalf("ToFrame failed: %v", err)
	}

	cols := f.Columns()
	wantLead := []string{"run_id", "run_dir", "job_name"}
	if !reflect.DeepEqual(cols[:3], wantLead) {
		t.Errorf("leading columns = %v, want %v", cols[:3], wantLead)
	}
	if f.NumRows() != c.Len() {
		t.Errorf("NumRows = %d, want %d", f.NumRows(), c.Len())
	}

	ids, _ := f.Column("run_id")
	if !reflect.DeepEqual(ids, []any{"r1", "r2", "r3", "r4"}) {
		t.Errorf("run_id column = %v", ids)
	}

	lrs, _ := f.Column("lr")
	if !reflect.DeepEqual(lrs, []any{0.1, 0.01, 0.1, 0.001}) {
		t.Errorf("lr column = %v", lrs)
	}
}

func TestToFrameWith(t *testing.T) {
	c := testCollection(t)

	f, err := c.ToFrameWith([]string{"model"}, map[string]ComputedColumn{
		"tag": Lit("v1"),
		"double_seed": func(r *Run) (any, error) {
			v, err := r.Get("seed")
			if err != nil {
				return nil, err
			}
			return v.(int) * 2, nil
		},
	})
	if err != nil {
		t.Fatalf("ToFrameWith failed: %v", err)
	}

	// Bare keys first, then computed names in sorted order.
	want := []string{"model", "double_seed", "tag"}
	if !reflect.DeepEqual(f.Columns(), want) {
		t.Errorf("Columns = %v, want %v", f.Columns(), want)
	}

	doubled, _ := f.Column("double_seed")
	if !reflect.DeepEqual(doubled, []any{0, 2, 0, 2}) {
		t.Errorf("double_seed column = %v", doubled)
	}

	tags, _ := f.Column("tag")
	if !reflect.DeepEqual(tags, []any{"v1", "v1", "v1", "v1"}) {
		t.Errorf("tag column = %v", tags)
	}
}

func TestToFrameWithNestedMaps(t *testing.T) {
	c := testCollection(t)

	f, err := c.ToFrameWith(nil, map[string]ComputedColumn{
		"stats": func(r *Run) (any, error) {
			v, err := r.Get("seed")
			if err != nil {
				return nil, err
			}
			return map[string]any{"seed": v, "id": r.Info.RunID()}, nil
		},
	})
	if err != nil {
		t.Fatalf("ToFrameWith failed: %v", err)
	}

	want := []string{"stats.id", "stats.seed"}
	if !reflect.DeepEqual(f.Columns(), want) {
		t.Errorf("Columns = %v, want %v", f.Columns(), want)
	}

	ids, _ := f.Column("stats.id")
	if !reflect.DeepEqual(ids, []any{"r1", "r2", "r3", "r4"}) {
		t.Errorf("stats.id column = %v", ids)
	}
}
