package run

import (
	"reflect"
	"testing"
)

func TestGroupBy(t *testing.T) {
	c := testCollection(t)

	g, err := c.GroupBy("model")
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}

	if g.Len() != 2 {
		t.Fatalf("GroupBy has %d groups, want 2", g.Len())
	}

	// Groups follow first appearance in the source collection.
	groups := g.Groups()
	if groups[0].Key[0] != "resnet" || groups[1].Key[0] != "vit" {
		t.Errorf("group order = [%v, %v], want [resnet, vit]", groups[0].Key[0], groups[1].Key[0])
	}
	if ids := runIDs(groups[0].Runs); !reflect.DeepEqual(ids, []string{"r1", "r2"}) {
		t.Errorf("resnet group = %v, want [r1 r2]", ids)
	}

	sub, ok := g.Get("vit")
	if !ok {
		t.Fatal("Get(vit) found no group")
	}
	if ids := runIDs(sub); !reflect.DeepEqual(ids, []string{"r3", "r4"}) {
		t.Errorf("vit group = %v, want [r3 r4]", ids)
	}

	if _, ok := g.Get("bert"); ok {
		t.Error("Get(bert) found a group")
	}
}

func TestGroupByMultipleKeys(t *testing.T) {
	c := testCollection(t)

	g, err := c.GroupBy("model", "seed")
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if g.Len() != 4 {
		t.Errorf("GroupBy has %d groups, want 4", g.Len())
	}

	sub, ok := g.Get("resnet", 0)
	if !ok {
		t.Fatal("Get(resnet, 0) found no group")
	}
	if ids := runIDs(sub); !reflect.DeepEqual(ids, []string{"r1"}) {
		t.Errorf("group = %v, want [r1]", ids)
	}

	// Numeric key values normalize, so a float lookup finds the int group.
	if _, ok := g.Get("resnet", 0.0); !ok {
		t.Error("Get(resnet, 0.0) missed the int-keyed group")
	}
}

func TestGroupByUnresolvedKey(t *testing.T) {
	c := testCollection(t)

	if _, err := c.GroupBy("missing"); err == nil {
		t.Error("GroupBy succeeded with unresolved key")
	}
}

func TestGroupByAgg(t *testing.T) {
	c := testCollection(t)

	g, err := c.GroupBy("model")
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}

	f, err := g.Agg(
		Count("n"),
		Values("lr"),
		Reduce("max_lr", func(c *Collection) (any, error) {
			values, err := c.Floats("lr")
			if err != nil {
				return nil, err
			}
			maxV := values[0]
			for _, v := range values[1:] {
				if v > maxV {
					maxV = v
				}
			}
			return maxV, nil
		}),
	)
	if err != nil {
		t.Fatalf("Agg failed: %v", err)
	}

	wantCols := []string{"model", "n", "lr", "max_lr"}
	if !reflect.DeepEqual(f.Columns(), wantCols) {
		t.Fatalf("Agg columns = %v, want %v", f.Columns(), wantCols)
	}

	models, _ := f.Column("model")
	if !reflect.DeepEqual(models, []any{"resnet", "vit"}) {
		t.Errorf("model column = %v", models)
	}

	counts, _ := f.Column("n")
	if !reflect.DeepEqual(counts, []any{2, 2}) {
		t.Errorf("count column = %v", counts)
	}

	lrs, _ := f.Column("lr")
	if !reflect.DeepEqual(lrs, []any{[]any{0.1, 0.01}, []any{0.1, 0.001}}) {
		t.Errorf("lr column = %v", lrs)
	}

	maxes, _ := f.Column("max_lr")
	if !reflect.DeepEqual(maxes, []any{0.1, 0.1}) {
		t.Errorf("max_lr column = %v", maxes)
	}
}
