package run

import (
	"fmt"
	"testing"
)

func loadTestDirs(t *testing.T, n int) []string {
	t.Helper()
	root := t.TempDir()

	dirs := make([]string, n)
	for i := range dirs {
		id := fmt.Sprintf("run%03d", i)
		dirs[i] = writeRunDir(t, root, id, "train", fmt.Sprintf("index: %d\n", i))
	}
	return dirs
}

func TestLoadSequential(t *testing.T) {
	dirs := loadTestDirs(t, 5)

	c, err := Load(dirs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("Len = %d, want 5", c.Len())
	}

	for i := 0; i < c.Len(); i++ {
		r := c.At(i)
		if want := fmt.Sprintf("run%03d", i); r.Info.RunID() != want {
			t.Errorf("run %d = %s, want %s", i, r.Info.RunID(), want)
		}
		if r.Info.JobName() != "train" {
			t.Errorf("run %d job name = %q, want train", i, r.Info.JobName())
		}
	}
}

func TestLoadParallelPreservesOrder(t *testing.T) {
	dirs := loadTestDirs(t, 20)

	c, err := Load(dirs, NJobs(4))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 20 {
		t.Fatalf("Len = %d, want 20", c.Len())
	}

	for i := 0; i < c.Len(); i++ {
		v, err := c.At(i).Get("index")
		if err != nil {
			t.Fatalf("Get(index) failed: %v", err)
		}
		if v != i {
			t.Errorf("run at position %d has index %v", i, v)
		}
	}
}

func TestLoadWithRunOptions(t *testing.T) {
	dirs := loadTestDirs(t, 2)

	c, err := Load(dirs, WithRunOptions(WithFactory(func(artifactsDir string) (any, error) {
		return &provider{attrs: map[string]any{"extra": "yes"}}, nil
	})))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	v, err := c.At(0).Get("extra")
	if err != nil {
		t.Fatalf("Get(extra) failed: %v", err)
	}
	if v != "yes" {
		t.Errorf("Get(extra) = %v, want yes", v)
	}
}

func TestLoadEmpty(t *testing.T) {
	c, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}
