package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sweeplab/sweeprun/internal/run"
)

func testCollection(t *testing.T) *run.Collection {
	t.Helper()
	root := t.TempDir()

	runs := make([]*run.Run, 0, 2)
	for i, id := range []string{"r1", "r2"} {
		dir := filepath.Join(root, id)
		if err := os.MkdirAll(filepath.Join(dir, "artifacts"), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		meta := "name: train\n"
		if err := os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte(meta), 0o644); err != nil {
			t.Fatalf("write meta failed: %v", err)
		}
		cfg := "lr: 0." + strings.Repeat("1", i+1) + "\n"
		path := filepath.Join(dir, "artifacts", "config.yaml")
		if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
			t.Fatalf("write config failed: %v", err)
		}
		runs = append(runs, run.New(dir))
	}
	return run.NewCollection(runs)
}

func TestNewModel(t *testing.T) {
	m := New(testCollection(t), []string{"lr"})

	view := m.View()
	if !strings.Contains(view, "sweeprun browser") {
		t.Error("view missing header")
	}
	if !strings.Contains(view, "2 runs") {
		t.Error("view missing run count")
	}
	if !strings.Contains(view, "r1") {
		t.Error("view missing first run")
	}
}

func TestModelQuit(t *testing.T) {
	m := New(testCollection(t), nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	if !updated.(Model).Quitting() {
		t.Error("model not marked quitting after q")
	}
}

func TestModelDetailView(t *testing.T) {
	m := New(testCollection(t), nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	view := model.View()
	if !strings.Contains(view, "Run r1") {
		t.Errorf("detail view missing selected run: %s", view)
	}
	if !strings.Contains(view, "lr") {
		t.Error("detail view missing config attribute")
	}

	// Escape returns to the list.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(Model)
	if model.Quitting() {
		t.Error("escape from detail view quit the program")
	}
	if !strings.Contains(model.View(), "enter: details") {
		t.Error("list view help bar missing after escape")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := New(testCollection(t), nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)
	if model.width != 120 || model.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", model.width, model.height)
	}
}
