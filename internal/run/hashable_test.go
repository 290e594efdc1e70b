package run

import "testing"

func TestToHashable(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nil", nil, nil},
		{"int passes through", 3, 3},
		{"string passes through", "a", "a"},
		{"bool passes through", true, true},
		{"slice becomes tuple string", []any{1, 2}, "(1, 2)"},
		{"typed slice becomes tuple string", []int{1, 2}, "(1, 2)"},
		{"nested slice", []any{1, []any{2, 3}}, "(1, (2, 3))"},
		{"empty slice", []any{}, "()"},
		{"map falls back to rendering", map[string]any{"a": 1}, "map[a:1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHashable(tt.value); got != tt.want {
				t.Errorf("ToHashable(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestHashKeyNumericNormalization(t *testing.T) {
	if hashKey([]any{1}) != hashKey([]any{1.0}) {
		t.Error("int and float with the same value hash differently")
	}
	if hashKey([]any{1}) == hashKey([]any{"1"}) {
		t.Error("number and string hash identically")
	}
	if hashKey([]any{1, "a"}) == hashKey([]any{1, "b"}) {
		t.Error("distinct composite keys collide")
	}
	if hashKey([]any{[]any{1, 2}}) != hashKey([]any{[]int{1, 2}}) {
		t.Error("equal sequences hash differently")
	}
}
