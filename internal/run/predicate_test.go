package run

import "testing"

func TestMatchesEquality(t *testing.T) {
	tests := []struct {
		name      string
		attr      any
		criterion any
		want      bool
	}{
		{"equal strings", "a", "a", true},
		{"unequal strings", "a", "b", false},
		{"equal ints", 3, 3, true},
		{"int equals float", 3, 3.0, true},
		{"float equals int", 0.5, 0.5, true},
		{"number never equals string", 3, "3", false},
		{"nil equals nil", nil, nil, true},
		{"bools", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.attr, tt.criterion); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.attr, tt.criterion, got, tt.want)
			}
		})
	}
}

func TestMatchesMembership(t *testing.T) {
	tests := []struct {
		name      string
		attr      any
		criterion any
		want      bool
	}{
		{"member", 2, []any{1, 2, 3}, true},
		{"not a member", 5, []any{1, 2, 3}, false},
		{"typed slice criterion", 2, []int{1, 2, 3}, true},
		{"numeric widening inside membership", 2, []any{1.0, 2.0}, true},
		{"string membership", "b", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.attr, tt.criterion); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.attr, tt.criterion, got, tt.want)
			}
		})
	}
}

func TestMatchesRange(t *testing.T) {
	tests := []struct {
		name string
		attr any
		rng  Range
		want bool
	}{
		{"inside", 5, Range{Lo: 1, Hi: 10}, true},
		{"at lower bound", 1, Range{Lo: 1, Hi: 10}, true},
		{"at upper bound", 10, Range{Lo: 1, Hi: 10}, true},
		{"below", 0, Range{Lo: 1, Hi: 10}, false},
		{"above", 11, Range{Lo: 1, Hi: 10}, false},
		{"float attribute", 0.5, Range{Lo: 0, Hi: 1}, true},
		{"string bounds", "m", Range{Lo: "a", Hi: "z"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.attr, tt.rng); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.attr, tt.rng, got, tt.want)
			}
		})
	}
}

func TestMatchesSequenceAttribute(t *testing.T) {
	// A slice criterion against a slice attribute is structural equality,
	// not membership.
	if !Matches([]any{1, 2}, []any{1, 2}) {
		t.Error("equal sequences did not match")
	}
	if Matches([]any{1, 2}, []any{1, 2, 3}) {
		t.Error("sequences of different length matched")
	}
	if !Matches([]int{1, 2}, []any{1.0, 2.0}) {
		t.Error("numeric widening inside sequences did not apply")
	}

	// A Range attribute against a Range criterion is equality, not an
	// interval test.
	if !Matches(Range{Lo: 1, Hi: 2}, Range{Lo: 1, Hi: 2}) {
		t.Error("equal ranges did not match")
	}
}

func TestMatchesFunc(t *testing.T) {
	even := func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}

	if !Matches(4, even) {
		t.Error("func criterion rejected a matching value")
	}
	if Matches(3, even) {
		t.Error("func criterion accepted a non-matching value")
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"mixed numerics", 2, 1.5, 1},
		{"equal numerics", 2, 2.0, 0},
		{"strings", "a", "b", -1},
		{"number vs string falls back to rendering", 10, "2", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareValues(tt.a, tt.b); got != tt.want {
				t.Errorf("compareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
