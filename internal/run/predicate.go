package run

import (
	"fmt"
	"reflect"
)

// Range is an inclusive interval criterion: an attribute matches when it
// falls between Lo and Hi, both ends included. Bounds compare numerically
// for numeric attributes and lexicographically for strings.
type Range struct {
	Lo, Hi any
}

// Matches decides whether a single attribute value satisfies a filter
// criterion. Rules apply in priority order:
//
//  1. A func(any) bool criterion is invoked with the attribute.
//  2. A slice criterion against a non-slice attribute is a membership test.
//  3. A Range criterion against a non-Range, non-slice attribute is an
//     inclusive interval test.
//  4. Anything else is structural equality, with both sides normalized to
//     plain slices when iterable, so a config sequence compares equal to a
//     literal slice of the same elements.
//
// An exact match against a two-element collection is expressed with a slice
// criterion, not a Range; the attribute-kind guard in rules 2 and 3 keeps
// the two cases apart.
func Matches(attr, criterion any) bool {
	if fn, ok := criterion.(func(any) bool); ok {
		return fn(attr)
	}

	if rng, ok := criterion.(Range); ok {
		if _, isRange := attr.(Range); !isRange && !isSequence(attr) {
			return compareValues(rng.Lo, attr) <= 0 && compareValues(attr, rng.Hi) <= 0
		}
		return equalValues(attr, criterion)
	}

	if isSequence(criterion) && !isSequence(attr) {
		seq := toSlice(criterion)
		for _, item := range seq {
			if equalValues(attr, item) {
				return true
			}
		}
		return false
	}

	return equalValues(attr, criterion)
}

// isSequence reports whether a value is list-like: a slice or array, but
// not a string or byte slice.
func isSequence(v any) bool {
	switch v.(type) {
	case nil, string, []byte:
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// toSlice normalizes any slice or array into []any.
func toSlice(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// equalValues is structural equality with sequence and numeric
// normalization, so []int{1,2} equals []any{1,2} and int(3) equals
// float64(3).
func equalValues(a, b any) bool {
	if isSequence(a) && isSequence(b) {
		as, bs := toSlice(a), toSlice(b)
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalValues(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}

	return reflect.DeepEqual(a, b)
}

// compareValues orders two scalars: numerically when both are numeric,
// lexicographically for strings, and by rendered form otherwise. Returns a
// negative value when a < b, zero when equal, positive when a > b.
func compareValues(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if !aok {
		as = fmt.Sprint(a)
	}
	if !bok {
		bs = fmt.Sprint(b)
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// toFloat widens any numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
