package run

import (
	"fmt"
	"reflect"
	"strings"
)

// ToHashable converts an arbitrary attribute value into a stable key usable
// as a map key for grouping and uniqueness. Natively comparable values pass
// through unchanged; sequences become a canonical tuple rendering of their
// elements; everything else falls back to its rendered string form. The
// total order of attempts guarantees ToHashable never panics.
func ToHashable(value any) any {
	if value == nil {
		return nil
	}

	if isSequence(value) {
		parts := make([]string, 0, reflect.ValueOf(value).Len())
		for _, item := range toSlice(value) {
			parts = append(parts, fmt.Sprint(ToHashable(item)))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}

	rt := reflect.TypeOf(value)
	if rt.Comparable() {
		return value
	}

	return fmt.Sprint(value)
}

// hashKey renders a composite grouping key for several attribute values.
// Numeric values normalize to one representation so an int and a float with
// the same value land in the same group.
func hashKey(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		h := ToHashable(v)
		if f, ok := toFloat(h); ok {
			parts[i] = fmt.Sprintf("n:%g", f)
		} else {
			parts[i] = fmt.Sprintf("%T:%v", h, h)
		}
	}
	return strings.Join(parts, "|")
}
