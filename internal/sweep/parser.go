// Package sweep expands compact parameter-sweep specifications into the
// concrete override assignments submitted as individual runs.
//
// A range token has the form "start", "start:stop", or "start:step:stop",
// optionally followed by ":suffix" where the suffix is an engineering unit
// letter (k, M, m, n, ...) or a literal exponent such as "e2". Tokens are
// combined with commas, pipes, and whitespace by the argument combinator in
// args.go.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidRangeError reports a malformed range token. The message names the
// specific rule the token violated.
type InvalidRangeError struct {
	Spec   string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return e.Reason
}

// suffixExponent maps engineering unit letters to exponent strings.
var suffixExponent = map[string]string{
	"T": "e12",
	"G": "e9",
	"M": "e6",
	"k": "e3",
	"m": "e-3",
	"u": "e-6",
	"n": "e-9",
	"p": "e-12",
	"f": "e-15",
}

// toNumber converts a numeric literal to a float. An empty string converts
// to zero so that ":3" means "0:3".
func toNumber(x string) (float64, error) {
	if x == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", x, err)
	}
	return v, nil
}

// isIntLiteral reports whether a literal parses as an integer. Empty strings
// count as the integer zero.
func isIntLiteral(x string) bool {
	if x == "" {
		return true
	}
	if strings.Contains(x, ".") || strings.ContainsAny(x, "eE") {
		return false
	}
	_, err := strconv.Atoi(x)
	return err == nil
}

// countDecimalPlaces returns the number of digits after the decimal point in
// a literal, ignoring any exponent part.
func countDecimalPlaces(x string) int {
	i := strings.Index(x, ".")
	if i < 0 {
		return 0
	}
	decimal := x[i+1:]
	if j := strings.IndexAny(decimal, "eE"); j >= 0 {
		decimal = decimal[:j]
	}
	return len(decimal)
}

// rangeSpec is a parsed start:step:stop triple. Literal tokens are kept so
// output formatting can preserve the input's integer-ness and precision.
type rangeSpec struct {
	start, step, stop          float64
	startTok, stepTok, stopTok string
}

// getRange parses the numeric part of a range token (suffix already
// stripped) into a validated triple. Two parts imply a step of one.
func getRange(arg string) (rangeSpec, error) {
	parts := strings.Split(arg, ":")

	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := toNumber(p)
		if err != nil {
			return rangeSpec{}, err
		}
		nums[i] = v
	}

	if len(parts) == 2 {
		if nums[0] > nums[1] {
			return rangeSpec{}, &InvalidRangeError{Spec: arg, Reason: "start cannot be greater than stop"}
		}
		return rangeSpec{
			start: nums[0], step: 1, stop: nums[1],
			startTok: parts[0], stepTok: "1", stopTok: parts[1],
		}, nil
	}

	if len(parts) != 3 {
		return rangeSpec{}, &InvalidRangeError{Spec: arg, Reason: fmt.Sprintf("range must have 2 or 3 parts, got %d", len(parts))}
	}

	if nums[1] == 0 {
		return rangeSpec{}, &InvalidRangeError{Spec: arg, Reason: "step cannot be zero"}
	}
	if nums[1] > 0 && nums[0] > nums[2] {
		return rangeSpec{}, &InvalidRangeError{Spec: arg, Reason: "start cannot be greater than stop"}
	}
	if nums[1] < 0 && nums[0] < nums[2] {
		return rangeSpec{}, &InvalidRangeError{Spec: arg, Reason: "start cannot be less than stop"}
	}

	return rangeSpec{
		start: nums[0], step: nums[1], stop: nums[2],
		startTok: parts[0], stepTok: parts[1], stopTok: parts[2],
	}, nil
}

// splitSuffix splits a range token into its numeric part and an exponent
// suffix. The substring after the last colon is a suffix only if it is not
// purely numeric; known engineering letters map to exponents and anything
// else is kept verbatim as a literal exponent.
func splitSuffix(arg string) (string, string) {
	if !strings.Contains(arg, ":") {
		return arg, ""
	}

	i := strings.LastIndex(arg, ":")
	rng, suffix := arg[:i], arg[i+1:]

	numeric := true
	for _, c := range suffix {
		if !(c >= '0' && c <= '9') && c != '.' && c != '+' && c != '-' {
			numeric = false
			break
		}
	}
	if numeric {
		return arg, ""
	}

	if exp, ok := suffixExponent[suffix]; ok {
		return rng, exp
	}
	return rng, suffix
}

// addSuffix appends an exponent suffix to a rendered value. Zero never
// receives a suffix.
func addSuffix(value, suffix string) string {
	if suffix == "" || value == "0" || value == "0." || value == "0.0" {
		return value
	}
	return value + suffix
}

// roundTo rounds x to n decimal places.
func roundTo(x float64, n int) float64 {
	factor := math.Pow(10, float64(n))
	return math.Round(x*factor) / factor
}

// formatFloat renders a rounded float with at least one decimal digit, so
// "1:0.5:2" ends in "2.0" rather than "2".
func formatFloat(x float64, n int) string {
	s := strconv.FormatFloat(roundTo(x, n), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// expandRange generates the inclusive arithmetic sequence for a validated
// range and renders each element. If every literal is an integer the output
// is plain integer tokens; otherwise values are rounded to the maximum
// number of decimal places among the input literals. A sequence that starts
// at an integer keeps the integer rendering for elements reached before the
// step introduces a fractional part.
func expandRange(r rangeSpec) []string {
	startInt := isIntLiteral(r.startTok)
	stepInt := isIntLiteral(r.stepTok)
	allInt := startInt && stepInt && isIntLiteral(r.stopTok)

	n := max(countDecimalPlaces(r.startTok),
		countDecimalPlaces(r.stepTok),
		countDecimalPlaces(r.stopTok))

	var out []string
	cur := r.start
	for i := 0; r.step > 0 && cur <= r.stop || r.step < 0 && cur >= r.stop; i++ {
		switch {
		case allInt, startInt && stepInt:
			out = append(out, strconv.FormatInt(int64(math.Round(cur)), 10))
		case i == 0 && startInt:
			out = append(out, strconv.FormatInt(int64(math.Round(cur)), 10))
		default:
			out = append(out, formatFloat(cur, n))
		}
		cur += r.step
	}
	return out
}

// CollectValues expands a single range token into its explicit list of
// string values. A token without a colon passes through unchanged.
func CollectValues(arg string) ([]string, error) {
	if !strings.Contains(arg, ":") {
		return []string{arg}, nil
	}

	rng, suffix := splitSuffix(arg)

	if !strings.Contains(rng, ":") {
		return []string{addSuffix(rng, suffix)}, nil
	}

	r, err := getRange(rng)
	if err != nil {
		return nil, err
	}

	values := expandRange(r)
	for i, v := range values {
		values[i] = addSuffix(v, suffix)
	}
	return values, nil
}

// ExpandValues expands a comma-separated field of values and range tokens
// into the concatenated list of all individual values. Commas inside
// brackets or quotes do not split.
func ExpandValues(field string) ([]string, error) {
	var out []string
	for _, part := range splitTopLevel(field) {
		values, err := CollectValues(part)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}
	return out, nil
}

// splitTopLevel splits a string on commas that are not nested inside
// brackets, single quotes, or double quotes.
func splitTopLevel(arg string) []string {
	var result []string
	var current strings.Builder
	depth := 0
	inSingle, inDouble := false, false

	for _, c := range arg {
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '[' && !inSingle && !inDouble:
			depth++
		case c == ']' && !inSingle && !inDouble:
			depth--
		case c == ',' && depth == 0 && !inSingle && !inDouble:
			result = append(result, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(c)
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}
