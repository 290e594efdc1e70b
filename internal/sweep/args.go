package sweep

import (
	"fmt"
	"strings"
)

// AlternationError reports an invalid pipe-separated alternative, such as an
// empty alternative or a leading alternative without a key.
type AlternationError struct {
	Spec string
}

func (e *AlternationError) Error() string {
	return fmt.Sprintf("invalid alternative in %q", e.Spec)
}

// splitArg splits a "key=value" token into key, suffix, and value. A key may
// carry a "/suffix" spelling ("lr/m=1:3") that applies the suffix to every
// expanded value.
func splitArg(arg string) (key, suffix, value string, err error) {
	i := strings.Index(arg, "=")
	if i < 0 {
		return "", "", "", fmt.Errorf("missing '=' in argument %q", arg)
	}
	key, value = arg[:i], arg[i+1:]

	if j := strings.Index(key, "/"); j >= 0 {
		return key[:j], key[j+1:], value, nil
	}
	return key, "", value, nil
}

// expandWithSuffix expands a value field and applies a key-level suffix to
// every resulting token.
func expandWithSuffix(value, suffix string) ([]string, error) {
	if exp, ok := suffixExponent[suffix]; ok {
		suffix = exp
	}

	values, err := ExpandValues(value)
	if err != nil {
		return nil, err
	}
	if suffix == "" {
		return values, nil
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = addSuffix(v, suffix)
	}
	return out, nil
}

// CollectArg collapses the ranges in a "key=spec" token into a single
// explicit assignment: "a=1:3" becomes "a=1,2,3".
func CollectArg(arg string) (string, error) {
	key, suffix, value, err := splitArg(arg)
	if err != nil {
		return "", err
	}

	values, err := expandWithSuffix(value, suffix)
	if err != nil {
		return "", err
	}
	return key + "=" + strings.Join(values, ","), nil
}

// ExpandArg expands a single "key=spec" token into the assignments it
// contributes to the batch product.
//
// Without a pipe, every expanded value becomes its own assignment:
// "b=3,4" yields "b=3" and "b=4". With pipes, each alternative is collapsed
// into one whole assignment and the alternatives enumerate sequentially:
// "a=1:2|3,4" yields "a=1,2" and "a=3,4". Alternatives after the first may
// omit the "key=" prefix and reuse the previous key. An empty alternative is
// an error.
func ExpandArg(arg string) ([]string, error) {
	if !strings.Contains(arg, "|") {
		key, suffix, value, err := splitArg(arg)
		if err != nil {
			return nil, err
		}

		values, err := expandWithSuffix(value, suffix)
		if err != nil {
			return nil, err
		}

		out := make([]string, len(values))
		for i, v := range values {
			out[i] = key + "=" + v
		}
		return out, nil
	}

	var out []string
	var key, suffix string

	for _, alt := range strings.Split(arg, "|") {
		var value string
		switch {
		case alt == "":
			return nil, &AlternationError{Spec: arg}
		case strings.Contains(alt, "="):
			var err error
			key, suffix, value, err = splitArg(alt)
			if err != nil {
				return nil, err
			}
		case key != "":
			value = alt
		default:
			return nil, &AlternationError{Spec: arg}
		}

		values, err := expandWithSuffix(value, suffix)
		if err != nil {
			return nil, err
		}
		out = append(out, key+"="+strings.Join(values, ","))
	}
	return out, nil
}

// Collect normalizes a newline- or space-separated argument string (or an
// already-split token list) into a flat list of collapsed assignments.
// Tokens without '=' are dropped.
func Collect(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			continue
		}
		collected, err := CollectArg(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, collected)
	}
	return out, nil
}

// CollectString splits a free-text argument string on whitespace (quotes and
// brackets keep their contents together) and collects the resulting tokens.
func CollectString(args string) ([]string, error) {
	return Collect(SplitTokens(args))
}

// Expand produces the cartesian product across the whitespace-separated
// "key=spec" tokens of a batch specification. Tokens without '=' are
// dropped. An empty specification expands to a single empty batch.
func Expand(batch string) ([][]string, error) {
	var lists [][]string
	for _, arg := range SplitTokens(batch) {
		if !strings.Contains(arg, "=") {
			continue
		}
		expanded, err := ExpandArg(arg)
		if err != nil {
			return nil, err
		}
		lists = append(lists, expanded)
	}
	return product(lists), nil
}

// product computes the cartesian product of the given lists. The product of
// zero lists is one empty combination.
func product(lists [][]string) [][]string {
	result := [][]string{{}}
	for _, list := range lists {
		var next [][]string
		for _, combo := range result {
			for _, item := range list {
				row := make([]string, len(combo), len(combo)+1)
				copy(row, combo)
				next = append(next, append(row, item))
			}
		}
		result = next
	}
	return result
}

// SplitTokens splits a specification string on whitespace while keeping
// quoted and bracketed segments intact. Newlines count as whitespace, so
// multi-line batch blocks work unchanged.
func SplitTokens(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0
	inSingle, inDouble := false, false

	flush := func() {
		if current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
		}
	}

	for _, c := range s {
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '[' && !inSingle && !inDouble:
			depth++
		case c == ']' && !inSingle && !inDouble:
			depth--
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && depth == 0 && !inSingle && !inDouble:
			flush()
			continue
		}
		current.WriteRune(c)
	}
	flush()
	return result
}
