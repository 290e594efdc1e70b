// Package tracking locates run directories under an experiment-tracking
// root. The layout is conventional: the root holds one directory per
// experiment, recognized by a meta.yaml naming it, and each experiment
// directory holds one directory per run, recognized by an artifacts/
// subdirectory.
package tracking

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// trashDir and the reserved default experiment are skipped during
// discovery.
var skippedDirs = map[string]struct{}{
	".trash": {},
	"0":      {},
}

// ExperimentName reads the experiment name from a directory's meta file.
// Missing file or field yields the empty string.
func ExperimentName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "meta.yaml"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if after, ok := strings.CutPrefix(line, "name:"); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// matchesAny reports whether a name matches one of the glob patterns. An
// empty pattern list matches everything.
func matchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// ExperimentDirs lists the experiment directories under a tracking root
// whose names match the given glob patterns.
func ExperimentDirs(root string, patterns ...string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking root: %w", err)
	}

	var out []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, skip := skippedDirs[entry.Name()]; skip {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		name := ExperimentName(dir)
		if name == "" {
			continue
		}
		if matchesAny(name, patterns) {
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out, nil
}

// RunDirs lists the run directories of the matching experiments: every
// subdirectory holding an artifacts/ directory.
func RunDirs(root string, patterns ...string) ([]string, error) {
	experiments, err := ExperimentDirs(root, patterns...)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, exp := range experiments {
		entries, err := os.ReadDir(exp)
		if err != nil {
			return nil, fmt.Errorf("failed to read experiment dir %s: %w", exp, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(exp, entry.Name())
			if info, err := os.Stat(filepath.Join(dir, "artifacts")); err == nil && info.IsDir() {
				out = append(out, dir)
			}
		}
	}
	return out, nil
}
