package run

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// metaFile is the line-oriented metadata file inside a run directory that
// names the job the run belongs to.
const metaFile = "meta.yaml"

// Info holds the identity of a run: its directory, its ID, and the job name
// recorded when the run was created. ID and job name are derived lazily from
// the directory and cached.
type Info struct {
	// Dir is the run's persisted directory. It is owned by the tracking
	// layer and never modified here.
	Dir string

	jobNameOnce sync.Once
	jobName     string
}

// NewInfo returns the identity for a run directory.
func NewInfo(dir string) *Info {
	return &Info{Dir: dir}
}

// RunID is the run identifier, the base name of the run directory.
func (i *Info) RunID() string {
	return filepath.Base(i.Dir)
}

// JobName is the name of the job that produced this run, read from the
// run's metadata file. A missing file or missing field yields the empty
// string, never an error.
func (i *Info) JobName() string {
	i.jobNameOnce.Do(func() {
		i.jobName = readJobName(i.Dir)
	})
	return i.jobName
}

// ToMap returns the info fields keyed the way attribute resolution addresses
// them.
func (i *Info) ToMap() map[string]any {
	return map[string]any{
		"run_id":   i.RunID(),
		"run_dir":  i.Dir,
		"job_name": i.JobName(),
	}
}

// readJobName extracts the "name:" field from a run's metadata file. The
// parser tolerates a missing file, a malformed document, and a missing
// field by returning the empty string.
func readJobName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
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
