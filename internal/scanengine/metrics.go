package scanengine

import "time"

// Stats counts what a scan has done so far.
type Stats struct {
	// Found is the number of paths the walk produced.
	Found int `json:"found" yaml:"found"`

	// Skipped files did not match the include filter and were not probed.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Probed files had their metadata read.
	Probed int `json:"probed" yaml:"probed"`

	// ProbeFailures counts files that could not be opened or decoded.
	ProbeFailures int `json:"probe_failures" yaml:"probe_failures"`

	// Unsupported files have an extension the prober does not accept.
	Unsupported int `json:"unsupported" yaml:"unsupported"`

	// WalkErrors is the number of errors the walker recorded.
	WalkErrors int `json:"walk_errors" yaml:"walk_errors"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// FilesPerSecond is the rate at which the walk produced paths.
func (s Stats) FilesPerSecond() float64 {
	seconds := s.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}

	return float64(s.Found) / seconds
}

// Failed reports whether anything went wrong: walk errors or files that
// could not be read. Unsupported formats do not count.
func (s Stats) Failed() bool {
	return s.WalkErrors > 0 || s.ProbeFailures > 0
}
