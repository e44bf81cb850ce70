package main

import "fmt"

// MissingInputFile is returned when a required --topology/--workload flag
// names a file that cannot be opened, so the error message tells "file not
// found" apart from any other I/O or parse failure. runApp exits with 1 for
// this and every other error alike.
type MissingInputFile struct {
	Flag string
	Path string
}

func (e MissingInputFile) Error() string {
	return fmt.Sprintf("pulsenet: required input %q (--%s) could not be opened", e.Path, e.Flag)
}

// UnknownStrategy is returned when a --phase1/--phase2/--scenario flag
// names a value outside the selector's fixed set.
type UnknownStrategy struct {
	Flag  string
	Value string
}

func (e UnknownStrategy) Error() string {
	return fmt.Sprintf("pulsenet: unrecognized value %q for --%s", e.Value, e.Flag)
}
