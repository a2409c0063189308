package store

import "fmt"

// MissingOptionError is returned by Get when a key is absent and no
// default was supplied
type MissingOptionError struct {
	Key     string
	Section string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("option %q not found in section %q", e.Key, e.Section)
}

// ThresholdError is returned by Search when the threshold is outside
// the interval [0, 1]
type ThresholdError struct {
	Threshold float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold must be 0, 1 or any value between 0 and 1, got %v", e.Threshold)
}

// ModeError is returned by OpenStream when the supplied stream is not
// open for both reading and writing
type ModeError struct {
	Err error
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("stream must be readable and writable: %v", e.Err)
}

func (e *ModeError) Unwrap() error {
	return e.Err
}

// PathError is returned by Open when the parent directory of the
// resolved target path does not exist
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("directory of %q does not exist", e.Path)
}

// SectionNameError is returned when an operation attempts to create
// the reserved default-section name
type SectionNameError struct {
	Name string
}

func (e *SectionNameError) Error() string {
	return fmt.Sprintf("section name %q is reserved", e.Name)
}

// ClosedError is returned by any operation invoked after Close
type ClosedError struct {
	Op string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("%s: store is closed", e.Op)
}

// InterpolationError is returned when a value contains a malformed or
// unresolvable %(name)s reference
type InterpolationError struct {
	Key     string
	Section string
	Value   string
	Reason  string
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("bad interpolation in option %q of section %q (%s): %q",
		e.Key, e.Section, e.Reason, e.Value)
}
