package features

import "errors"

var (
	// ErrInvalidConfig reports an option outside its enumerated set, such as
	// an unknown bin type or a wavelet layer other than 1, 2 or 3.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument reports malformed input data, such as an image with
	// no pixels or a region outside the image.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegeneratePartition reports an image too small to be divided into
	// the requested grid without empty sections.
	ErrDegeneratePartition = errors.New("degenerate partition")
)
