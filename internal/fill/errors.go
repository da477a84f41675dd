package fill

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrEmptyRaster is returned when the input has no pixels.
	ErrEmptyRaster = errors.New("raster is nil or has zero area")
	// ErrSizeMismatch is returned when a layer or mask does not match the
	// raster it is applied to.
	ErrSizeMismatch = errors.New("size mismatch")
)

// ProcessError reports an unexpected failure of one pipeline stage. Anything
// the engine can recover from is reported as a Warning instead.
type ProcessError struct {
	Stage string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("fill %s: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func sizeError(want, got image.Rectangle) error {
	return fmt.Errorf("%w: want %dx%d, got %dx%d", ErrSizeMismatch, want.Dx(), want.Dy(), got.Dx(), got.Dy())
}
