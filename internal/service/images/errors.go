package images

import "errors"

// ErrNotAnImage means the uploaded bytes could not be decoded as a raster
// image. It is a client problem, not an engine failure.
var ErrNotAnImage = errors.New("uploaded file is not a decodable image")

// ProcessingError wraps any failure of the removal engine or of the
// re-encode step. Details is safe to surface to the client for diagnostics.
type ProcessingError struct {
	Details string
}

func (e *ProcessingError) Error() string {
	return "failed to process image: " + e.Details
}
