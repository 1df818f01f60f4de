package images

import (
	"context"
	"errors"
)

// RemoveBackground runs the whole pipeline for one upload: decode and
// format-preserving re-encode, then a single synchronous engine call.
// Exactly two failure kinds can come back: ErrNotAnImage for undecodable
// uploads and *ProcessingError for everything the engine (or re-encode)
// got wrong.
func (s *Service) RemoveBackground(ctx context.Context, upload []byte) ([]byte, error) {
	normalized, _, err := s.normalize(upload)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			return nil, ErrNotAnImage
		}
		return nil, &ProcessingError{Details: err.Error()}
	}

	if s.sem != nil {
		select {
		case s.sem <- struct{}{}:
			defer func() { <-s.sem }()
		case <-ctx.Done():
			return nil, &ProcessingError{Details: ctx.Err().Error()}
		}
	}

	if s.engineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.engineTimeout)
		defer cancel()
	}

	result, err := s.engine.Remove(ctx, normalized)
	if err != nil {
		return nil, &ProcessingError{Details: err.Error()}
	}

	return result, nil
}
