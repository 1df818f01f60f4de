package images

import (
	"context"
	"time"
)

type Remover interface {
	Remove(ctx context.Context, image []byte) ([]byte, error)
}

type Service struct {
	engine        Remover
	engineTimeout time.Duration
	sem           chan struct{}
}

// NewService builds the pipeline service. engineTimeout bounds a single
// engine call; maxConcurrent bounds how many engine calls may run at once
// (0 disables the limit).
func NewService(engine Remover, engineTimeout time.Duration, maxConcurrent int) *Service {
	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}

	return &Service{
		engine:        engine,
		engineTimeout: engineTimeout,
		sem:           sem,
	}
}
