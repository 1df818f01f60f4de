package images

import (
	"context"

	"github.com/go-playground/validator/v10"
)

type Service interface {
	RemoveBackground(context.Context, []byte) ([]byte, error)
}

type Handler struct {
	service       Service
	validator     *validator.Validate
	maxUploadSize int64
}

func NewHandler(service Service, validator *validator.Validate, maxUploadSize int64) *Handler {
	return &Handler{
		service:       service,
		validator:     validator,
		maxUploadSize: maxUploadSize,
	}
}
