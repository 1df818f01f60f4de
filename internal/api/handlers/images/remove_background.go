package images

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avraam311/bg-remover/internal/api/handlers"
	"github.com/avraam311/bg-remover/internal/models"
	"github.com/avraam311/bg-remover/internal/service/images"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

const imageField = "image"

func (h *Handler) RemoveBackground(c *ginext.Context) {
	var req models.RemoveBackgroundRequest
	if fileHeader, err := c.FormFile(imageField); err == nil {
		req.Image = fileHeader
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("no image file in request")
		handlers.FailFields(c.Writer, http.StatusBadRequest, models.FieldErrors{
			imageField: {"No file was submitted."},
		})
		return
	}

	if h.maxUploadSize > 0 && req.Image.Size > h.maxUploadSize {
		zlog.Logger.Warn().Int64("size", req.Image.Size).Msg("uploaded file too large")
		handlers.FailFields(c.Writer, http.StatusBadRequest, models.FieldErrors{
			imageField: {fmt.Sprintf("Ensure this file has at most %d bytes.", h.maxUploadSize)},
		})
		return
	}

	file, err := req.Image.Open()
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to open uploaded file")
		handlers.FailFields(c.Writer, http.StatusBadRequest, models.FieldErrors{
			imageField: {"Could not read the submitted file."},
		})
		return
	}
	defer file.Close()

	upload, err := io.ReadAll(file)
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to read uploaded file")
		handlers.FailFields(c.Writer, http.StatusBadRequest, models.FieldErrors{
			imageField: {"Could not read the submitted file."},
		})
		return
	}

	result, err := h.service.RemoveBackground(c.Request.Context(), upload)
	if err != nil {
		var procErr *images.ProcessingError
		switch {
		case errors.Is(err, images.ErrNotAnImage):
			zlog.Logger.Warn().Err(err).Msg("uploaded file is not a valid image")
			handlers.Fail(c.Writer, http.StatusBadRequest, "The uploaded file is not a valid image.")
		case errors.As(err, &procErr):
			zlog.Logger.Error().Err(err).Msg("failed to process image")
			handlers.FailDetails(c.Writer, http.StatusInternalServerError, "Failed to process image.", procErr.Details)
		default:
			zlog.Logger.Error().Err(err).Msg("failed to process image")
			handlers.FailDetails(c.Writer, http.StatusInternalServerError, "Failed to process image.", err.Error())
		}
		return
	}

	c.Data(http.StatusOK, "image/png", result)
}
