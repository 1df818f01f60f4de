package models

import "mime/multipart"

type RemoveBackgroundRequest struct {
	Image *multipart.FileHeader `form:"image" validate:"required"`
}

// FieldErrors maps a form field name to the list of messages explaining
// why it failed structural validation.
type FieldErrors map[string][]string

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
