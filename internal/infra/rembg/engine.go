package rembg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const fileField = "file"

// Engine talks to a rembg-style inference server over HTTP. The server
// takes an encoded raster image and answers with a PNG whose background
// pixels are transparent.
type Engine struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Engine {
	return &Engine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *Engine) Remove(ctx context.Context, image []byte) ([]byte, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fileField, "image")
	if err != nil {
		return nil, fmt.Errorf("infra/rembg - failed to create form file - %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("infra/rembg - failed to write form file - %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("infra/rembg - failed to close multipart writer - %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/remove", body)
	if err != nil {
		return nil, fmt.Errorf("infra/rembg - failed to build request - %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("infra/rembg - request failed - %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("infra/rembg - failed to read response body - %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("infra/rembg - engine returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	return out, nil
}

// Ping checks the engine is reachable. Used once at startup; request
// failures here mean the service cannot do any useful work.
func (e *Engine) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("infra/rembg - failed to build ping request - %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("infra/rembg - ping failed - %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("infra/rembg - engine is unhealthy, status %d", resp.StatusCode)
	}

	return nil
}
