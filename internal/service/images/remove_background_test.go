package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type removerFunc func(ctx context.Context, image []byte) ([]byte, error)

func (f removerFunc) Remove(ctx context.Context, image []byte) ([]byte, error) {
	return f(ctx, image)
}

func encodeImage(t *testing.T, format imaging.Format) []byte {
	t.Helper()

	img := imaging.New(24, 24, color.NRGBA{R: 255, A: 255})
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, img, format))

	return buf.Bytes()
}

func TestService_Normalize(t *testing.T) {
	tests := []struct {
		name           string
		format         imaging.Format
		expectedFormat string
	}{
		{name: "png", format: imaging.PNG, expectedFormat: "png"},
		{name: "jpeg", format: imaging.JPEG, expectedFormat: "jpeg"},
		{name: "gif", format: imaging.GIF, expectedFormat: "gif"},
		{name: "bmp", format: imaging.BMP, expectedFormat: "bmp"},
	}

	s := NewService(nil, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := encodeImage(t, tt.format)

			normalized, formatName, err := s.normalize(upload)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedFormat, formatName)
			assert.NotEmpty(t, normalized)

			_, detected, err := image.DecodeConfig(bytes.NewReader(normalized))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFormat, detected)
		})
	}
}

func TestService_Normalize_NotAnImage(t *testing.T) {
	tests := []struct {
		name   string
		upload []byte
	}{
		{name: "plain text", upload: []byte("definitely not an image")},
		{name: "truncated png", upload: encodeImage(t, imaging.PNG)[:20]},
		{name: "empty", upload: nil},
	}

	s := NewService(nil, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.normalize(tt.upload)

			assert.ErrorIs(t, err, ErrNotAnImage)
		})
	}
}

func TestService_Normalize_NoEncoderFallsBackToPNG(t *testing.T) {
	// a format the image registry can decode but FormatFromExtension
	// has no encoder for, the same path webp uploads take
	const magic = "IMGX"
	image.RegisterFormat("imgx", magic,
		func(io.Reader) (image.Image, error) {
			return imaging.New(8, 8, color.NRGBA{A: 255}), nil
		},
		func(io.Reader) (image.Config, error) {
			return image.Config{ColorModel: color.NRGBAModel, Width: 8, Height: 8}, nil
		})

	s := NewService(nil, 0, 0)

	normalized, formatName, err := s.normalize([]byte(magic))

	require.NoError(t, err)
	assert.Equal(t, "imgx", formatName)

	_, detected, err := image.DecodeConfig(bytes.NewReader(normalized))
	require.NoError(t, err)
	assert.Equal(t, "png", detected)
}

func TestService_RemoveBackground(t *testing.T) {
	result := []byte("engine output")

	var got []byte
	engine := removerFunc(func(_ context.Context, image []byte) ([]byte, error) {
		got = image
		return result, nil
	})

	s := NewService(engine, time.Second, 2)

	out, err := s.RemoveBackground(context.Background(), encodeImage(t, imaging.JPEG))

	require.NoError(t, err)
	assert.Equal(t, result, out)
	// the engine must see re-encoded bytes in the original format
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, got[:2])
}

func TestService_RemoveBackground_NotAnImage(t *testing.T) {
	calls := 0
	engine := removerFunc(func(_ context.Context, _ []byte) ([]byte, error) {
		calls++
		return nil, nil
	})

	s := NewService(engine, time.Second, 0)

	_, err := s.RemoveBackground(context.Background(), []byte("garbage"))

	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Equal(t, 0, calls)
}

func TestService_RemoveBackground_EngineFailure(t *testing.T) {
	engine := removerFunc(func(_ context.Context, _ []byte) ([]byte, error) {
		return nil, errors.New("model exploded")
	})

	s := NewService(engine, time.Second, 0)

	_, err := s.RemoveBackground(context.Background(), encodeImage(t, imaging.PNG))

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Contains(t, procErr.Details, "model exploded")
	assert.NotErrorIs(t, err, ErrNotAnImage)
}

func TestService_RemoveBackground_EngineTimeout(t *testing.T) {
	engine := removerFunc(func(ctx context.Context, _ []byte) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	s := NewService(engine, 20*time.Millisecond, 0)

	_, err := s.RemoveBackground(context.Background(), encodeImage(t, imaging.PNG))

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Contains(t, procErr.Details, "deadline")
}
