package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// normalize forces a full decode/encode round trip of the upload. The
// round trip rejects malformed files that header sniffing would let
// through and flattens EXIF-rotated or palette images into a consistent
// pixel buffer. The image is re-encoded in its detected format; when the
// format is unknown or has no encoder (webp), it is re-encoded as PNG.
func (s *Service) normalize(upload []byte) ([]byte, string, error) {
	_, formatName, err := image.DecodeConfig(bytes.NewReader(upload))
	if err != nil {
		formatName = ""
	}

	img, err := imaging.Decode(bytes.NewReader(upload), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", ErrNotAnImage
	}

	format := imaging.PNG
	if f, err := imaging.FormatFromExtension(formatName); err == nil {
		format = f
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, format); err != nil {
		return nil, "", fmt.Errorf("service/normalize.go - failed to encode image as %s - %w", format, err)
	}

	return buf.Bytes(), formatName, nil
}
