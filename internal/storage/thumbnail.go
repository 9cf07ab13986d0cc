package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrNoThumbnail is returned for MIME types that have no thumbnail
// renderer. Extracting video frames needs an external decoder, so video
// files simply go without.
var ErrNoThumbnail = errors.New("no thumbnail for mime type")

const thumbBound = 400

// audio files get a flat placeholder tile
var audioPlaceholder = color.NRGBA{R: 44, G: 62, B: 80, A: 255}

// Thumbnail renders a JPEG thumbnail for the given payload, fit within
// 400x400.
func Thumbnail(data []byte, mimeType string) ([]byte, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return encodeJPEG(imaging.Fit(img, thumbBound, thumbBound, imaging.Lanczos), 85)
	case strings.HasPrefix(mimeType, "audio/"):
		return encodeJPEG(imaging.New(thumbBound, thumbBound, audioPlaceholder), 80)
	default:
		return nil, ErrNoThumbnail
	}
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
