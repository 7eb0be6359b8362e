package storage

import (
	"bytes"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ProbeDimensions reads the pixel width and height from encoded image bytes.
// Bytes that cannot be decoded yield (nil, nil); the caller treats missing
// dimensions as non-fatal.
func ProbeDimensions(data []byte) (*int, *int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	w, h := cfg.Width, cfg.Height
	return &w, &h
}
