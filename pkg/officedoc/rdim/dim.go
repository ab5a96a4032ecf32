// Package rdim decodes pixel dimensions from embedded resource bytes when a
// document part doesn't declare a display size itself.
package rdim

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Dimensions returns the pixel width/height of data, trying the stdlib
// image package's registered decoders first (png/jpeg/gif) and falling back
// to golang.org/x/image's bmp/tiff decoders for formats Word/Excel/
// PowerPoint embed but the stdlib doesn't cover.
func Dimensions(mimeType string, data []byte) (width, height int, ok bool) {
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return cfg.Width, cfg.Height, true
	}
	switch mimeType {
	case "image/bmp":
		if cfg, err := bmp.DecodeConfig(bytes.NewReader(data)); err == nil {
			return cfg.Width, cfg.Height, true
		}
	case "image/tiff":
		if cfg, err := tiff.DecodeConfig(bytes.NewReader(data)); err == nil {
			return cfg.Width, cfg.Height, true
		}
	}
	return 0, 0, false
}
