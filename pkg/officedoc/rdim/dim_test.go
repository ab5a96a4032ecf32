package rdim

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDimensions_PNGViaStdlibDecoder(t *testing.T) {
	data := encodePNG(t, 64, 32)
	w, h, ok := Dimensions("image/png", data)
	if !ok {
		t.Fatal("expected ok=true for a valid PNG")
	}
	if w != 64 || h != 32 {
		t.Errorf("Dimensions = (%d, %d), want (64, 32)", w, h)
	}
}

func TestDimensions_UnrecognizedDataIsNotOK(t *testing.T) {
	_, _, ok := Dimensions("image/png", []byte("not an image"))
	if ok {
		t.Error("expected ok=false for data that isn't a decodable image")
	}
}

func TestDimensions_UnknownMimeTypeNoCrash(t *testing.T) {
	_, _, ok := Dimensions("application/octet-stream", []byte{0x00, 0x01, 0x02})
	if ok {
		t.Error("expected ok=false for unrecognized binary data")
	}
}
