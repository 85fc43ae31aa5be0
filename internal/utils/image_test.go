package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestProcessProfileImageShrinks(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 600))
	src.Set(10, 10, color.RGBA{255, 0, 0, 255})
	var in bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, ext, err := ProcessProfileImage(&in, 300)
	if err != nil {
		t.Fatalf("ProcessProfileImage: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("ext = %s", ext)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width > 300 || cfg.Height > 300 {
		t.Fatalf("not resized: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProcessProfileImageRejectsGarbage(t *testing.T) {
	if _, _, err := ProcessProfileImage(strings.NewReader("not an image"), 100); err != ErrUnsupportedImage {
		t.Fatalf("err = %v", err)
	}
}
