package utils

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// ProcessProfileImage decodes r, shrinks it so neither side exceeds maxSide and
// re-encodes it. PNG stays PNG, everything else becomes JPEG. The returned
// extension matches the encoding.
func ProcessProfileImage(r io.Reader, maxSide uint) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", ErrUnsupportedImage
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > maxSide || uint(bounds.Dy()) > maxSide {
		img = resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	ext := ".jpg"
	if format == "png" {
		ext = ".png"
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ext, nil
}
