package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	MaxPhotoBytes = 8 << 20
	maxPixels     = 40_000_000

	ContentTypeWebP = "image/webp"
)

// ProcessPhoto decodes a JPEG, PNG or WebP upload, shrinks it to maxWidth
// keeping the aspect ratio, and re-encodes it as WebP.
func ProcessPhoto(data []byte, maxWidth int) ([]byte, error) {
	if len(data) > MaxPhotoBytes {
		return nil, httperr.ErrValidation("photo_too_large")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_photo")
	}
	if format != "jpeg" && format != "png" && format != "webp" {
		return nil, httperr.ErrValidation("invalid_photo")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, httperr.ErrValidation("invalid_photo")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_photo")
	}

	img := Downscale(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
