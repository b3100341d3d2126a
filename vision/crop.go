package vision

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/vietnguyen2358/findandseek/core"
)

// cropPadding is the fraction of box width and height added on each side of
// a person crop so the attribute model sees surrounding context.
const cropPadding = 0.1

// decodeFrame decodes raw frame bytes into an image.
func decodeFrame(frame []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrameDecode, err)
	}
	return img, nil
}

// cropPerson extracts a padded crop of the frame around a normalized
// bounding box and re-encodes it as JPEG. Padding is clamped to the frame
// bounds so the crop never exceeds the image.
func cropPerson(img image.Image, bbox core.BBox) ([]byte, error) {
	bounds := img.Bounds()
	width := float32(bounds.Dx())
	height := float32(bounds.Dy())

	bbox = bbox.Clamp()

	padX := bbox.W * cropPadding
	padY := bbox.H * cropPadding

	x0 := int((bbox.X - padX) * width)
	y0 := int((bbox.Y - padY) * height)
	x1 := int((bbox.X + bbox.W + padX) * width)
	y1 := int((bbox.Y + bbox.H + padY) * height)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > bounds.Dx() {
		x1 = bounds.Dx()
	}
	if y1 > bounds.Dy() {
		y1 = bounds.Dy()
	}
	if x1 <= x0 || y1 <= y0 {
		return nil, fmt.Errorf("degenerate crop region [%d,%d,%d,%d]", x0, y0, x1, y1)
	}

	rect := image.Rect(x0+bounds.Min.X, y0+bounds.Min.Y, x1+bounds.Min.X, y1+bounds.Min.Y)
	crop := imaging.Crop(img, rect)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, crop, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
