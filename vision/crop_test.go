package vision

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietnguyen2358/findandseek/core"
)

// testImage creates a uniform RGBA image for cropping tests.
func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 120, B: 140, A: 255})
		}
	}
	return img
}

// testFrameJPEG encodes a test image as JPEG bytes.
func testFrameJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, testImage(width, height), imaging.JPEG))
	return buf.Bytes()
}

func TestCropPerson(t *testing.T) {
	img := testImage(100, 100)

	t.Run("centered box includes padding", func(t *testing.T) {
		crop, err := cropPerson(img, core.BBox{X: 0.4, Y: 0.4, W: 0.2, H: 0.2})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(crop))
		require.NoError(t, err)

		// 20px box plus 10% padding on each side
		assert.Equal(t, 24, decoded.Bounds().Dx())
		assert.Equal(t, 24, decoded.Bounds().Dy())
	})

	t.Run("full frame box clamps to bounds", func(t *testing.T) {
		crop, err := cropPerson(img, core.BBox{X: 0, Y: 0, W: 1, H: 1})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(crop))
		require.NoError(t, err)

		assert.Equal(t, 100, decoded.Bounds().Dx())
		assert.Equal(t, 100, decoded.Bounds().Dy())
	})

	t.Run("edge box clamps padding", func(t *testing.T) {
		crop, err := cropPerson(img, core.BBox{X: 0.9, Y: 0.9, W: 0.1, H: 0.1})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(crop))
		require.NoError(t, err)

		assert.LessOrEqual(t, decoded.Bounds().Dx(), 12)
		assert.LessOrEqual(t, decoded.Bounds().Dy(), 12)
	})

	t.Run("degenerate box fails", func(t *testing.T) {
		_, err := cropPerson(img, core.BBox{X: 0.5, Y: 0.5, W: 0, H: 0})
		assert.Error(t, err)
	})
}

func TestDecodeFrame(t *testing.T) {
	t.Run("valid JPEG", func(t *testing.T) {
		img, err := decodeFrame(testFrameJPEG(t, 64, 48))
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
		assert.Equal(t, 48, img.Bounds().Dy())
	})

	t.Run("garbage bytes", func(t *testing.T) {
		_, err := decodeFrame([]byte("not an image"))
		assert.True(t, errors.Is(err, ErrFrameDecode))
	})
}
