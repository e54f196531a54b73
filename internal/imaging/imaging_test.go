package imaging

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFingerprint_ChangesWithDimensions(t *testing.T) {
	a := FingerprintImage(testImage(4, 4, color.RGBA{R: 255, A: 255}))
	b := FingerprintImage(testImage(4, 5, color.RGBA{R: 255, A: 255}))
	assert.NotEqual(t, a, b)
}

func TestFingerprint_SampledCollision(t *testing.T) {
	// Same dimensions, same first/middle/last byte, different interior:
	// treated as the same image. Documented partial-sample limitation.
	a := testImage(4, 4, color.RGBA{R: 10, G: 10, B: 10, A: 10})
	b := testImage(4, 4, color.RGBA{R: 10, G: 10, B: 10, A: 10})
	b.SetRGBA(1, 0, color.RGBA{R: 99, G: 99, B: 99, A: 10}) // interior only

	// Keep the sampled positions identical.
	pix := b.Pix
	pix[0] = a.Pix[0]
	pix[len(pix)/2] = a.Pix[len(pix)/2]
	pix[len(pix)-1] = a.Pix[len(pix)-1]

	assert.Equal(t, FingerprintImage(a), FingerprintImage(b))
}

func TestFingerprint_EmptyRaster(t *testing.T) {
	// No sampled bytes: still deterministic, no panic.
	assert.Equal(t, Fingerprint(0, 0, nil), Fingerprint(0, 0, nil))
}

func TestDataURI_RoundTrip(t *testing.T) {
	src := testImage(3, 2, color.RGBA{G: 128, A: 255})
	pngBytes, err := EncodePNG(src)
	require.NoError(t, err)

	uri := EncodeDataURI(pngBytes)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	got, err := DecodeDataURIImage(uri)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Equal(t, src.Pix, got.Pix)
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	_, err := DecodeDataURI("no comma here")
	assert.ErrorContains(t, err, "invalid data URI")

	_, err = DecodeDataURI("data:image/png;base64,%%%")
	assert.ErrorContains(t, err, "base64")
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.Error(t, err)
}
