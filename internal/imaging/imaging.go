// Package imaging holds the image plumbing shared by the monitor, the paste
// injector, and the save-image command: decoding clipboard payloads, PNG
// re-encoding, base64 data URIs, and the cheap change fingerprint.
package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"image/draw"
	"image/png"
	"strings"

	// Pasted payloads may arrive as JPEG data URIs from the presentation layer.
	_ "image/jpeg"
)

const pngPrefix = "data:image/png;base64,"

// Fingerprint derives a cheap change-detection value from a raster image:
// width, height, byte length and three sampled bytes (first, middle, last)
// folded through FNV-1a. It is deliberately not a full content hash — two
// images with identical dimensions and coinciding samples collide. That
// trade keeps the 500 ms poll loop cheap for large screenshots.
func Fingerprint(width, height int, raw []byte) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(width))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(height))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(raw)))
	_, _ = h.Write(buf[:])

	if len(raw) > 0 {
		_, _ = h.Write([]byte{raw[0], raw[len(raw)/2], raw[len(raw)-1]})
	}
	return h.Sum64()
}

// FingerprintImage fingerprints an *image.RGBA by its bounds and pixel buffer.
func FingerprintImage(img *image.RGBA) uint64 {
	b := img.Bounds()
	return Fingerprint(b.Dx(), b.Dy(), img.Pix)
}

// ToRGBA converts any decoded image to RGBA, copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// Decode parses PNG or JPEG bytes into an RGBA image, validating that the
// result has usable dimensions.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode image: empty %dx%d frame", b.Dx(), b.Dy())
	}
	return ToRGBA(img), nil
}

// EncodePNG serialises an image into a self-contained PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURI wraps PNG bytes in a base64 data URI.
func EncodeDataURI(pngBytes []byte) string {
	return pngPrefix + base64.StdEncoding.EncodeToString(pngBytes)
}

// DecodeDataURI extracts the raw payload bytes from a data URI. Only the
// base64 part after the comma matters; the media type is not enforced, since
// Decode sniffs the actual container.
func DecodeDataURI(uri string) ([]byte, error) {
	_, b64, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// DecodeDataURIImage decodes a data URI straight to an RGBA image.
func DecodeDataURIImage(uri string) (*image.RGBA, error) {
	data, err := DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
