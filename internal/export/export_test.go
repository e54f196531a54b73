package export

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipd.dev/clipd/internal/imaging"
)

type fixedResolver struct {
	dir string
	ok  bool
}

func (r fixedResolver) Resolve(uintptr) (string, bool) { return r.dir, r.ok }

func testImageURI(t *testing.T) (string, color.RGBA) {
	t.Helper()
	px := color.RGBA{R: 10, G: 200, B: 30, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 1, px)
	pngBytes, err := imaging.EncodePNG(img)
	require.NoError(t, err)
	return imaging.EncodeDataURI(pngBytes), px
}

func TestSave_ResolvedFolderWins(t *testing.T) {
	dir := t.TempDir()
	s := New(fixedResolver{dir: dir, ok: true}, "ignored")
	uri, px := testImageURI(t)

	path, err := s.Save(uri, 42)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Subdir), filepath.Dir(path))

	// Round trip: pixels survive the decode/re-encode.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := imaging.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, px, img.RGBAAt(1, 1))
}

func TestSave_UnresolvedFallsBackToOutDir(t *testing.T) {
	out := t.TempDir()
	s := New(fixedResolver{}, out)
	uri, _ := testImageURI(t)

	path, err := s.Save(uri, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, Subdir), filepath.Dir(path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSave_FilenameCarriesTimestamp(t *testing.T) {
	out := t.TempDir()
	s := New(fixedResolver{}, out)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	uri, _ := testImageURI(t)

	path, err := s.Save(uri, 0)
	require.NoError(t, err)
	assert.Equal(t, "clipd_1700000000000.png", filepath.Base(path))
}

func TestSave_BadPayloadWritesNothing(t *testing.T) {
	out := t.TempDir()
	s := New(fixedResolver{}, out)

	_, err := s.Save("data:image/png;base64,%%%", 0)
	require.Error(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
