package inject

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/imaging"
)

type fakePresenter struct {
	mu      sync.Mutex
	visible bool
	hides   int
}

func (p *fakePresenter) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *fakePresenter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.hides++
}

func (p *fakePresenter) ShowAt(x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = true
}

func (p *fakePresenter) Hides() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hides
}

type fakeFocus struct{ calls atomic.Int32 }

func (f *fakeFocus) FocusLastForeground() { f.calls.Add(1) }

type fakeKeys struct {
	calls atomic.Int32
	err   error
}

func (k *fakeKeys) SendPaste() error {
	k.calls.Add(1)
	return k.err
}

func newTestInjector(t *testing.T, backend clip.Backend, opts ...Option) (*Injector, *fakePresenter, *fakeFocus, *fakeKeys) {
	t.Helper()
	p := &fakePresenter{visible: true}
	f := &fakeFocus{}
	k := &fakeKeys{}
	base := []Option{
		WithBackoff(time.Millisecond),
		WithSettle(0),
		WithTempDir(t.TempDir()),
	}
	return New(backend, p, f, k, append(base, opts...)...), p, f, k
}

func testDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	pngBytes, err := imaging.EncodePNG(img)
	require.NoError(t, err)
	return imaging.EncodeDataURI(pngBytes)
}

func TestPasteText_HappyPath(t *testing.T) {
	mem := clip.NewMemory()
	inj, p, f, k := newTestInjector(t, mem)

	require.NoError(t, inj.PasteText("hello"))

	assert.Equal(t, "hello", mem.ReadText())
	assert.Equal(t, 1, p.Hides())
	assert.EqualValues(t, 1, f.calls.Load())
	assert.EqualValues(t, 1, k.calls.Load())
}

func TestPasteText_RetrySucceedsOnFinalAttempt(t *testing.T) {
	mem := clip.NewMemory()
	mem.FailNextWrites(7)
	inj, _, _, k := newTestInjector(t, mem)

	require.NoError(t, inj.PasteText("eventually"))

	assert.Equal(t, "eventually", mem.ReadText())
	assert.Equal(t, 8, mem.Writes())
	assert.EqualValues(t, 1, k.calls.Load())
}

func TestPasteText_RetryExhaustionSurfacesError(t *testing.T) {
	mem := clip.NewMemory()
	mem.FailNextWrites(8)
	inj, _, f, k := newTestInjector(t, mem)

	err := inj.PasteText("never")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 8 attempts")

	// No focus handoff or keystroke when the clipboard never took the value.
	assert.EqualValues(t, 0, f.calls.Load())
	assert.EqualValues(t, 0, k.calls.Load())
}

func TestPasteText_SecondPasteIndependent(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, _, k := newTestInjector(t, mem)

	require.NoError(t, inj.PasteText("one"))
	require.NoError(t, inj.PasteText("two"))

	assert.Equal(t, "two", mem.ReadText())
	assert.EqualValues(t, 2, k.calls.Load())
}

func TestPasteImage_WritesDecodedPNG(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, f, k := newTestInjector(t, mem)

	require.NoError(t, inj.PasteImage(testDataURI(t)))

	img, err := imaging.Decode(mem.ReadImage())
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.EqualValues(t, 1, f.calls.Load())
	assert.EqualValues(t, 1, k.calls.Load())
}

func TestPasteImage_DecodeErrorNotRetried(t *testing.T) {
	mem := clip.NewMemory()
	inj, p, _, k := newTestInjector(t, mem)

	err := inj.PasteImage("data:image/png;base64,!!!not-base64!!!")
	require.Error(t, err)

	// A malformed payload fails before the protocol starts.
	assert.Equal(t, 0, mem.Writes())
	assert.Equal(t, 0, p.Hides())
	assert.EqualValues(t, 0, k.calls.Load())
}

func TestPasteImage_KeystrokeErrorSurfaces(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, _, k := newTestInjector(t, mem)
	k.err = assert.AnError

	err := inj.PasteImage(testDataURI(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSetText_NoKeystroke(t *testing.T) {
	mem := clip.NewMemory()
	inj, p, f, k := newTestInjector(t, mem)

	require.NoError(t, inj.SetText("plain"))

	assert.Equal(t, "plain", mem.ReadText())
	assert.Equal(t, 0, p.Hides())
	assert.EqualValues(t, 0, f.calls.Load())
	assert.EqualValues(t, 0, k.calls.Load())
}

func TestSetImage_StagesFileDrop(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, _, k := newTestInjector(t, mem)

	require.NoError(t, inj.SetImage(testDataURI(t)))

	files := mem.Files()
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "clipd_clipboard_")
	assert.EqualValues(t, 0, k.calls.Load())
}

type noFileDropBackend struct{ *clip.Memory }

func (noFileDropBackend) WriteFiles([]string) error { return clip.ErrUnsupported }

func TestSetImage_FallsBackToBitmapWrite(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, _, _ := newTestInjector(t, noFileDropBackend{mem})

	require.NoError(t, inj.SetImage(testDataURI(t)))

	img, err := imaging.Decode(mem.ReadImage())
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestPaste_SingleFlight(t *testing.T) {
	mem := clip.NewMemory()
	inj, _, _, k := newTestInjector(t, mem, WithSettle(5*time.Millisecond))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, inj.PasteText("racing"))
		}()
	}
	wg.Wait()

	// Serialized: every paste completed its own write and keystroke.
	assert.Equal(t, 4, mem.Writes())
	assert.EqualValues(t, 4, k.calls.Load())
}
