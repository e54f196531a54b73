package monitor

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipd.dev/clipd/internal/broker"
	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/imaging"
	"go.clipd.dev/clipd/internal/snapshot"
)

type sink struct{ got []broker.Update }

func (s *sink) ID() string            { return "test-sink" }
func (s *sink) Send(u broker.Update)  { s.got = append(s.got, u) }
func (s *sink) last() *broker.Update {
	if len(s.got) == 0 {
		return nil
	}
	return &s.got[len(s.got)-1]
}

func newHarness() (*Monitor, *clip.Memory, *sink) {
	mem := clip.NewMemory()
	b := broker.New()
	s := &sink{}
	b.Subscribe(s)
	return New(mem, b), mem, s
}

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	out, err := imaging.EncodePNG(img)
	require.NoError(t, err)
	return out
}

func TestTick_EmitsTextOncePerChange(t *testing.T) {
	m, mem, s := newHarness()

	mem.SetText("hello")
	m.tick()
	m.tick()
	m.tick()

	require.Len(t, s.got, 1)
	assert.Equal(t, snapshot.KindText, s.got[0].Kind)
	assert.Equal(t, "hello", s.got[0].Content)

	mem.SetText("world")
	m.tick()
	require.Len(t, s.got, 2)
	assert.Equal(t, "world", s.got[1].Content)
}

func TestTick_EmptyClipboardEmitsNothing(t *testing.T) {
	m, _, s := newHarness()
	m.tick()
	assert.Empty(t, s.got)
}

func TestTick_ImageEmittedAsDataURI(t *testing.T) {
	m, mem, s := newHarness()

	mem.SetImage(pngBytes(t, 8, 8, color.RGBA{R: 200, A: 255}))
	m.tick()
	m.tick()

	require.Len(t, s.got, 1)
	assert.Equal(t, snapshot.KindImage, s.got[0].Kind)

	img, err := imaging.DecodeDataURIImage(s.got[0].Content)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestTick_TextTakesPriorityOverImage(t *testing.T) {
	m, mem, s := newHarness()

	mem.SetImage(pngBytes(t, 4, 4, color.RGBA{B: 255, A: 255}))
	m.tick()
	require.Equal(t, snapshot.KindImage, s.last().Kind)

	mem.SetText("over the image")
	m.tick()
	require.Equal(t, snapshot.KindText, s.last().Kind)
	assert.Len(t, s.got, 2)
}

func TestTick_SameImageDifferentCopyNotReEmitted(t *testing.T) {
	m, mem, s := newHarness()

	png := pngBytes(t, 6, 6, color.RGBA{G: 77, A: 255})
	mem.SetImage(png)
	m.tick()
	mem.SetImage(png) // fresh copy, identical fingerprint
	m.tick()

	assert.Len(t, s.got, 1)
}

func TestTick_UndecodableImageSkipped(t *testing.T) {
	m, mem, s := newHarness()
	mem.SetImage([]byte("not a png"))
	m.tick()
	assert.Empty(t, s.got)
}

func TestRun_SeedsImmediately(t *testing.T) {
	mem := clip.NewMemory()
	b := broker.New()
	s := &sink{}
	b.Subscribe(s)
	mem.SetText("pre-existing")

	// A long interval proves the first emission comes from the seed pass,
	// not from a ticker fire.
	m := New(mem, b, WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return b.Latest() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "pre-existing", b.Latest().Content)

	cancel()
	<-done
}
