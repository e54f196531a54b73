package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipd.dev/clipd/internal/snapshot"
)

type recorder struct {
	id   string
	got  []Update
	full bool
}

func (r *recorder) ID() string { return r.id }
func (r *recorder) Send(u Update) {
	if !r.full {
		r.got = append(r.got, u)
	}
}

func TestPublish_FansOut(t *testing.T) {
	b := New()
	r1 := &recorder{id: "one"}
	r2 := &recorder{id: "two"}
	b.Subscribe(r1)
	b.Subscribe(r2)

	b.Publish(Update{Kind: snapshot.KindText, Content: "hi"})

	require.Len(t, r1.got, 1)
	require.Len(t, r2.got, 1)
	assert.Equal(t, "hi", r1.got[0].Content)
}

func TestSubscribe_SeedsWithLatest(t *testing.T) {
	b := New()
	b.Publish(Update{Kind: snapshot.KindText, Content: "current"})

	r := &recorder{id: "late"}
	b.Subscribe(r)

	require.Len(t, r.got, 1)
	assert.Equal(t, "current", r.got[0].Content)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	b := New()
	r := &recorder{id: "one"}
	b.Subscribe(r)
	b.Unsubscribe(r)

	b.Publish(Update{Kind: snapshot.KindText, Content: "gone"})
	assert.Empty(t, r.got)
}

func TestCounts(t *testing.T) {
	b := New()
	b.Publish(Update{Kind: snapshot.KindText, Content: "a"})
	b.Publish(Update{Kind: snapshot.KindText, Content: "b"})
	b.Publish(Update{Kind: snapshot.KindImage, Content: "data:image/png;base64,AA=="})

	texts, images := b.Counts()
	assert.EqualValues(t, 2, texts)
	assert.EqualValues(t, 1, images)
}

func TestLatest_NilUntilFirstPublish(t *testing.T) {
	b := New()
	assert.Nil(t, b.Latest())
}
