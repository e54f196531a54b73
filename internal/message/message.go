// Package message defines the clipd IPC protocol.
//
// All messages are newline-delimited JSON. Image content travels as a
// base64 data URI (data:image/png;base64,...) so binary payloads are safe to
// embed in JSON strings. Each message is exactly one line: <json>\n
//
// The presentation layer (and the CLI sub-commands) send command messages and
// receive a single reply, except SUBSCRIBE which turns the connection into a
// one-way event stream.
package message

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	// Commands (client → agent).
	TypeSetText       Type = "SET_TEXT"
	TypeSetImage      Type = "SET_IMAGE"
	TypePasteText     Type = "PASTE_TEXT"
	TypePasteImage    Type = "PASTE_IMAGE"
	TypeSaveImage     Type = "SAVE_IMAGE"
	TypeToggle        Type = "TOGGLE"
	TypeSubscribe     Type = "SUBSCRIBE"
	TypeStatus        Type = "STATUS"
	TypeFavoritesLoad Type = "FAVORITES_LOAD"
	TypeFavoritesSave Type = "FAVORITES_SAVE"

	// Replies and events (agent → client).
	TypeOK             Type = "OK"
	TypeError          Type = "ERROR"
	TypeEvent          Type = "EVENT"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeFavorites      Type = "FAVORITES"
)

// Kind classifies clipboard content.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Stats carries agent counters for STATUS_RESPONSE.
type Stats struct {
	Version     string    `json:"version"`
	Backend     string    `json:"backend"`
	StartedAt   time.Time `json:"started_at"`
	TextEvents  int64     `json:"text_events"`
	ImageEvents int64     `json:"image_events"`
	Pastes      int64     `json:"pastes"`
	Saves       int64     `json:"saves"`
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// EVENT and content-carrying commands. For text, Content is the raw
	// string; for images it is a base64 data URI.
	Kind    Kind   `json:"kind,omitempty"`
	Content string `json:"content,omitempty"`

	// OK reply to SAVE_IMAGE — absolute path of the written file.
	Path string `json:"path,omitempty"`

	// TOGGLE events pushed to subscribers. Content is "show" or "hide";
	// X and Y carry the pointer position for "show".
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	// FAVORITES / FAVORITES_SAVE — the persisted document, passed through
	// opaque. The agent stores and returns it without interpreting it.
	Favorites json.RawMessage `json:"favorites,omitempty"`

	// STATUS_RESPONSE
	Stats *Stats `json:"stats,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// NewTextEvent builds a clipboard-change event for plain text.
func NewTextEvent(text string) *Message {
	return &Message{Type: TypeEvent, Kind: KindText, Content: text}
}

// NewImageEvent builds a clipboard-change event for an image data URI.
func NewImageEvent(dataURI string) *Message {
	return &Message{Type: TypeEvent, Kind: KindImage, Content: dataURI}
}

// OK returns the bare success reply.
func OK() *Message { return &Message{Type: TypeOK} }

// Errorf returns an ERROR reply with a formatted description.
func Errorf(format string, args ...any) *Message {
	return &Message{Type: TypeError, Error: fmt.Sprintf(format, args...)}
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// Err converts an ERROR reply into a Go error, or nil for any other type.
func (m *Message) Err() error {
	if m.Type == TypeError {
		return fmt.Errorf("agent: %s", m.Error)
	}
	return nil
}
