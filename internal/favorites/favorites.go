// Package favorites persists pinned history entries. The store is a single
// JSON document owned by the UI process; the agent's job is durable
// load/save, not merging, so Save always replaces the whole document.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Folder groups pinned items.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is one pinned entry. Content holds the text or the image data URI.
type Item struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	FolderID  string `json:"folder_id,omitempty"`
}

// State is the full persisted document.
type State struct {
	Folders []Folder `json:"folders"`
	Items   []Item   `json:"items"`
}

// NewFolder returns a folder with a fresh identifier.
func NewFolder(name string) Folder {
	return Folder{ID: uuid.NewString(), Name: name}
}

// NewItem returns an item stamped with the current time.
func NewItem(kind, content, folderID string) Item {
	return Item{
		ID:        uuid.NewString(),
		Type:      kind,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
		FolderID:  folderID,
	}
}

// Store reads and writes the favorites document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store { return &Store{path: path} }

// DefaultPath places the document under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "clipd", "favorites.json")
}

// Load reads the document. A missing file is an empty state, not an error.
func (s *Store) Load() (State, error) {
	var st State
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return State{Folders: []Folder{}, Items: []Item{}}, nil
	}
	if err != nil {
		return st, fmt.Errorf("read favorites: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parse favorites: %w", err)
	}
	if st.Folders == nil {
		st.Folders = []Folder{}
	}
	if st.Items == nil {
		st.Items = []Item{}
	}
	return st, nil
}

// Save replaces the document on disk. The write goes through a temp file and
// rename so a crash mid-write can't truncate the previous state.
func (s *Store) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create favorites directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace favorites: %w", err)
	}
	return nil
}
