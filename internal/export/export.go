// Package export writes image history entries to disk as PNG files. The
// destination is chosen by asking the file manager which folder the user was
// looking at; when that can't be answered the saver falls back to the
// configured output directory, then the user's downloads folder.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.clipd.dev/clipd/internal/imaging"
	"go.clipd.dev/clipd/internal/shellfolder"
)

// Subdir is created under the destination so saved images land in their own
// folder rather than cluttering it directly.
const Subdir = "Clipd"

// Saver persists image payloads as PNG files.
type Saver struct {
	resolver shellfolder.Resolver
	outDir   string
	now      func() time.Time
}

// New builds a Saver. outDir may be empty, in which case the platform
// downloads directory is used as the fallback.
func New(resolver shellfolder.Resolver, outDir string) *Saver {
	return &Saver{resolver: resolver, outDir: outDir, now: time.Now}
}

// Save decodes a data-URI image, picks a destination for hwnd, and writes a
// timestamped PNG. It returns the written path.
func (s *Saver) Save(dataURI string, hwnd uintptr) (string, error) {
	img, err := imaging.DecodeDataURIImage(dataURI)
	if err != nil {
		return "", err
	}
	pngBytes, err := imaging.EncodePNG(img)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.destination(hwnd), Subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("clipd_%d.png", s.now().UnixMilli()))
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	slog.Info("image saved", "path", path)
	return path, nil
}

// destination resolves the base directory: the focused file-manager folder
// wins, then the configured directory, then downloads.
func (s *Saver) destination(hwnd uintptr) string {
	if dir, ok := s.resolver.Resolve(hwnd); ok {
		slog.Debug("saving into focused folder", "dir", dir)
		return dir
	}
	if s.outDir != "" {
		return s.outDir
	}
	return downloadsDir()
}

// downloadsDir finds the user's downloads folder, degrading to the home
// directory and finally the temp directory.
func downloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	dl := filepath.Join(home, "Downloads")
	if info, err := os.Stat(dl); err == nil && info.IsDir() {
		return dl
	}
	return home
}
