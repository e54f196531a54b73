package clip

import "fmt"

// headlessBackend serves environments without a display server (containers,
// CI). Reads observe nothing; writes fail loudly so commands surface the
// condition instead of silently dropping content.
type headlessBackend struct{}

func (headlessBackend) Name() string      { return "headless (no clipboard)" }
func (headlessBackend) ReadText() string  { return "" }
func (headlessBackend) ReadImage() []byte { return nil }

func (headlessBackend) WriteText(string) error {
	return fmt.Errorf("clip: no clipboard available")
}

func (headlessBackend) WriteImage([]byte) error {
	return fmt.Errorf("clip: no clipboard available")
}

func (headlessBackend) WriteFiles([]string) error { return ErrUnsupported }

func (headlessBackend) Close() {}
