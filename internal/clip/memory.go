package clip

import "sync"

// Memory is an in-process Backend used by tests and by the monitor/injector
// test harnesses. Writes can be scripted to fail a number of times to
// exercise the retry path.
type Memory struct {
	mu        sync.Mutex
	text      string
	image     []byte
	files     []string
	failWrite int
	writes    int
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Name() string { return "in-memory" }

func (m *Memory) ReadText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Memory) ReadImage() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if err := m.maybeFailLocked(); err != nil {
		return err
	}
	m.text = text
	m.image = nil
	return nil
}

func (m *Memory) WriteImage(pngBytes []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if err := m.maybeFailLocked(); err != nil {
		return err
	}
	m.image = append([]byte(nil), pngBytes...)
	m.text = ""
	return nil
}

func (m *Memory) WriteFiles(paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if err := m.maybeFailLocked(); err != nil {
		return err
	}
	m.files = append([]string(nil), paths...)
	m.text = ""
	m.image = nil
	return nil
}

func (m *Memory) Close() {}

// SetText seeds the clipboard without counting as a write, as if another
// process copied something.
func (m *Memory) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.image = nil
}

// SetImage seeds the clipboard with PNG bytes.
func (m *Memory) SetImage(pngBytes []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = append([]byte(nil), pngBytes...)
	m.text = ""
}

// Clear empties the clipboard.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = ""
	m.image = nil
	m.files = nil
}

// FailNextWrites makes the next n writes return a contention error.
func (m *Memory) FailNextWrites(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = n
}

// Writes reports how many write attempts the backend has seen.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Files returns the last file-drop list written.
func (m *Memory) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.files...)
}

func (m *Memory) maybeFailLocked() error {
	if m.failWrite > 0 {
		m.failWrite--
		return errContended
	}
	return nil
}
