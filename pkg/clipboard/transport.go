package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
)

// Buffer is a text clipboard.
type Buffer interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemBuffer is the operating system clipboard.
type SystemBuffer struct{}

func (SystemBuffer) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (SystemBuffer) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Available reports whether a system clipboard utility was found.
func (SystemBuffer) Available() bool { return !clipboard.Unsupported }

// MemoryBuffer is a process-local clipboard.
type MemoryBuffer struct {
	mu   sync.Mutex
	text string
}

func (m *MemoryBuffer) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *MemoryBuffer) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// NewBuffer returns the buffer for a configured backend name: "system"
// falls back to memory when no system clipboard is available.
func NewBuffer(backend string) Buffer {
	if backend == "system" && (SystemBuffer{}).Available() {
		return SystemBuffer{}
	}
	return &MemoryBuffer{}
}

// Transport stores footprints in a Buffer.
type Transport struct {
	Buffer Buffer
}

// NewTransport creates a transport over buf.
func NewTransport(buf Buffer) *Transport {
	return &Transport{Buffer: buf}
}

// Save serializes f into the buffer.
func (t *Transport) Save(f *board.Footprint) error {
	data, err := Serialize(f)
	if err != nil {
		return err
	}
	return errors.Wrap(t.Buffer.WriteAll(string(data)), "writing clipboard")
}

// Load reads a footprint back from the buffer.
func (t *Transport) Load() (*board.Footprint, error) {
	text, err := t.Buffer.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading clipboard")
	}
	return Deserialize([]byte(text))
}
