// Package registry provides a global registry for sprite exporters.
// Formats register themselves in init() functions, allowing the CLI and
// the editor to discover exporters without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sprite/internal/editor"
)

// Exporter writes a sprite document in one file format.
// Exporters are pure encoders with no terminal or storage dependencies.
type Exporter interface {
	// ID returns a unique identifier for this format (e.g., "png", "gif").
	// Used for CLI flags and output file extensions.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Extension returns the file extension, including the dot.
	Extension() string

	// Export encodes doc to w.
	Export(w io.Writer, doc editor.Document, opts Options) error
}

// Options controls what an exporter writes.
type Options struct {
	Frame int // Frame index for single-frame formats
	Scale int // Integer upscale factor; values below 1 mean 1
}

// FormatInfo contains metadata about a registered exporter.
type FormatInfo struct {
	ID        string
	Title     string
	Extension string
}

// Factory is a function that creates a new exporter instance.
type Factory func() Exporter

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]FormatInfo)
	mu        sync.RWMutex
)

// Register adds an exporter factory to the registry.
// Typically called from a format's init() function.
// Panics if a format with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", id))
	}

	factories[id] = f

	e := f()
	infos[id] = FormatInfo{ID: id, Title: e.Title(), Extension: e.Extension()}
}

// List returns information about all registered formats, sorted by ID.
func List() []FormatInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FormatInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates an exporter by its ID.
// Returns an error if the format is not registered.
func Create(id string) (Exporter, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown format %q", id)
	}

	return f(), nil
}

// Exists checks if a format with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
