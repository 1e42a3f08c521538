package editor

import (
	"fmt"

	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// Document is the persisted form of a sprite: dimensions, playback rate,
// palette and every frame as flat RGBA bytes.
type Document struct {
	Width   int
	Height  int
	FPS     int
	Palette []string
	Frames  [][]byte
}

// DocumentStore persists documents by name.
// This interface allows hosts to autosave without depending on the
// storage package.
type DocumentStore interface {
	SaveDocument(name string, doc Document) error
	LoadDocument(name string) (Document, error)
}

// Document serializes the session. A floating selection is flattened into
// the saved frame without being anchored.
func (s *Session) Document() Document {
	doc := Document{
		Width:   s.width,
		Height:  s.height,
		FPS:     s.fps,
		Palette: s.palette.Clone(),
		Frames:  make([][]byte, len(s.frames)),
	}
	for i := range s.frames {
		doc.Frames[i] = s.Flattened(i).Pix
	}
	return doc
}

// Validate checks that every frame holds exactly Width*Height*4 bytes.
func (d Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDocument, d.Width, d.Height)
	}
	if len(d.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidDocument)
	}
	want := d.Width * d.Height * 4
	for i, f := range d.Frames {
		if len(f) != want {
			return fmt.Errorf("%w: frame %d has %d bytes, expected %d", ErrInvalidDocument, i, len(f), want)
		}
	}
	return nil
}

// Load opens a session on a saved document. Settings the document does not
// carry come from opts. A missing FPS or palette falls back to opts; a
// malformed document is rejected with ErrInvalidDocument so the caller can
// start fresh instead.
func Load(doc Document, opts Options) (*Session, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalize()
	if doc.Width > opts.MaxSize || doc.Height > opts.MaxSize {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d", ErrInvalidDocument, doc.Width, doc.Height, opts.MaxSize)
	}

	frames := make([]*pixel.Buffer, len(doc.Frames))
	for i, data := range doc.Frames {
		buf, err := pixel.FromBytes(doc.Width, doc.Height, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		frames[i] = buf
	}

	opts.Width, opts.Height = doc.Width, doc.Height
	if doc.FPS > 0 {
		opts.FPS = core.Clamp(doc.FPS, MinFPS, MaxFPS)
	}
	if len(doc.Palette) > 0 {
		opts.Palette = colors.NewPalette(doc.Palette)
	}

	s := New(opts)
	s.width, s.height = doc.Width, doc.Height
	s.frames = frames
	s.current = 0
	s.history.Reset()
	s.commit()
	s.revision = 0
	return s, nil
}
