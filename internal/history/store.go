package history

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// DefaultCapacity is the number of snapshots kept when none is configured.
const DefaultCapacity = 50

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one frame snapshot.
type Entry struct {
	Frame  int           // index of the frame the snapshot belongs to
	Pixels *pixel.Buffer // frame contents at commit time
	At     time.Time
}

func (e Entry) clone() Entry {
	e.Pixels = e.Pixels.Clone()
	return e
}

// Store is a bounded, linear undo history.
type Store struct {
	entries  []Entry
	index    int // cursor; -1 when empty
	capacity int
}

// New creates an empty store holding at most capacity snapshots.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		index:    -1,
		capacity: capacity,
	}
}

// Commit records a deep copy of pixels as the newest snapshot of frame.
// Snapshots after the cursor are discarded first.
func (s *Store) Commit(frame int, pixels *pixel.Buffer) {
	s.entries = s.entries[:s.index+1]
	s.entries = append(s.entries, Entry{
		Frame:  frame,
		Pixels: pixels.Clone(),
		At:     time.Now(),
	})
	s.index++

	// Enforce capacity
	if len(s.entries) > s.capacity {
		excess := len(s.entries) - s.capacity
		clear(s.entries[:excess])
		s.entries = s.entries[excess:]
		s.index -= excess
	}
}

// Undo moves the cursor back one snapshot and returns a copy of it.
func (s *Store) Undo() (Entry, error) {
	if !s.CanUndo() {
		return Entry{}, ErrNothingToUndo
	}
	s.index--
	return s.entries[s.index].clone(), nil
}

// Redo moves the cursor forward one snapshot and returns a copy of it.
func (s *Store) Redo() (Entry, error) {
	if !s.CanRedo() {
		return Entry{}, ErrNothingToRedo
	}
	s.index++
	return s.entries[s.index].clone(), nil
}

// Current returns a copy of the snapshot under the cursor.
// ok is false when the store is empty.
func (s *Store) Current() (Entry, bool) {
	if s.index < 0 {
		return Entry{}, false
	}
	return s.entries[s.index].clone(), true
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool {
	return s.index > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool {
	return s.index < len(s.entries)-1
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	return len(s.entries)
}

// Index returns the cursor position, -1 when empty.
func (s *Store) Index() int {
	return s.index
}

// Capacity returns the maximum number of snapshots.
func (s *Store) Capacity() int {
	return s.capacity
}

// Reset discards all snapshots.
func (s *Store) Reset() {
	s.entries = nil
	s.index = -1
}
