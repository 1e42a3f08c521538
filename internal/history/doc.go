// Package history provides snapshot-based undo/redo for sprite frames.
//
// Every completed edit commits a deep copy of the edited frame together with
// the frame's index. The store keeps these snapshots in order plus a cursor
// pointing at the snapshot that matches what is on screen:
//
//	store := history.New(50)
//
//	store.Commit(0, frame)           // after each finished edit
//
//	entry, err := store.Undo()       // step back
//	entry, err = store.Redo()        // step forward
//
// Undo and Redo return a fresh copy of the snapshot; the caller replaces the
// frame at entry.Frame with entry.Pixels. Snapshots inside the store are
// never handed out, so later edits cannot corrupt the past.
//
// # Branching
//
// Committing while the cursor is not at the newest snapshot discards every
// snapshot after it. There is no redo tree.
//
// # Capacity
//
// The store holds at most its capacity of snapshots. When a commit overflows
// it, the oldest snapshot is evicted and the cursor shifts with the entries
// so it keeps pointing at the same snapshot.
package history
