// Package history keeps a linear undo/redo log of scene mutations.
package history

import (
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/example/cutout/internal/scene"
)

// DefaultMaxSize bounds the log unless WithMaxSize says otherwise.
const DefaultMaxSize = 200

// RootLabel labels the entry Init seeds.
const RootLabel = "Project initialized"

// Scene is the part of the canvas the log replays entries against.
type Scene interface {
	Add(objs ...scene.Object)
	Remove(objs ...scene.Object) bool
	InsertAt(i int, obj scene.Object)
	IndexOf(obj scene.Object) int
	RequestRenderAll()
}

// Log is an ordered list of records with a cursor at the last applied one.
// Pushing after an undo discards the redo branch.
type Log struct {
	scene    Scene
	maxSize  int
	restore  func(mode string)
	onChange func()
	now      func() time.Time
	entropy  io.Reader

	records []Record
	index   int
	floor   int
}

// Option configures a Log.
type Option func(*Log)

// WithMaxSize bounds the number of records kept.
func WithMaxSize(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithRestoreMode registers the callback that switches the editor mode when
// the cursor lands on a record carrying one.
func WithRestoreMode(fn func(mode string)) Option { return func(l *Log) { l.restore = fn } }

// WithOnChange registers a callback run after every change to the records
// or the cursor.
func WithOnChange(fn func()) Option { return func(l *Log) { l.onChange = fn } }

// WithClock replaces time.Now for timestamps and ids.
func WithClock(now func() time.Time) Option { return func(l *Log) { l.now = now } }

// New creates an empty log replaying against s.
func New(s Scene, opts ...Option) *Log {
	l := &Log{
		scene:   s,
		maxSize: DefaultMaxSize,
		now:     time.Now,
		index:   -1,
		floor:   -1,
	}
	for _, o := range opts {
		o(l)
	}
	t := l.now()
	l.entropy = ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return l
}

// Init resets the log to a single root record that cannot be undone.
func (l *Log) Init(mode string) {
	l.records = []Record{{Entry: Composite{}, Meta: l.stamp(Metadata{Label: RootLabel, Mode: mode})}}
	l.index = 0
	l.floor = 0
	l.changed()
}

// Push appends e after the cursor, dropping any redo branch. When the log
// is full the oldest record is evicted. Pushing from before the root drops
// the root too, and the floor follows the cursor so e can still be undone.
func (l *Log) Push(e Entry, meta Metadata) {
	if l.index < l.floor {
		l.floor = l.index
	}
	l.records = append(l.records[:l.index+1], Record{Entry: e, Meta: l.stamp(meta)})
	if len(l.records) > l.maxSize {
		l.records = append([]Record(nil), l.records[1:]...)
	} else {
		l.index++
	}
	l.changed()
}

// Undo reverts the record at the cursor and moves the cursor back.
func (l *Log) Undo() bool {
	if !l.CanUndo() {
		return false
	}
	l.undo(l.records[l.index].Entry)
	l.index--
	if l.index >= 0 {
		l.restoreMode(l.records[l.index].Meta.Mode)
	}
	l.changed()
	return true
}

// Redo moves the cursor forward and reapplies the record there.
func (l *Log) Redo() bool {
	if !l.CanRedo() {
		return false
	}
	l.index++
	rec := l.records[l.index]
	l.redo(rec.Entry)
	l.restoreMode(rec.Meta.Mode)
	l.changed()
	return true
}

// GoTo replays records one at a time until the cursor reaches target,
// which may be -1 for "before everything". Out of range targets and the
// current position are ignored.
func (l *Log) GoTo(target int) bool {
	if target < -1 || target >= len(l.records) || target == l.index {
		return false
	}
	if target > l.index {
		for i := l.index + 1; i <= target; i++ {
			l.redo(l.records[i].Entry)
		}
	} else {
		for i := l.index; i > target; i-- {
			l.undo(l.records[i].Entry)
		}
	}
	l.index = target
	if target >= 0 {
		l.restoreMode(l.records[target].Meta.Mode)
	}
	l.scene.RequestRenderAll()
	l.changed()
	return true
}

// Clear drops every record.
func (l *Log) Clear() {
	l.records = nil
	l.index = -1
	l.floor = -1
	l.changed()
}

// Entries returns a copy of the records, oldest first.
func (l *Log) Entries() []Record { return append([]Record(nil), l.records...) }

// Index is the cursor position, -1 when nothing is applied.
func (l *Log) Index() int { return l.index }

// Len is the number of records.
func (l *Log) Len() int { return len(l.records) }

// CanUndo reports whether Undo would do anything. The root record seeded
// by Init is never undone.
func (l *Log) CanUndo() bool { return l.index > l.floor }

// CanRedo reports whether Redo would do anything.
func (l *Log) CanRedo() bool { return l.index < len(l.records)-1 }

func (l *Log) stamp(meta Metadata) Metadata {
	t := l.now()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = t
	}
	meta.ID = ulid.MustNew(ulid.Timestamp(t), l.entropy)
	return meta
}

func (l *Log) restoreMode(mode string) {
	if mode != "" && l.restore != nil {
		l.restore(mode)
	}
}

func (l *Log) changed() {
	if l.onChange != nil {
		l.onChange()
	}
}

func (l *Log) undo(e Entry) {
	switch e := e.(type) {
	case Add:
		l.scene.Remove(e.Object)
	case Remove:
		l.scene.Add(e.Object)
	case Transform:
		if l.scene.IndexOf(e.Object) >= 0 {
			e.Object.Base().SetTransform(e.Before)
		}
	case Replace:
		swap(l.scene, e.New, e.Old)
	case Composite:
		if e.Before != nil {
			e.Before()
		}
	}
	l.scene.RequestRenderAll()
}

func (l *Log) redo(e Entry) {
	switch e := e.(type) {
	case Add:
		l.scene.Add(e.Object)
	case Remove:
		l.scene.Remove(e.Object)
	case Transform:
		if l.scene.IndexOf(e.Object) >= 0 {
			e.Object.Base().SetTransform(e.After)
		}
	case Replace:
		swap(l.scene, e.Old, e.New)
	case Composite:
		if e.After != nil {
			e.After()
		}
	}
	l.scene.RequestRenderAll()
}

// swap puts in at out's index. Nothing happens when out is not on the scene.
func swap(s Scene, out, in scene.Object) {
	i := s.IndexOf(out)
	if i < 0 {
		return
	}
	s.Remove(out)
	s.InsertAt(i, in)
}
