package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

// snapshot is the set of objects on the canvas and their transforms.
type snapshot map[scene.Object]scene.Transform

func take(c *scene.Canvas) snapshot {
	s := make(snapshot)
	for _, o := range c.Objects() {
		s[o] = o.Base().Transform()
	}
	return s
}

func newRect(x float64) *scene.Rect {
	return scene.NewRect(geom.Rect{Left: x, Top: x, Width: 20, Height: 20})
}

func TestInitSeedsRoot(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	assert.False(t, l.CanUndo())
	assert.Equal(t, -1, l.Index())

	l.Init("panZoom")
	require.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Index())
	assert.Equal(t, RootLabel, l.Entries()[0].Meta.Label)
	assert.Equal(t, "default", l.Entries()[0].Entry.Kind())
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
	assert.False(t, l.Undo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("")

	a, b := newRect(0), newRect(10)
	states := []snapshot{take(c)}

	c.Add(a)
	l.Push(Add{Object: a}, Metadata{Label: "add a"})
	states = append(states, take(c))

	before := a.Transform()
	a.Left, a.Top = 40, 50
	l.Push(Transform{Object: a, Before: before, After: a.Transform()}, Metadata{Label: "move a"})
	states = append(states, take(c))

	c.Add(b)
	l.Push(Add{Object: b}, Metadata{Label: "add b"})
	states = append(states, take(c))

	c.Remove(a)
	l.Push(Remove{Object: a}, Metadata{Label: "remove a"})
	states = append(states, take(c))

	n := 4
	for i := 1; i <= n; i++ {
		require.True(t, l.Undo())
		assert.Equal(t, states[n-i], take(c), "after %d undos", i)
	}
	assert.False(t, l.CanUndo())
	for i := 1; i <= n; i++ {
		require.True(t, l.Redo())
		assert.Equal(t, states[i], take(c), "after %d redos", i)
	}
	assert.False(t, l.CanRedo())
}

func TestPushAfterUndoDropsRedo(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("")
	a, b, d := newRect(0), newRect(5), newRect(9)

	for _, o := range []scene.Object{a, b} {
		c.Add(o)
		l.Push(Add{Object: o}, Metadata{})
	}
	require.True(t, l.Undo())
	assert.True(t, l.CanRedo())

	c.Add(d)
	l.Push(Add{Object: d}, Metadata{})
	assert.False(t, l.CanRedo())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 2, l.Index())
	assert.False(t, l.Redo())
}

func TestGoToMatchesStepwise(t *testing.T) {
	build := func() (*scene.Canvas, *Log) {
		c := scene.New(100, 100)
		l := New(c)
		l.Init("")
		for i := 0; i < 4; i++ {
			o := newRect(float64(i * 10))
			c.Add(o)
			l.Push(Add{Object: o}, Metadata{})
		}
		return c, l
	}

	c1, l1 := build()
	c2, l2 := build()

	require.True(t, l1.GoTo(1))
	for l2.Index() > 1 {
		l2.Undo()
	}
	assert.Len(t, c1.Objects(), len(c2.Objects()))
	assert.Equal(t, 1, l1.Index())

	require.True(t, l1.GoTo(3))
	assert.Len(t, c1.Objects(), 3)

	assert.False(t, l1.GoTo(3), "current index")
	assert.False(t, l1.GoTo(5), "past the end")
	assert.False(t, l1.GoTo(-2), "before the start")
	assert.Equal(t, 3, l1.Index())
	assert.Len(t, c1.Objects(), 3)
}

func TestModeRestoration(t *testing.T) {
	c := scene.New(100, 100)
	var modes []string
	l := New(c, WithRestoreMode(func(m string) { modes = append(modes, m) }))
	l.Init("panZoom")

	r := newRect(0)
	c.Add(r)
	l.Push(Add{Object: r}, Metadata{Label: "Add rect", Mode: "rect"})

	l.Undo()
	l.Redo()
	l.GoTo(0)
	assert.Equal(t, []string{"panZoom", "rect", "panZoom"}, modes)
}

func TestReplace(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("")
	bottom, old, top, repl := newRect(0), newRect(1), newRect(2), newRect(3)
	c.Add(bottom, old, top)

	c.Remove(old)
	c.InsertAt(1, repl)
	l.Push(Replace{Old: old, New: repl}, Metadata{})

	l.Undo()
	assert.Equal(t, []scene.Object{bottom, old, top}, c.Objects())
	l.Redo()
	assert.Equal(t, []scene.Object{bottom, repl, top}, c.Objects())

	c.Remove(repl)
	l.Undo()
	assert.Equal(t, []scene.Object{bottom, top}, c.Objects(), "missing object is skipped")
	assert.Equal(t, 0, l.Index())
}

func TestTransformSkipsDetachedObject(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("")
	r := newRect(0)
	c.Add(r)
	before := r.Transform()
	r.Left = 30
	l.Push(Transform{Object: r, Before: before, After: r.Transform()}, Metadata{})

	c.Remove(r)
	require.True(t, l.Undo())
	assert.Equal(t, 30.0, r.Left)
	assert.Equal(t, 0, l.Index())
}

func TestCompositeClosures(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("")
	state := "after"
	l.Push(Composite{Before: func() { state = "before" }, After: func() { state = "after" }}, Metadata{})
	l.Undo()
	assert.Equal(t, "before", state)
	l.Redo()
	assert.Equal(t, "after", state)
}

func TestMaxSizeEvictsOldest(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c, WithMaxSize(3))
	l.Init("")
	for i := 0; i < 5; i++ {
		l.Push(Composite{}, Metadata{Label: string(rune('a' + i))})
	}
	require.Equal(t, 3, l.Len())
	assert.Equal(t, 2, l.Index())
	labels := []string{}
	for _, r := range l.Entries() {
		labels = append(labels, r.Meta.Label)
	}
	assert.Equal(t, []string{"c", "d", "e"}, labels)
}

func TestMetadataStamped(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	changes := 0
	l := New(scene.New(1, 1), WithClock(func() time.Time { return fixed }), WithOnChange(func() { changes++ }))
	l.Init("")
	l.Push(Composite{}, Metadata{Label: "x"})
	l.Push(Composite{}, Metadata{Label: "y"})

	recs := l.Entries()
	assert.Equal(t, fixed, recs[1].Meta.Timestamp)
	assert.NotEqual(t, recs[1].Meta.ID, recs[2].Meta.ID)
	assert.Equal(t, -1, recs[1].Meta.ID.Compare(recs[2].Meta.ID), "ids are monotonic")
	assert.Equal(t, 3, changes)

	l.Clear()
	assert.Equal(t, -1, l.Index())
	assert.Zero(t, l.Len())
}

func TestPushBeforeRootKeepsEntryUndoable(t *testing.T) {
	c := scene.New(100, 100)
	l := New(c)
	l.Init("panZoom")

	a := newRect(0)
	c.Add(a)
	l.Push(Add{Object: a}, Metadata{Label: "add a"})
	require.True(t, l.GoTo(-1))
	assert.Equal(t, -1, l.Index())

	b := newRect(10)
	c.Add(b)
	l.Push(Add{Object: b}, Metadata{Label: "add b"})
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "add b", l.Entries()[0].Meta.Label)
	assert.Equal(t, 0, l.Index())
	assert.True(t, l.CanUndo())

	require.True(t, l.Undo())
	assert.False(t, c.Contains(b))
	assert.Equal(t, -1, l.Index())
	assert.False(t, l.CanUndo())
	require.True(t, l.Redo())
	assert.True(t, c.Contains(b))
}
