package history

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/example/cutout/internal/scene"
)

// Entry is one reversible action. The concrete types below are the only
// implementations.
type Entry interface {
	// Kind is a short name for timelines and logs.
	Kind() string
	isEntry()
}

// Add records an object placed on the scene.
type Add struct{ Object scene.Object }

// Remove records an object taken off the scene.
type Remove struct{ Object scene.Object }

// Transform records a change to an object's position, scale or rotation.
type Transform struct {
	Object        scene.Object
	Before, After scene.Transform
}

// Replace records Old being swapped for New at the same stacking index.
type Replace struct{ Old, New scene.Object }

// Composite wraps an action that does not fit the structural variants. The
// closures are run as-is on undo and redo.
type Composite struct{ Before, After func() }

func (Add) Kind() string       { return "add" }
func (Remove) Kind() string    { return "remove" }
func (Transform) Kind() string { return "transform" }
func (Replace) Kind() string   { return "replace" }
func (Composite) Kind() string { return "default" }

func (Add) isEntry()       {}
func (Remove) isEntry()    {}
func (Transform) isEntry() {}
func (Replace) isEntry()   {}
func (Composite) isEntry() {}

// Metadata describes an entry for display and mode restoration.
type Metadata struct {
	ID        ulid.ULID
	Timestamp time.Time
	Label     string
	// Mode is restored when the cursor lands on the entry. Empty leaves the
	// current mode alone.
	Mode string
}

// Record pairs an entry with its metadata.
type Record struct {
	Entry Entry
	Meta  Metadata
}
