package scene

// Event names an object notification.
type Event string

const (
	// EventModified fires when a user transform gesture finishes with a
	// changed transform.
	EventModified Event = "modified"
	// EventSelected fires when the object becomes the active object.
	EventSelected Event = "selected"
	// EventDeselected fires when the object stops being the active object.
	EventDeselected Event = "deselected"
	// EventEditingExited fires when a text box leaves edit mode.
	EventEditingExited Event = "editing:exited"
)

type listener struct {
	id uint64
	fn func()
}

// Handle detaches an observer registered with On.
type Handle struct {
	props *Props
	event Event
	id    uint64
}

// Off removes the observer. It is safe to call more than once.
func (h Handle) Off() {
	if h.props == nil {
		return
	}
	list := h.props.listeners[h.event]
	for i, l := range list {
		if l.id == h.id {
			h.props.listeners[h.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// On registers fn to run whenever obj fires event.
func On(obj Object, event Event, fn func()) Handle {
	p := obj.Base()
	if p.listeners == nil {
		p.listeners = make(map[Event][]*listener)
	}
	p.nextID++
	p.listeners[event] = append(p.listeners[event], &listener{id: p.nextID, fn: fn})
	return Handle{props: p, event: event, id: p.nextID}
}

// Listeners counts the observers registered on obj for event.
func Listeners(obj Object, event Event) int {
	return len(obj.Base().listeners[event])
}

func (p *Props) fire(event Event) {
	list := append([]*listener(nil), p.listeners[event]...)
	for _, l := range list {
		l.fn()
	}
}

func (p *Props) offAll() {
	p.listeners = nil
}

// Fire notifies obj's observers of event, for changes made outside a
// pointer gesture.
func Fire(obj Object, event Event) { obj.Base().fire(event) }
