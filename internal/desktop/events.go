package desktop

// EventKind identifies what happened on the desktop.
type EventKind int

const (
	EventOpened EventKind = iota
	EventFocused
	EventRestored
	EventClosed
	EventMinimized
	EventMaximized
	EventUnmaximized
	EventActivated
	EventStickyToggled
	EventModeChanged
)

var eventNames = map[EventKind]string{
	EventOpened:        "opened",
	EventFocused:       "focused",
	EventRestored:      "restored",
	EventClosed:        "closed",
	EventMinimized:     "minimized",
	EventMaximized:     "maximized",
	EventUnmaximized:   "unmaximized",
	EventActivated:     "activated",
	EventStickyToggled: "sticky-toggled",
	EventModeChanged:   "mode-changed",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is emitted after a state change so hosts can animate or notify.
type Event struct {
	Kind EventKind
	ID   string
}

func (d *Desktop) emit(kind EventKind, id string) {
	d.logger.Debug("desktop event", "event", kind.String(), "id", id)
	if d.onEvent != nil {
		d.onEvent(Event{Kind: kind, ID: id})
	}
}
