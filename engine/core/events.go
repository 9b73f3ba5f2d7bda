package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * key := context.Data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * key := context.Data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// A file under the watched assets directory changed.
	/* Context usage:
	 * path := context.Data.(*AssetEvent).Path
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x04

	// The application configuration was reloaded from disk.
	/* Context usage:
	 * Data holds the freshly decoded configuration.
	 */
	EVENT_CODE_CONFIG_RELOADED SystemEventCode = 0x05

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type AssetEvent struct {
	Path    string
	Removed bool
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem dispatches events synchronously on the caller's goroutine.
// It is owned by the engine and only touched from the render thread.
type EventSystem struct {
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

// Register listens for events with the provided code. A listener can be
// registered once per code; duplicates return false.
func (es *EventSystem) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister stops listener from receiving events with the provided code.
func (es *EventSystem) Unregister(code SystemEventCode, listener interface{}) bool {
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fire sends context to the listeners of its code in registration order. If
// a handler returns true the event is considered handled and is not passed
// on to any more listeners.
func (es *EventSystem) Fire(context EventContext) bool {
	for _, e := range es.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (es *EventSystem) Shutdown() {
	es.registered = make(map[SystemEventCode][]*registeredEvent)
}
