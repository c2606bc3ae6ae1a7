package activity

import (
	"strings"
	"time"
)

// Verbs emitted for modal lifecycle changes.
const (
	VerbModalRegistered   = "modal.registered"
	VerbModalUnregistered = "modal.unregistered"
	VerbModalOpened       = "modal.opened"
	VerbModalClosed       = "modal.closed"
	VerbStackCleared      = "modal.stack.cleared"
	VerbSettingsUpdated   = "modal.settings.updated"
)

// Object types attached to modal events.
const (
	ObjectModal    = "modal"
	ObjectStack    = "modal.stack"
	ObjectSettings = "modal.settings"
)

// ModalEventInput describes the fields shared by modal lifecycle events.
type ModalEventInput struct {
	ModalID    string
	Side       string
	Position   string
	ZIndex     int
	Stack      []string
	Reason     string
	Changes    map[string]any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildModalRegisteredEvent constructs an event for a new or replaced registration.
func BuildModalRegisteredEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbModalRegistered, ObjectModal, input)
}

// BuildModalUnregisteredEvent constructs an event for a removed registration.
func BuildModalUnregisteredEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbModalUnregistered, ObjectModal, input)
}

// BuildModalOpenedEvent constructs an event for a modal pushed onto the stack.
func BuildModalOpenedEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbModalOpened, ObjectModal, input)
}

// BuildModalClosedEvent constructs an event for a modal removed from the stack.
func BuildModalClosedEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbModalClosed, ObjectModal, input)
}

// BuildStackClearedEvent constructs an event for CloseAll.
func BuildStackClearedEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbStackCleared, ObjectStack, input)
}

// BuildSettingsUpdatedEvent constructs an event for a settings change.
func BuildSettingsUpdatedEvent(input ModalEventInput) Event {
	return buildModalEvent(VerbSettingsUpdated, ObjectSettings, input)
}

func buildModalEvent(verb, objectType string, input ModalEventInput) Event {
	metadata := cloneMap(input.Metadata)
	set := func(key string, value any) {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[key] = value
	}

	if input.Stack != nil {
		set("stack", append([]string{}, input.Stack...))
		set("stack_depth", len(input.Stack))
	}
	if side := strings.TrimSpace(input.Side); side != "" {
		set("side", side)
	}
	if position := strings.TrimSpace(input.Position); position != "" {
		set("position", position)
	}
	if input.ZIndex != 0 {
		set("z_index", input.ZIndex)
	}
	if reason := strings.TrimSpace(input.Reason); reason != "" {
		set("reason", reason)
	}
	if len(input.Changes) > 0 {
		set("changes", cloneMap(input.Changes))
	}

	objectID := strings.TrimSpace(input.ModalID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
