package modals

import (
	"context"
	"slices"

	"github.com/goliatone/go-modals/pkg/activity"
)

// ChangeKind names the mutation reported by a ChangeEvent.
type ChangeKind string

const (
	ChangeRegistered   ChangeKind = "registered"
	ChangeUnregistered ChangeKind = "unregistered"
	ChangeOpened       ChangeKind = "opened"
	ChangeClosed       ChangeKind = "closed"
	ChangeCleared      ChangeKind = "cleared"
	ChangeConfigured   ChangeKind = "configured"
)

// ChangeEvent is delivered to listeners after a mutation has been applied.
// Stack is the stack as it was right after this mutation.
type ChangeEvent struct {
	Kind  ChangeKind
	ID    string
	Stack []string
}

// ChangeListener receives change notifications. Listeners run synchronously on
// the goroutine that performed the mutation, after the Manager lock has been
// released, so they may call back into the Manager.
type ChangeListener func(ChangeEvent)

// OnChange subscribes listener and returns a function that unsubscribes it.
// No-op calls (opening an open modal, closing a closed one) notify nobody.
func (m *Manager) OnChange(listener ChangeListener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}
	m.listenersMu.Lock()
	if m.listeners == nil {
		m.listeners = make(map[uint64]ChangeListener)
	}
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = listener
	m.listenersMu.Unlock()

	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

type pendingChange struct {
	change ChangeEvent
	event  activity.Event
}

// changeBatch collects notifications while the state lock is held so they can
// be delivered once it is released.
type changeBatch struct {
	m       *Manager
	pending []pendingChange
}

func (m *Manager) newBatch() *changeBatch {
	return &changeBatch{m: m}
}

// add must be called with m.mu held.
func (b *changeBatch) add(kind ChangeKind, id string, event activity.Event) {
	b.pending = append(b.pending, pendingChange{
		change: ChangeEvent{Kind: kind, ID: id, Stack: b.m.stackLocked()},
		event:  event,
	})
}

func (m *Manager) dispatch(batch *changeBatch) {
	if batch == nil || len(batch.pending) == 0 {
		return
	}
	m.dispatchContext(m.cfg.baseContext, batch)
}

func (m *Manager) dispatchContext(ctx context.Context, batch *changeBatch) {
	listeners := m.snapshotListeners()
	for _, pending := range batch.pending {
		for _, listener := range listeners {
			listener(pending.change)
		}
		if err := m.emitter.Emit(ctx, pending.event); err != nil {
			m.cfg.logger.Log(LogEvent{
				Level:   LevelWarn,
				Message: "activity hook failed",
				ModalID: pending.change.ID,
				Err:     err,
				Fields:  map[string]any{"verb": pending.event.Verb},
			})
		}
	}
}

func (m *Manager) snapshotListeners() []ChangeListener {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	if len(m.listeners) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]ChangeListener, len(ids))
	for i, id := range ids {
		out[i] = m.listeners[id]
	}
	return out
}
