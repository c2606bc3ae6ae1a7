// Package modals manages an ordered stack of named modals for nested,
// wizard-style navigation. A Manager keeps the registry of known modals, the
// subset currently open and the presentation settings, and derives a position
// tag and z-index for every open modal on demand.
//
// The Manager renders nothing. UI bindings register modals on mount, call
// Open/Close/GoBack on interaction and read PositionOf/ZIndexOf (or Layout)
// on every render.
package modals

import (
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/goliatone/go-modals/pkg/activity"
)

// Manager is an explicitly constructed modal stack. The zero value is not
// usable; call New. All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	registry map[string]Registration
	stack    []string
	settings Settings

	cfg     managerConfig
	emitter *activity.Emitter

	listenersMu  sync.Mutex
	listeners    map[uint64]ChangeListener
	nextListener uint64
}

// New constructs a Manager with default settings unless overridden.
func New(opts ...Option) *Manager {
	cfg := applyOptions(opts)
	return &Manager{
		registry: make(map[string]Registration),
		settings: cfg.settings,
		cfg:      cfg,
		emitter:  activity.NewEmitter(cfg.activityHooks, cfg.activityConfig),
	}
}

// Register inserts or replaces the registration for id. The stack is not
// touched.
func (m *Manager) Register(id string, cfg RegistrationConfig) {
	reg := Registration{
		ID:         id,
		Side:       cfg.Side,
		CloseGuard: cfg.CloseGuard,
		Extra:      copyExtra(cfg.Extra),
	}

	m.mu.Lock()
	if existing, ok := m.registry[id]; ok && reflect.DeepEqual(existing, reg) {
		m.mu.Unlock()
		return
	}
	m.registry[id] = reg
	batch := m.newBatch()
	batch.add(ChangeRegistered, id, activity.BuildModalRegisteredEvent(activity.ModalEventInput{
		ModalID: id,
		Side:    string(reg.DeclaredSide()),
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// Unregister removes id from the registry and, when open, from the stack.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	if _, ok := m.registry[id]; !ok {
		m.mu.Unlock()
		return
	}
	batch := m.newBatch()
	if index := m.indexLocked(id); index >= 0 {
		m.stack = slices.Delete(m.stack, index, index+1)
		batch.add(ChangeClosed, id, activity.BuildModalClosedEvent(activity.ModalEventInput{
			ModalID: id,
			Stack:   m.stackLocked(),
			Reason:  "unregistered",
		}))
	}
	delete(m.registry, id)
	batch.add(ChangeUnregistered, id, activity.BuildModalUnregisteredEvent(activity.ModalEventInput{
		ModalID: id,
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// Open pushes id onto the stack. Opening an unknown id logs a warning and does
// nothing; opening an already open modal does nothing.
func (m *Manager) Open(id string) {
	m.mu.Lock()
	reg, ok := m.registry[id]
	if !ok {
		m.mu.Unlock()
		m.cfg.logger.Log(LogEvent{
			Level:   LevelWarn,
			Message: "open called for unregistered modal",
			ModalID: id,
			Err:     ErrUnknownModal,
		})
		return
	}
	if m.indexLocked(id) >= 0 {
		m.mu.Unlock()
		return
	}
	m.stack = append(m.stack, id)
	index := len(m.stack) - 1
	batch := m.newBatch()
	batch.add(ChangeOpened, id, activity.BuildModalOpenedEvent(activity.ModalEventInput{
		ModalID:  id,
		Side:     string(reg.DeclaredSide()),
		Position: string(positionFor(index, index, reg.Side)),
		ZIndex:   m.settings.BaseZIndex + index + 1,
		Stack:    m.stackLocked(),
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// Close removes id from the stack wherever it sits.
func (m *Manager) Close(id string) {
	m.closeWhere(func(stack []string) int { return slices.Index(stack, id) }, "close")
}

// GoBack removes the active (topmost) modal.
func (m *Manager) GoBack() {
	m.closeWhere(func(stack []string) int { return len(stack) - 1 }, "back")
}

func (m *Manager) closeWhere(pick func([]string) int, reason string) {
	m.mu.Lock()
	index := pick(m.stack)
	if index < 0 || index >= len(m.stack) {
		m.mu.Unlock()
		return
	}
	id := m.stack[index]
	m.stack = slices.Delete(m.stack, index, index+1)
	batch := m.newBatch()
	batch.add(ChangeClosed, id, activity.BuildModalClosedEvent(activity.ModalEventInput{
		ModalID: id,
		Stack:   m.stackLocked(),
		Reason:  reason,
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// CloseAll empties the stack. Registrations are kept.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return
	}
	closed := m.stack
	m.stack = nil
	batch := m.newBatch()
	batch.add(ChangeCleared, "", activity.BuildStackClearedEvent(activity.ModalEventInput{
		Stack:    []string{},
		Metadata: map[string]any{"closed": closed},
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// IsOpen reports whether id is on the stack.
func (m *Manager) IsOpen(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexLocked(id) >= 0
}

// SyncWithFlag converges the stack with an externally bound open flag. It
// does nothing when the stack already agrees with desiredOpen.
func (m *Manager) SyncWithFlag(id string, desiredOpen bool) {
	if m.IsOpen(id) == desiredOpen {
		return
	}
	if desiredOpen {
		m.Open(id)
		return
	}
	m.Close(id)
}

// PositionOf returns the position tag of id, or false when it is not open.
func (m *Manager) PositionOf(id string) (PositionTag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	index := m.indexLocked(id)
	if index < 0 {
		return "", false
	}
	return positionFor(index, len(m.stack)-1, m.registry[id].Side), true
}

// ZIndexOf returns BaseZIndex for closed modals and BaseZIndex+index+1 for
// open ones, so z-index strictly increases with stack order.
func (m *Manager) ZIndexOf(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zIndexLocked(m.indexLocked(id))
}

// DeclaredSide returns the registered side of id, center when unset or
// unknown.
func (m *Manager) DeclaredSide(id string) Side {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry[id].DeclaredSide()
}

// Configure merges the set fields of patch into the settings. Callers must
// re-read z-indexes afterwards.
func (m *Manager) Configure(patch SettingsPatch) {
	if patch.IsEmpty() {
		return
	}
	m.mu.Lock()
	before := m.settings
	m.settings = before.Apply(patch)
	changes := diffSettings(before, m.settings)
	if len(changes) == 0 {
		m.mu.Unlock()
		return
	}
	batch := m.newBatch()
	batch.add(ChangeConfigured, "", activity.BuildSettingsUpdatedEvent(activity.ModalEventInput{
		Changes: changes,
	}))
	m.mu.Unlock()

	m.dispatch(batch)
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Stack returns a copy of the open modal ids, bottom first.
func (m *Manager) Stack() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stackLocked()
}

// AnyOpen reports whether at least one modal is open.
func (m *Manager) AnyOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stack) > 0
}

// ActiveID returns the topmost modal id.
func (m *Manager) ActiveID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.stack) == 0 {
		return "", false
	}
	return m.stack[len(m.stack)-1], true
}

// Registration returns a copy of the registration for id.
func (m *Manager) Registration(id string) (Registration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reg, ok := m.registry[id]
	if !ok {
		return Registration{}, false
	}
	return reg.clone(), true
}

// Registered returns every registered id sorted alphabetically.
func (m *Manager) Registered() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.registry))
	for id := range m.registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) indexLocked(id string) int {
	return slices.Index(m.stack, id)
}

func (m *Manager) zIndexLocked(index int) int {
	if index < 0 {
		return m.settings.BaseZIndex
	}
	return m.settings.BaseZIndex + index + 1
}

func (m *Manager) stackLocked() []string {
	if len(m.stack) == 0 {
		return []string{}
	}
	return append([]string(nil), m.stack...)
}
