package modals

import (
	"encoding/json"
	"fmt"
)

// Layout is a point-in-time view of every open modal, bottom first. It is
// what a UI layer needs to place modals for one render.
type Layout struct {
	Entries            []LayoutEntry `json:"entries"`
	OverlayVisible     bool          `json:"overlay_visible"`
	OverlayZIndex      int           `json:"overlay_z_index"`
	TransitionDuration int64         `json:"transition_duration_ms"`
}

// LayoutEntry describes the placement of one open modal.
type LayoutEntry struct {
	ID       string      `json:"id"`
	Side     Side        `json:"side"`
	Position PositionTag `json:"position"`
	ZIndex   int         `json:"z_index"`
	Active   bool        `json:"active"`
}

// Layout computes placement for all open modals under one read lock, so the
// entries are mutually consistent.
func (m *Manager) Layout() Layout {
	m.mu.RLock()
	defer m.mu.RUnlock()

	top := len(m.stack) - 1
	entries := make([]LayoutEntry, len(m.stack))
	for index, id := range m.stack {
		reg := m.registry[id]
		entries[index] = LayoutEntry{
			ID:       id,
			Side:     reg.DeclaredSide(),
			Position: positionFor(index, top, reg.Side),
			ZIndex:   m.zIndexLocked(index),
			Active:   index == top,
		}
	}
	return Layout{
		Entries:            entries,
		OverlayVisible:     len(m.stack) > 0,
		OverlayZIndex:      m.settings.OverlayZIndex,
		TransitionDuration: m.settings.TransitionDurationMs(),
	}
}

// Active returns the entry of the topmost modal.
func (l Layout) Active() (LayoutEntry, bool) {
	if len(l.Entries) == 0 {
		return LayoutEntry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}

// ToJSON serialises the layout for transport or logging.
func (l Layout) ToJSON() ([]byte, error) {
	return json.Marshal(l)
}

// LayoutFromJSON decodes a payload produced by ToJSON.
func LayoutFromJSON(payload []byte) (Layout, error) {
	var layout Layout
	if err := json.Unmarshal(payload, &layout); err != nil {
		return Layout{}, fmt.Errorf("modals: decode layout: %w", err)
	}
	return layout, nil
}
