package modals

import (
	"time"

	"github.com/goliatone/go-modals/layering"
)

// Settings holds the global presentation settings of a Manager.
type Settings struct {
	BaseZIndex          int           `json:"base_z_index" yaml:"base_z_index"`
	OverlayZIndex       int           `json:"overlay_z_index" yaml:"overlay_z_index"`
	TransitionDuration  time.Duration `json:"transition_duration" yaml:"transition_duration"`
	CloseOnOverlayClick bool          `json:"close_on_overlay_click" yaml:"close_on_overlay_click"`
	CloseOnEscape       bool          `json:"close_on_escape" yaml:"close_on_escape"`
}

// DefaultSettings returns {1000, 999, 500ms, true, true}.
func DefaultSettings() Settings {
	return Settings{
		BaseZIndex:          1000,
		OverlayZIndex:       999,
		TransitionDuration:  500 * time.Millisecond,
		CloseOnOverlayClick: true,
		CloseOnEscape:       true,
	}
}

// TransitionDurationMs returns the transition duration in milliseconds.
func (s Settings) TransitionDurationMs() int64 {
	return s.TransitionDuration.Milliseconds()
}

// SettingsPatch is a partial Settings value; nil fields keep prior values.
type SettingsPatch struct {
	BaseZIndex          *int           `json:"base_z_index,omitempty" yaml:"base_z_index,omitempty"`
	OverlayZIndex       *int           `json:"overlay_z_index,omitempty" yaml:"overlay_z_index,omitempty"`
	TransitionDuration  *time.Duration `json:"transition_duration,omitempty" yaml:"transition_duration,omitempty"`
	CloseOnOverlayClick *bool          `json:"close_on_overlay_click,omitempty" yaml:"close_on_overlay_click,omitempty"`
	CloseOnEscape       *bool          `json:"close_on_escape,omitempty" yaml:"close_on_escape,omitempty"`
}

// Patch returns a SettingsPatch with every field set from s.
func (s Settings) Patch() SettingsPatch {
	return SettingsPatch{
		BaseZIndex:          &s.BaseZIndex,
		OverlayZIndex:       &s.OverlayZIndex,
		TransitionDuration:  &s.TransitionDuration,
		CloseOnOverlayClick: &s.CloseOnOverlayClick,
		CloseOnEscape:       &s.CloseOnEscape,
	}
}

// Apply returns s with every set field of p applied.
func (s Settings) Apply(p SettingsPatch) Settings {
	merged := layering.Over(p, s.Patch())
	return Settings{
		BaseZIndex:          *merged.BaseZIndex,
		OverlayZIndex:       *merged.OverlayZIndex,
		TransitionDuration:  *merged.TransitionDuration,
		CloseOnOverlayClick: *merged.CloseOnOverlayClick,
		CloseOnEscape:       *merged.CloseOnEscape,
	}
}

// IsEmpty reports whether the patch sets nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.BaseZIndex == nil && p.OverlayZIndex == nil && p.TransitionDuration == nil &&
		p.CloseOnOverlayClick == nil && p.CloseOnEscape == nil
}

// Patch helpers for building SettingsPatch literals.
func Int(v int) *int                          { return &v }
func Bool(v bool) *bool                       { return &v }
func Duration(v time.Duration) *time.Duration { return &v }

// diffSettings lists the keys whose values changed between before and after.
func diffSettings(before, after Settings) map[string]any {
	changes := map[string]any{}
	if before.BaseZIndex != after.BaseZIndex {
		changes["base_z_index"] = after.BaseZIndex
	}
	if before.OverlayZIndex != after.OverlayZIndex {
		changes["overlay_z_index"] = after.OverlayZIndex
	}
	if before.TransitionDuration != after.TransitionDuration {
		changes["transition_duration_ms"] = after.TransitionDurationMs()
	}
	if before.CloseOnOverlayClick != after.CloseOnOverlayClick {
		changes["close_on_overlay_click"] = after.CloseOnOverlayClick
	}
	if before.CloseOnEscape != after.CloseOnEscape {
		changes["close_on_escape"] = after.CloseOnEscape
	}
	return changes
}
