package modals

import (
	"fmt"
	"strconv"
	"strings"
)

// Side is the declared stacking side of a modal.
type Side string

const (
	SideLeft   Side = "left"
	SideCenter Side = "center"
	SideRight  Side = "right"
)

// ParseSide converts a string into a Side. Empty input yields an unset side.
func ParseSide(value string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(value))); side {
	case "", SideLeft, SideCenter, SideRight:
		return side, nil
	default:
		return "", fmt.Errorf("modals: unknown side %q", value)
	}
}

// PositionTag describes where a modal sits relative to the active one.
type PositionTag string

const (
	// PositionActiveFirst marks a centered active modal.
	PositionActiveFirst PositionTag = "active-first"
	PositionActiveLeft  PositionTag = "active-left"
	PositionActiveRight PositionTag = "active-right"

	shiftedPrefix     = "shifted-"
	shiftedLeftPrefix = "shifted-left-"
)

// Shifted returns the tag for a background modal receding to the right.
func Shifted(level int) PositionTag {
	return PositionTag(shiftedPrefix + strconv.Itoa(level))
}

// ShiftedLeft returns the tag for a background modal receding to the left.
func ShiftedLeft(level int) PositionTag {
	return PositionTag(shiftedLeftPrefix + strconv.Itoa(level))
}

// IsActive reports whether the tag belongs to the topmost modal.
func (p PositionTag) IsActive() bool {
	return strings.HasPrefix(string(p), "active-")
}

// ShiftsLeft reports whether a background modal recedes to the left.
func (p PositionTag) ShiftsLeft() bool {
	return strings.HasPrefix(string(p), shiftedLeftPrefix)
}

// ShiftLevel returns the distance from the active modal, 0 for active tags
// and -1 for malformed ones.
func (p PositionTag) ShiftLevel() int {
	if p.IsActive() {
		return 0
	}
	raw := string(p)
	switch {
	case strings.HasPrefix(raw, shiftedLeftPrefix):
		raw = strings.TrimPrefix(raw, shiftedLeftPrefix)
	case strings.HasPrefix(raw, shiftedPrefix):
		raw = strings.TrimPrefix(raw, shiftedPrefix)
	default:
		return -1
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 {
		return -1
	}
	return level
}

// positionFor computes the tag of the modal at index in a stack whose top
// index is top. Callers guarantee 0 <= index <= top.
func positionFor(index, top int, side Side) PositionTag {
	if index == top {
		if index == 0 {
			return PositionActiveFirst
		}
		switch side {
		case SideLeft:
			return PositionActiveLeft
		case SideCenter:
			return PositionActiveFirst
		default:
			return PositionActiveRight
		}
	}
	shift := top - index
	if side == SideLeft {
		return ShiftedLeft(shift)
	}
	return Shifted(shift)
}

// Registration is a modal that may be opened.
type Registration struct {
	ID   string
	Side Side
	// CloseGuard is an optional rule expression consulted by RequestClose,
	// HandleEscape and HandleOverlayClick.
	CloseGuard string
	// Extra is opaque caller configuration passed through untouched.
	Extra map[string]any
}

// RegistrationConfig is the caller supplied part of a Registration.
type RegistrationConfig struct {
	Side       Side
	CloseGuard string
	Extra      map[string]any
}

func (r Registration) clone() Registration {
	r.Extra = copyExtra(r.Extra)
	return r
}

// DeclaredSide returns the registered side, defaulting to center.
func (r Registration) DeclaredSide() Side {
	if r.Side == "" {
		return SideCenter
	}
	return r.Side
}

func copyExtra(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for key, value := range origin {
		out[key] = value
	}
	return out
}
