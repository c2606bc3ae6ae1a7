package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	modals "github.com/goliatone/go-modals"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

var ErrInvalidRef = errors.New("state: invalid ref")

// Ref identifies one persisted snapshot: the window that owns the modal stack
// and, optionally, the session within it.
type Ref struct {
	Window  string
	Session string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty" yaml:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Snapshot is the persisted shape of a Manager: the open ids bottom first and
// the presentation settings.
type Snapshot struct {
	Stack    []string        `json:"stack" yaml:"stack"`
	Settings modals.Settings `json:"settings" yaml:"settings"`
}

// Store loads/saves one snapshot for a single reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Identifier returns the canonical storage key for r.
func (r Ref) Identifier() (string, error) {
	window := strings.TrimSpace(r.Window)
	if window == "" {
		return "", fmt.Errorf("%w: window is required", ErrInvalidRef)
	}
	session := strings.TrimSpace(r.Session)
	for _, part := range []string{window, session} {
		if strings.ContainsAny(part, `/\`) || part == "." || part == ".." {
			return "", fmt.Errorf("%w: %q is not a valid key segment", ErrInvalidRef, part)
		}
	}
	if session == "" {
		return fmt.Sprintf("modals/%s", window), nil
	}
	return fmt.Sprintf("modals/%s/%s", window, session), nil
}

// Capture reads the current stack and settings of mgr.
func Capture(mgr *modals.Manager) Snapshot {
	return Snapshot{
		Stack:    mgr.Stack(),
		Settings: mgr.Settings(),
	}
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
