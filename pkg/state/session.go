package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	modals "github.com/goliatone/go-modals"
)

// Session saves and restores Manager snapshots through a Store.
type Session struct {
	Store Store[Snapshot]
	// Now defaults to time.Now.
	Now func() time.Time
}

// Restored reports the outcome of Session.Restore.
type Restored struct {
	Meta    Meta
	Opened  []string
	Skipped []string
}

// Save captures mgr and persists it under ref. When meta.ETag is set it must
// match the stored ETag. Every save gets a fresh SnapshotID and ETag.
func (s Session) Save(ctx context.Context, ref Ref, mgr *modals.Manager, meta Meta) (Meta, error) {
	if s.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	if mgr == nil {
		return Meta{}, fmt.Errorf("state: manager is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return Meta{}, err
	}

	_, loadedMeta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %q: %w", ref.Window, err)
	}
	if !ok {
		loadedMeta = Meta{}
	}
	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	saveMeta := mergeMeta(loadedMeta, Meta{Extra: meta.Extra})
	saveMeta.SnapshotID = uuid.NewString()
	saveMeta.ETag = uuid.NewString()
	saveMeta.UpdatedAt = s.now()

	savedMeta, err := s.Store.Save(ctx, ref, Capture(mgr), saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("state: save %q: %w", ref.Window, err)
	}
	return savedMeta, nil
}

// Restore loads the snapshot for ref and applies it to mgr: settings are
// replaced, the stack is cleared and the stored ids are reopened bottom first.
// Ids that are no longer registered are skipped. ok is false when nothing was
// stored; mgr is then left untouched.
func (s Session) Restore(ctx context.Context, ref Ref, mgr *modals.Manager) (Restored, bool, error) {
	if s.Store == nil {
		return Restored{}, false, fmt.Errorf("state: store is required")
	}
	if mgr == nil {
		return Restored{}, false, fmt.Errorf("state: manager is required")
	}

	snapshot, meta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return Restored{}, false, fmt.Errorf("state: load %q: %w", ref.Window, err)
	}
	if !ok {
		return Restored{}, false, nil
	}

	mgr.Configure(snapshot.Settings.Patch())
	mgr.CloseAll()

	restored := Restored{Meta: meta}
	for _, id := range snapshot.Stack {
		if _, registered := mgr.Registration(id); !registered {
			restored.Skipped = append(restored.Skipped, id)
			continue
		}
		mgr.Open(id)
		restored.Opened = append(restored.Opened, id)
	}
	return restored, true, nil
}

func (s Session) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
