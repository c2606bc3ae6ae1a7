package state_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	modals "github.com/goliatone/go-modals"
	"github.com/goliatone/go-modals/pkg/state"
)

func TestFileStoreLoadsFixture(t *testing.T) {
	store := state.NewFileStore[state.Snapshot]("testdata")

	snapshot, meta, ok, err := store.Load(context.Background(), state.Ref{Window: "main"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected fixture to load")
	}

	want := state.Snapshot{
		Stack: []string{"profile", "address"},
		Settings: modals.Settings{
			BaseZIndex:          2000,
			OverlayZIndex:       1999,
			TransitionDuration:  250 * time.Millisecond,
			CloseOnOverlayClick: false,
			CloseOnEscape:       true,
		},
	}
	if diff := cmp.Diff(want, snapshot); diff != "" {
		t.Fatalf("unexpected snapshot (-want +got):\n%s", diff)
	}
	if meta.ETag != "6a1f0d2c-8e3b-4f5a-b7c9-1d2e3f4a5b6c" || meta.Extra["source"] != "fixture" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !meta.UpdatedAt.Equal(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected updated_at: %v", meta.UpdatedAt)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := state.NewFileStore[state.Snapshot](root)
	ref := state.Ref{Window: "editor", Session: "s-42"}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected missing file to report ok=false, ok=%v err=%v", ok, err)
	}

	snapshot := state.Snapshot{Stack: []string{"a", "b"}, Settings: modals.DefaultSettings()}
	meta := state.Meta{SnapshotID: "snap", ETag: "etag", UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	if _, err := store.Save(ctx, ref, snapshot, meta); err != nil {
		t.Fatalf("save: %v", err)
	}

	path, err := store.Path(ref)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != filepath.Join(root, "modals", "editor", "s-42.yaml") {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	loaded, loadedMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(snapshot, loaded); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(meta, loadedMeta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	root := t.TempDir()
	store := state.NewFileStore[state.Snapshot](root)
	ref := state.Ref{Window: "main"}
	path, _ := store.Path(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("snapshot: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, _, err := store.Load(context.Background(), ref); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFileStoreRequiresRoot(t *testing.T) {
	store := state.NewFileStore[state.Snapshot]("")
	if _, err := store.Save(context.Background(), state.Ref{Window: "main"}, state.Snapshot{}, state.Meta{}); err == nil {
		t.Fatalf("expected missing root to fail")
	}
}
