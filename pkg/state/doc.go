// Package state persists modal stack snapshots so a window can restore the
// modals that were open when it was last closed.
//
// Responsibilities:
//   - Store[T] only loads/saves a single snapshot for a single Ref.
//   - Session captures a Manager into a Snapshot, saves it with optimistic
//     concurrency (ETag), and restores it onto a Manager.
//   - The modals package stays persistence-agnostic; all I/O lives behind
//     Store implementations.
//
// Data flow:
//
//	Manager -> Capture -> Snapshot -> Store.Save
//	Store.Load -> Snapshot -> Configure + Open -> Manager
//
// Deterministic keys:
//
//	Ref.Identifier() provides the canonical storage key
//	(`modals/<window>` or `modals/<window>/<session>`). FileStore maps the key
//	onto a YAML file path under its root directory.
package state
