package modals

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-modals/pkg/activity"
	"github.com/google/go-cmp/cmp"
)

func TestOnChangeReportsEffectiveMutations(t *testing.T) {
	m := New()
	var got []ChangeEvent
	m.OnChange(func(e ChangeEvent) { got = append(got, e) })

	m.Register("a", RegistrationConfig{Side: SideLeft})
	m.Register("a", RegistrationConfig{Side: SideLeft})
	m.Register("b", RegistrationConfig{})
	m.Open("a")
	m.Open("a")
	m.Open("b")
	m.Close("ghost")
	m.GoBack()
	m.Unregister("a")
	m.CloseAll()
	m.Configure(SettingsPatch{BaseZIndex: Int(1000)})
	m.Configure(SettingsPatch{CloseOnEscape: Bool(false)})

	want := []ChangeEvent{
		{Kind: ChangeRegistered, ID: "a", Stack: []string{}},
		{Kind: ChangeRegistered, ID: "b", Stack: []string{}},
		{Kind: ChangeOpened, ID: "a", Stack: []string{"a"}},
		{Kind: ChangeOpened, ID: "b", Stack: []string{"a", "b"}},
		{Kind: ChangeClosed, ID: "b", Stack: []string{"a"}},
		{Kind: ChangeClosed, ID: "a", Stack: []string{}},
		{Kind: ChangeUnregistered, ID: "a", Stack: []string{}},
		{Kind: ChangeConfigured, Stack: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected change events (-want +got):\n%s", diff)
	}
}

func TestOnChangeUnsubscribe(t *testing.T) {
	m := New()
	m.Register("a", RegistrationConfig{})
	calls := 0
	unsubscribe := m.OnChange(func(ChangeEvent) { calls++ })

	m.Open("a")
	unsubscribe()
	m.Close("a")

	if calls != 1 {
		t.Fatalf("expected 1 call before unsubscribe, got %d", calls)
	}
	m.OnChange(nil)()
}

func TestListenersMayReenterManager(t *testing.T) {
	m := New()
	m.Register("a", RegistrationConfig{})
	m.Register("b", RegistrationConfig{})

	var layouts []Layout
	m.OnChange(func(e ChangeEvent) {
		layouts = append(layouts, m.Layout())
		if e.Kind == ChangeOpened && e.ID == "a" {
			m.Open("b")
		}
	})

	m.Open("a")

	if diff := cmp.Diff([]string{"a", "b"}, m.Stack()); diff != "" {
		t.Fatalf("unexpected stack (-want +got):\n%s", diff)
	}
	if len(layouts) != 2 {
		t.Fatalf("expected two notifications, got %d", len(layouts))
	}
}

func TestActivityHooksReceiveLifecycle(t *testing.T) {
	capture := &activity.CaptureHook{}
	m := New(WithActivityHooks(activity.Hooks{capture}), WithActivityConfig(activity.Config{Enabled: true, ActorID: "user-1"}))

	m.Register("a", RegistrationConfig{Side: SideRight})
	m.Register("b", RegistrationConfig{})
	m.Open("a")
	m.Open("b")
	m.Unregister("b")
	m.CloseAll()
	m.Configure(SettingsPatch{OverlayZIndex: Int(10)})

	want := []string{
		activity.VerbModalRegistered,
		activity.VerbModalRegistered,
		activity.VerbModalOpened,
		activity.VerbModalOpened,
		activity.VerbModalClosed,
		activity.VerbModalUnregistered,
		activity.VerbStackCleared,
		activity.VerbSettingsUpdated,
	}
	if diff := cmp.Diff(want, capture.Verbs()); diff != "" {
		t.Fatalf("unexpected verbs (-want +got):\n%s", diff)
	}

	events := capture.Events()
	opened := events[3]
	if opened.ObjectID != "b" || opened.Metadata["z_index"] != 1002 || opened.Metadata["position"] != string(PositionActiveRight) {
		t.Fatalf("unexpected opened metadata: %+v", opened.Metadata)
	}
	if opened.ActorID != "user-1" || opened.Channel != activity.DefaultChannel {
		t.Fatalf("expected emitter defaults applied, got %+v", opened)
	}
	if events[4].Metadata["reason"] != "unregistered" {
		t.Fatalf("expected unregister close reason, got %+v", events[4].Metadata)
	}
	changes, _ := events[7].Metadata["changes"].(map[string]any)
	if changes["overlay_z_index"] != 10 {
		t.Fatalf("expected settings diff, got %+v", events[7].Metadata)
	}
}

func TestActivityHookFailuresAreLoggedNotSurfaced(t *testing.T) {
	boom := errors.New("sink down")
	var logged []LogEvent
	m := New(
		WithActivityHooks(activity.Hooks{activity.HookFunc(func(context.Context, activity.Event) error { return boom })}),
		WithLogger(LoggerFunc(func(e LogEvent) { logged = append(logged, e) })),
	)
	m.Register("a", RegistrationConfig{})
	m.Open("a")

	if !m.IsOpen("a") {
		t.Fatalf("expected hook failure not to affect state")
	}
	if len(logged) != 2 {
		t.Fatalf("expected a warning per failed emission, got %d", len(logged))
	}
	if !errors.Is(logged[1].Err, boom) || logged[1].Fields["verb"] != activity.VerbModalOpened {
		t.Fatalf("unexpected log event: %+v", logged[1])
	}
}
