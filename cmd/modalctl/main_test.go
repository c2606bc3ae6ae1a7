package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modals/internal/scenario"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func replayJSON(t *testing.T, args ...string) scenario.Result {
	t.Helper()
	out, err := execute(t, append([]string{"-o", "json"}, args...)...)
	if err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, out)
	}
	var result scenario.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return result
}

func TestReplayTable(t *testing.T) {
	out, err := execute(t, "replay", filepath.Join("testdata", "checkout.yaml"))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for _, want := range []string{
		"STEP", "cart > shipping > payment", "blocked",
		"shifted-left-2", "shifted-1", "active-right", "1003", "overlay",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestReplayJSON(t *testing.T) {
	result := replayJSON(t, "replay", filepath.Join("testdata", "checkout.yaml"))

	if result.Name != "checkout" || len(result.Steps) != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	active, ok := result.Layout.Active()
	if !ok || active.ID != "payment" || active.ZIndex != 1003 {
		t.Fatalf("unexpected active entry: %+v", active)
	}
}

func TestReplayUsesEnvironmentSettings(t *testing.T) {
	t.Setenv("MODALCTL_BASE_Z_INDEX", "500")
	t.Setenv("MODALCTL_TRANSITION_DURATION", "1s")

	result := replayJSON(t, "replay", filepath.Join("testdata", "checkout.yaml"))
	if result.Layout.Entries[0].ZIndex != 501 || result.Layout.TransitionDuration != 1000 {
		t.Fatalf("expected env settings applied, got %+v", result.Layout)
	}
}

func TestReplayUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modalctl.yaml")
	if err := os.WriteFile(path, []byte("overlay_z_index: 42\noutput: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "--config", path, "replay", filepath.Join("testdata", "checkout.yaml"))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	var result scenario.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("expected json output from config file: %v\n%s", err, out)
	}
	if result.Layout.OverlayZIndex != 42 {
		t.Fatalf("expected overlay z-index from config, got %d", result.Layout.OverlayZIndex)
	}
}

func TestSaveAndRestore(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join("testdata", "checkout.yaml")

	saved := replayJSON(t, "--state-dir", dir, "replay", scenarioPath, "--save", "main", "--session", "s1")
	if _, err := os.Stat(filepath.Join(dir, "modals", "main", "s1.yaml")); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}

	restored := replayJSON(t, "--state-dir", dir, "restore", scenarioPath, "--window", "main", "--session", "s1")
	if diff := cmp.Diff(saved.Layout, restored.Layout); diff != "" {
		t.Fatalf("restored layout mismatch (-want +got):\n%s", diff)
	}

	if _, err := execute(t, "--state-dir", dir, "restore", scenarioPath, "--window", "other"); err == nil {
		t.Fatalf("expected missing snapshot to fail")
	}
}

func TestCommandErrors(t *testing.T) {
	cases := [][]string{
		{"replay"},
		{"replay", filepath.Join("testdata", "missing.yaml")},
		{"-o", "xml", "replay", filepath.Join("testdata", "checkout.yaml")},
		{"--log-level", "loud", "replay", filepath.Join("testdata", "checkout.yaml")},
		{"restore", filepath.Join("testdata", "checkout.yaml")},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}
}
