package layering

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type patch struct {
	Base    *int
	Enabled *bool
	Labels  map[string]string
	Tags    []string
	Nested  *nested
}

type nested struct {
	Volume *int
	Name   string
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestMergeStrongestWins(t *testing.T) {
	cases := []struct {
		name   string
		layers []patch
		want   patch
	}{
		{
			name:   "weak fills missing pointers",
			layers: []patch{{Base: intPtr(5)}, {Base: intPtr(1), Enabled: boolPtr(true)}},
			want:   patch{Base: intPtr(5), Enabled: boolPtr(true)},
		},
		{
			name: "maps are unioned with strong keys winning",
			layers: []patch{
				{Labels: map[string]string{"env": "qa"}},
				{Labels: map[string]string{"env": "prod", "team": "core"}},
			},
			want: patch{Labels: map[string]string{"env": "qa", "team": "core"}},
		},
		{
			name:   "strong slice replaces weak slice",
			layers: []patch{{Tags: []string{"a"}}, {Tags: []string{"b", "c"}}},
			want:   patch{Tags: []string{"a"}},
		},
		{
			name: "nested pointers merge field by field",
			layers: []patch{
				{Nested: &nested{Name: "top"}},
				{Nested: &nested{Volume: intPtr(3), Name: "bottom"}},
			},
			want: patch{Nested: &nested{Volume: intPtr(3), Name: "top"}},
		},
		{
			name:   "three layers",
			layers: []patch{{}, {Enabled: boolPtr(false)}, {Base: intPtr(9), Enabled: boolPtr(true)}},
			want:   patch{Base: intPtr(9), Enabled: boolPtr(false)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.layers...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeZeroInput(t *testing.T) {
	got := Merge[patch]()
	if diff := cmp.Diff(patch{}, got); diff != "" {
		t.Fatalf("expected zero value, diff:\n%s", diff)
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	weak := patch{Labels: map[string]string{"env": "prod"}, Base: intPtr(1)}
	got := Over(patch{}, weak)

	got.Labels["env"] = "changed"
	*got.Base = 42
	if weak.Labels["env"] != "prod" {
		t.Fatalf("expected weak labels untouched, got %q", weak.Labels["env"])
	}
	if *weak.Base != 1 {
		t.Fatalf("expected weak pointer untouched, got %d", *weak.Base)
	}
}

func TestCloneDetachesMapsOfAny(t *testing.T) {
	src := map[string]any{"step": map[string]any{"n": 1}}
	clone := Clone(src)
	clone["step"].(map[string]any)["n"] = 2
	if src["step"].(map[string]any)["n"] != 1 {
		t.Fatalf("expected source nested map untouched, got %v", src["step"])
	}
}
