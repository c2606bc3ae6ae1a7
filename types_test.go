package modals

import "testing"

func TestParseSide(t *testing.T) {
	cases := map[string]Side{
		"":        "",
		"left":    SideLeft,
		" Right ": SideRight,
		"CENTER":  SideCenter,
	}
	for input, want := range cases {
		got, err := ParseSide(input)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", input, want, got)
		}
	}

	if _, err := ParseSide("top"); err == nil {
		t.Fatalf("expected unknown side to fail")
	}
}

func TestPositionTagHelpers(t *testing.T) {
	cases := []struct {
		tag    PositionTag
		active bool
		left   bool
		level  int
	}{
		{PositionActiveFirst, true, false, 0},
		{PositionActiveLeft, true, false, 0},
		{PositionActiveRight, true, false, 0},
		{Shifted(1), false, false, 1},
		{ShiftedLeft(3), false, true, 3},
		{"shifted-0", false, false, -1},
		{"shifted-x", false, false, -1},
		{"floating", false, false, -1},
	}
	for _, tc := range cases {
		if got := tc.tag.IsActive(); got != tc.active {
			t.Fatalf("%s: IsActive = %v", tc.tag, got)
		}
		if got := tc.tag.ShiftsLeft(); got != tc.left {
			t.Fatalf("%s: ShiftsLeft = %v", tc.tag, got)
		}
		if got := tc.tag.ShiftLevel(); got != tc.level {
			t.Fatalf("%s: ShiftLevel = %d, want %d", tc.tag, got, tc.level)
		}
	}
}

func TestPositionFor(t *testing.T) {
	cases := []struct {
		index, top int
		side       Side
		want       PositionTag
	}{
		{0, 0, SideLeft, PositionActiveFirst},
		{0, 0, SideRight, PositionActiveFirst},
		{1, 1, SideLeft, PositionActiveLeft},
		{1, 1, SideCenter, PositionActiveFirst},
		{1, 1, SideRight, PositionActiveRight},
		{1, 1, "", PositionActiveRight},
		{0, 2, SideLeft, "shifted-left-2"},
		{1, 2, SideCenter, "shifted-1"},
		{0, 1, "", "shifted-1"},
	}
	for _, tc := range cases {
		if got := positionFor(tc.index, tc.top, tc.side); got != tc.want {
			t.Fatalf("positionFor(%d, %d, %q) = %q, want %q", tc.index, tc.top, tc.side, got, tc.want)
		}
	}
}

func TestDeclaredSideDefaultsToCenter(t *testing.T) {
	m := New()
	m.Register("plain", RegistrationConfig{})

	if got := m.DeclaredSide("plain"); got != SideCenter {
		t.Fatalf("expected center, got %q", got)
	}
	if got := m.DeclaredSide("ghost"); got != SideCenter {
		t.Fatalf("expected center for unknown id, got %q", got)
	}
}
