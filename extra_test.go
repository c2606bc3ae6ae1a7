package modals

import (
	"strings"
	"testing"
)

type wizardConfig struct {
	Title string `json:"title"`
	Step  int    `json:"step"`
}

func TestDecodeExtra(t *testing.T) {
	m := New()
	m.Register("wizard", RegistrationConfig{Extra: map[string]any{
		"title": "Profile",
		"step":  2,
		"theme": "dark",
	}})
	reg, ok := m.Registration("wizard")
	if !ok {
		t.Fatalf("expected registration")
	}

	cfg, err := DecodeExtra[wizardConfig](reg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Title != "Profile" || cfg.Step != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	_, err = DecodeExtraStrict[wizardConfig](reg)
	if err == nil || !strings.Contains(err.Error(), `"wizard"`) {
		t.Fatalf("expected strict decode to reject unknown key, got %v", err)
	}
}

func TestDecodeExtraWithoutData(t *testing.T) {
	cfg, err := DecodeExtra[wizardConfig](Registration{ID: "empty"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg != (wizardConfig{}) {
		t.Fatalf("expected zero value, got %+v", cfg)
	}
}
