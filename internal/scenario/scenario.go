// Package scenario parses and replays scripted modal interactions. modalctl
// uses it to reproduce stacking bugs from a YAML file.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	modals "github.com/goliatone/go-modals"
	"github.com/goliatone/go-modals/rules"
)

var ErrInvalidScenario = errors.New("scenario: invalid")

// Scenario is the document replayed by Run.
type Scenario struct {
	Name     string               `yaml:"name"`
	Engine   string               `yaml:"engine"`
	Settings modals.SettingsPatch `yaml:"settings"`
	Modals   []Modal              `yaml:"modals"`
	Steps    []Step               `yaml:"steps"`
}

// Modal is a registration declared up front.
type Modal struct {
	ID         string         `yaml:"id"`
	Side       string         `yaml:"side"`
	CloseGuard string         `yaml:"close_guard"`
	Extra      map[string]any `yaml:"extra"`
}

// Sync mirrors Manager.SyncWithFlag.
type Sync struct {
	ID   string `yaml:"id"`
	Open bool   `yaml:"open"`
}

// Step holds exactly one action.
type Step struct {
	Open         string                `yaml:"open,omitempty"`
	Close        string                `yaml:"close,omitempty"`
	Back         bool                  `yaml:"back,omitempty"`
	CloseAll     bool                  `yaml:"close_all,omitempty"`
	Sync         *Sync                 `yaml:"sync,omitempty"`
	Configure    *modals.SettingsPatch `yaml:"configure,omitempty"`
	Escape       bool                  `yaml:"escape,omitempty"`
	Overlay      bool                  `yaml:"overlay,omitempty"`
	RequestClose string                `yaml:"request_close,omitempty"`
	Register     *Modal                `yaml:"register,omitempty"`
	Unregister   string                `yaml:"unregister,omitempty"`
}

// Action names the single action set on s, or "" when none or several are.
func (s Step) Action() string {
	var actions []string
	add := func(set bool, name string) {
		if set {
			actions = append(actions, name)
		}
	}
	add(s.Open != "", "open")
	add(s.Close != "", "close")
	add(s.Back, "back")
	add(s.CloseAll, "close_all")
	add(s.Sync != nil, "sync")
	add(s.Configure != nil, "configure")
	add(s.Escape, "escape")
	add(s.Overlay, "overlay")
	add(s.RequestClose != "", "request_close")
	add(s.Register != nil, "register")
	add(s.Unregister != "", "unregister")
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// Load reads a scenario file.
func Load(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a scenario document.
func Decode(r io.Reader) (Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks modal declarations and that every step holds one action.
func (sc Scenario) Validate() error {
	if _, err := sc.evaluator(); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for i, m := range sc.Modals {
		if err := m.validate(); err != nil {
			return fmt.Errorf("%w: modals[%d]: %w", ErrInvalidScenario, i, err)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: modals[%d]: duplicate id %q", ErrInvalidScenario, i, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	for i, step := range sc.Steps {
		if step.Action() == "" {
			return fmt.Errorf("%w: steps[%d]: expected exactly one action", ErrInvalidScenario, i)
		}
		if step.Register != nil {
			if err := step.Register.validate(); err != nil {
				return fmt.Errorf("%w: steps[%d]: %w", ErrInvalidScenario, i, err)
			}
		}
		if step.Sync != nil && step.Sync.ID == "" {
			return fmt.Errorf("%w: steps[%d]: sync requires an id", ErrInvalidScenario, i)
		}
	}
	return nil
}

func (m Modal) validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("id is required")
	}
	_, err := modals.ParseSide(m.Side)
	return err
}

func (m Modal) config() modals.RegistrationConfig {
	side, _ := modals.ParseSide(m.Side)
	return modals.RegistrationConfig{
		Side:       side,
		CloseGuard: m.CloseGuard,
		Extra:      m.Extra,
	}
}

func (sc Scenario) evaluator() (rules.Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(sc.Engine)) {
	case "", "expr":
		return rules.NewExprEvaluator(rules.ExprWithProgramCache(rules.NewMemoryCache())), nil
	case "cel":
		return rules.NewCELEvaluator(rules.CELWithProgramCache(rules.NewMemoryCache())), nil
	case "js":
		if !rules.JSAvailable() {
			return nil, fmt.Errorf("%w: js engine requires a build with -tags js_eval", ErrInvalidScenario)
		}
		return rules.NewJSEvaluator(rules.JSWithProgramCache(rules.NewMemoryCache())), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrInvalidScenario, sc.Engine)
	}
}
