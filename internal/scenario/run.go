package scenario

import (
	"context"
	"fmt"

	modals "github.com/goliatone/go-modals"
)

// StepResult records the stack after one step.
type StepResult struct {
	Index  int      `json:"index"`
	Action string   `json:"action"`
	Target string   `json:"target,omitempty"`
	Stack  []string `json:"stack"`
	Closed *bool    `json:"closed,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a replay.
type Result struct {
	Name   string        `json:"name,omitempty"`
	Steps  []StepResult  `json:"steps"`
	Layout modals.Layout `json:"layout"`
}

// Run replays sc on a fresh Manager built from opts. Scenario settings are
// layered over whatever settings opts establish. Guard failures are recorded
// on the step and do not stop the replay.
func Run(ctx context.Context, sc Scenario, opts ...modals.Option) (Result, *modals.Manager, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, nil, err
	}
	evaluator, err := sc.evaluator()
	if err != nil {
		return Result{}, nil, err
	}

	options := append([]modals.Option{}, opts...)
	options = append(options,
		modals.WithSettingsPatch(sc.Settings),
		modals.WithGuardEvaluator(evaluator),
		modals.WithBaseContext(ctx),
	)
	mgr := modals.New(options...)
	for _, m := range sc.Modals {
		mgr.Register(m.ID, m.config())
	}

	result := Result{Name: sc.Name, Steps: make([]StepResult, 0, len(sc.Steps))}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return result, mgr, err
		}
		outcome := StepResult{Index: i, Action: step.Action()}
		if err := apply(ctx, mgr, step, &outcome); err != nil {
			outcome.Error = err.Error()
		}
		outcome.Stack = mgr.Stack()
		result.Steps = append(result.Steps, outcome)
	}
	result.Layout = mgr.Layout()
	return result, mgr, nil
}

func apply(ctx context.Context, mgr *modals.Manager, step Step, outcome *StepResult) error {
	guarded := func(closed bool, err error) error {
		outcome.Closed = &closed
		return err
	}

	switch outcome.Action {
	case "open":
		outcome.Target = step.Open
		mgr.Open(step.Open)
	case "close":
		outcome.Target = step.Close
		mgr.Close(step.Close)
	case "back":
		mgr.GoBack()
	case "close_all":
		mgr.CloseAll()
	case "sync":
		outcome.Target = step.Sync.ID
		mgr.SyncWithFlag(step.Sync.ID, step.Sync.Open)
	case "configure":
		mgr.Configure(*step.Configure)
	case "escape":
		return guarded(mgr.HandleEscape(ctx))
	case "overlay":
		return guarded(mgr.HandleOverlayClick(ctx))
	case "request_close":
		outcome.Target = step.RequestClose
		return guarded(mgr.RequestClose(ctx, step.RequestClose))
	case "register":
		outcome.Target = step.Register.ID
		mgr.Register(step.Register.ID, step.Register.config())
	case "unregister":
		outcome.Target = step.Unregister
		mgr.Unregister(step.Unregister)
	default:
		return fmt.Errorf("scenario: unsupported action %q", outcome.Action)
	}
	return nil
}
