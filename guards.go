package modals

import (
	"context"
	"fmt"
	"slices"

	"github.com/goliatone/go-modals/pkg/activity"
	"github.com/goliatone/go-modals/rules"
)

// HandleEscape closes the active modal in response to an escape key press
// when CloseOnEscape is enabled and the modal's close guard allows it. It
// reports whether a modal was closed.
func (m *Manager) HandleEscape(ctx context.Context) (bool, error) {
	return m.handleInteraction(ctx, "escape", func(s Settings) bool { return s.CloseOnEscape })
}

// HandleOverlayClick closes the active modal in response to an overlay click
// when CloseOnOverlayClick is enabled and the close guard allows it.
func (m *Manager) HandleOverlayClick(ctx context.Context) (bool, error) {
	return m.handleInteraction(ctx, "overlay", func(s Settings) bool { return s.CloseOnOverlayClick })
}

func (m *Manager) handleInteraction(ctx context.Context, reason string, enabled func(Settings) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	allowed := enabled(m.settings)
	active := ""
	if len(m.stack) > 0 {
		active = m.stack[len(m.stack)-1]
	}
	m.mu.RUnlock()

	if !allowed || active == "" {
		return false, nil
	}
	return m.guardedClose(ctx, active, reason, true)
}

// RequestClose closes id after its close guard allows it. Unknown or closed
// ids return false without error.
func (m *Manager) RequestClose(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return m.guardedClose(ctx, id, "request", false)
}

// guardedClose evaluates the guard outside the lock and then closes id only if
// the stack still holds it (and, when topOnly, still holds it on top).
func (m *Manager) guardedClose(ctx context.Context, id, reason string, topOnly bool) (bool, error) {
	m.mu.RLock()
	reg, registered := m.registry[id]
	index := m.indexLocked(id)
	stack := m.stackLocked()
	m.mu.RUnlock()

	if !registered || index < 0 {
		return false, nil
	}

	if reg.CloseGuard != "" {
		allowed, err := m.evaluateGuard(reg, index, stack)
		if err != nil {
			m.cfg.logger.Log(LogEvent{
				Level:   LevelError,
				Message: "close guard evaluation failed",
				ModalID: id,
				Err:     err,
			})
			return false, fmt.Errorf("%w: %w", ErrGuardFailed, err)
		}
		if !allowed {
			m.cfg.logger.Log(LogEvent{
				Level:   LevelDebug,
				Message: "close guard rejected close",
				ModalID: id,
				Fields:  map[string]any{"reason": reason},
			})
			return false, nil
		}
	}

	m.mu.Lock()
	current := m.indexLocked(id)
	if current < 0 || (topOnly && current != len(m.stack)-1) {
		m.mu.Unlock()
		return false, nil
	}
	m.stack = slices.Delete(m.stack, current, current+1)
	batch := m.newBatch()
	batch.add(ChangeClosed, id, activity.BuildModalClosedEvent(activity.ModalEventInput{
		ModalID: id,
		Stack:   m.stackLocked(),
		Reason:  reason,
	}))
	m.mu.Unlock()

	m.dispatchContext(ctx, batch)
	return true, nil
}

func (m *Manager) evaluateGuard(reg Registration, index int, stack []string) (bool, error) {
	evaluator := m.cfg.evaluator
	if evaluator == nil {
		evaluator = defaultGuardEvaluator
	}
	extra := reg.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	ctx := rules.RuleContext{
		Modal: map[string]any{
			"id":     reg.ID,
			"side":   string(reg.DeclaredSide()),
			"index":  index,
			"depth":  len(stack),
			"active": index == len(stack)-1,
			"extra":  extra,
		},
		Stack: stack,
		Label: reg.ID,
	}
	return rules.EvaluateBool(evaluator, ctx, reg.CloseGuard)
}

var defaultGuardEvaluator = rules.NewExprEvaluator(rules.ExprWithProgramCache(rules.NewMemoryCache()))
