// Package rules evaluates small boolean expressions used to guard modal
// interactions. Three engines are available: expr (default), CEL and JS; the
// JS engine requires the js_eval build tag.
package rules

import "time"

// RuleContext carries the inputs visible to an expression.
type RuleContext struct {
	// Modal is the binding for the modal under evaluation. Each key becomes a
	// top level variable.
	Modal    map[string]any
	Stack    []string
	Args     map[string]any
	Metadata map[string]any
	Now      *time.Time
	// Label identifies the evaluation in errors and logs, usually the modal id.
	Label string
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	if ctx.Modal == nil {
		ctx.Modal = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return *ctx.Now
}

func (ctx RuleContext) label() string {
	if ctx.Label != "" {
		return ctx.Label
	}
	return "unknown"
}

// stackBinding returns the stack as []any so every engine can index it.
func (ctx RuleContext) stackBinding() []any {
	out := make([]any, len(ctx.Stack))
	for i, id := range ctx.Stack {
		out[i] = id
	}
	return out
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// Engine reports the engine name of a built-in evaluator, or "custom".
func Engine(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if named, ok := e.(interface{ engine() string }); ok {
			return named.engine()
		}
		return "custom"
	}
}

// EvaluateBool runs expr and requires a boolean result.
func EvaluateBool(e Evaluator, ctx RuleContext, expr string) (bool, error) {
	if e == nil {
		return false, ErrNoEvaluator
	}
	value, err := e.Evaluate(ctx, expr)
	if err != nil {
		return false, wrapEvaluationError(Engine(e), expr, ctx.label(), err)
	}
	result, ok := value.(bool)
	if !ok {
		return false, wrapEvaluationError(Engine(e), expr, ctx.label(), nonBoolResult(value))
	}
	return result, nil
}
