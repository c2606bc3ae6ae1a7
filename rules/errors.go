package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvaluator is returned when a guard runs without an evaluator.
	ErrNoEvaluator = errors.New("rules: evaluator not configured")
	// ErrEmptyExpression is returned for blank expressions.
	ErrEmptyExpression = errors.New("rules: expression must not be empty")
	// ErrNonBoolean is returned when a guard does not produce a boolean.
	ErrNonBoolean = errors.New("rules: expression did not return a boolean")
)

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Label  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("rules: %s evaluator %s modal=%s: %v", e.Engine, describeExpression(e.Expr), e.Label, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func nonBoolResult(value any) error {
	return fmt.Errorf("%w: got %T", ErrNonBoolean, value)
}

func wrapEngineError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "rules:") {
		return err
	}
	return fmt.Errorf("rules: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches metadata, filling gaps on an existing
// EvaluationError instead of nesting a second one.
func wrapEvaluationError(engine, expr, label string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Label == "" {
			evalErr.Label = label
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Label:  label,
		Err:    err,
	}
}
