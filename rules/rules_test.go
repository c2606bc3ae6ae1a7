package rules

import (
	"errors"
	"strings"
	"testing"
)

func guardContext() RuleContext {
	return RuleContext{
		Modal: map[string]any{
			"id":     "checkout",
			"side":   "right",
			"depth":  2,
			"index":  1,
			"active": true,
			"extra":  map[string]any{"dirty": false, "step": 3},
		},
		Stack: []string{"cart", "checkout"},
		Label: "checkout",
	}
}

func TestEvaluatorsAgreeOnGuards(t *testing.T) {
	evaluators := map[string]Evaluator{
		"expr": NewExprEvaluator(),
		"cel":  NewCELEvaluator(),
	}
	cases := []struct {
		expr string
		want bool
	}{
		{expr: "depth > 1", want: true},
		{expr: "extra.dirty == false", want: true},
		{expr: "side == 'left'", want: false},
		{expr: "active && id == 'checkout'", want: true},
		{expr: "size(stack) == 2", want: true},
	}

	for name, evaluator := range evaluators {
		for _, tc := range cases {
			expression := tc.expr
			if name == "expr" {
				expression = strings.ReplaceAll(expression, "size(stack)", "len(stack)")
			}
			t.Run(name+"/"+expression, func(t *testing.T) {
				got, err := EvaluateBool(evaluator, guardContext(), expression)
				if err != nil {
					t.Fatalf("evaluate: %v", err)
				}
				if got != tc.want {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			})
		}
	}
}

func TestEvaluateBoolRejectsNonBoolean(t *testing.T) {
	_, err := EvaluateBool(NewExprEvaluator(), guardContext(), "depth + 1")
	if !errors.Is(err, ErrNonBoolean) {
		t.Fatalf("expected ErrNonBoolean, got %v", err)
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Label != "checkout" {
		t.Fatalf("unexpected metadata: %+v", evalErr)
	}
}

func TestEvaluateBoolWithoutEvaluator(t *testing.T) {
	if _, err := EvaluateBool(nil, guardContext(), "true"); !errors.Is(err, ErrNoEvaluator) {
		t.Fatalf("expected ErrNoEvaluator, got %v", err)
	}
}

func TestEmptyExpressionRejected(t *testing.T) {
	for name, evaluator := range map[string]Evaluator{"expr": NewExprEvaluator(), "cel": NewCELEvaluator()} {
		if _, err := evaluator.Evaluate(guardContext(), ""); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("%s: expected ErrEmptyExpression, got %v", name, err)
		}
		if _, err := evaluator.Compile(""); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("%s: expected ErrEmptyExpression on compile, got %v", name, err)
		}
	}
}

func TestCompiledRulesReuseProgram(t *testing.T) {
	cache := NewMemoryCache()
	evaluator := NewExprEvaluator(ExprWithProgramCache(cache))

	rule, err := evaluator.Compile("index == 1")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := cache.Get(cacheKey("expr", "index == 1")); !ok {
		t.Fatalf("expected compiled program cached")
	}
	got, err := rule.Evaluate(guardContext())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != true {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestCELCacheKeysIncludeBindingShape(t *testing.T) {
	cache := NewMemoryCache()
	evaluator := NewCELEvaluator(CELWithProgramCache(cache))

	if _, err := evaluator.Evaluate(guardContext(), "depth == 2"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	other := RuleContext{Modal: map[string]any{"depth": 5, "id": "x"}}
	got, err := evaluator.Evaluate(other, "depth == 2")
	if err != nil {
		t.Fatalf("evaluate with different bindings: %v", err)
	}
	if got != false {
		t.Fatalf("expected false, got %v", got)
	}
}

func TestCustomFunctionsAcrossEvaluators(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("isWizard", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("isWizard expects one argument")
		}
		id, _ := args[0].(string)
		return strings.HasPrefix(id, "wizard-"), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("isWizard", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	ctx := RuleContext{Modal: map[string]any{"id": "wizard-step-1"}}

	exprEval := NewExprEvaluator(ExprWithFunctionRegistry(registry))
	got, err := EvaluateBool(exprEval, ctx, "isWizard(id)")
	if err != nil || !got {
		t.Fatalf("expr: expected true, got %v err=%v", got, err)
	}
	got, err = EvaluateBool(exprEval, ctx, "call('isWizard', id)")
	if err != nil || !got {
		t.Fatalf("expr call: expected true, got %v err=%v", got, err)
	}

	celEval := NewCELEvaluator(CELWithFunctionRegistry(registry))
	got, err = EvaluateBool(celEval, ctx, "call('isWizard', id)")
	if err != nil || !got {
		t.Fatalf("cel: expected true, got %v err=%v", got, err)
	}
}

func TestFunctionRegistryNamesSortedAndCaseInsensitive(t *testing.T) {
	registry := NewFunctionRegistry()
	_ = registry.Register("Zeta", func(...any) (any, error) { return 1, nil })
	_ = registry.Register("alpha", func(...any) (any, error) { return 2, nil })

	names := registry.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("unexpected names: %v", names)
	}
	if v, err := registry.Call("ZETA"); err != nil || v != 1 {
		t.Fatalf("expected case-insensitive call, got %v err=%v", v, err)
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected error for missing function")
	}
}

func TestEngineNames(t *testing.T) {
	if Engine(NewExprEvaluator()) != "expr" {
		t.Fatalf("expected expr engine name")
	}
	if Engine(NewCELEvaluator()) != "cel" {
		t.Fatalf("expected cel engine name")
	}
	if Engine(nil) != "unknown" {
		t.Fatalf("expected unknown for nil evaluator")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: "expr", Err: base}

	err := wrapEvaluationError("cel", "depth > 1", "wizard", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "depth > 1" || existing.Label != "wizard" {
		t.Fatalf("expected gaps filled, got %+v", existing)
	}
}
