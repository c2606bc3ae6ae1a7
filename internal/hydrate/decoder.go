// Package hydrate decodes the opaque extension data of a modal registration
// into a typed struct by round-tripping it through JSON.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context identifies the modal whose data is being decoded.
type Context struct {
	ModalID string
	Side    string
}

// PreHook may rewrite the payload before decoding. Returning nil keeps the
// current payload.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook may adjust or validate the decoded value.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts modal extension data into T.
type Decoder[T any] struct {
	preHooks  []PreHook
	postHooks []PostHook[T]
	useNumber bool
	strict    bool
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.postHooks = append(d.postHooks, hook)
		}
	}
}

// WithUseNumber decodes numbers into json.Number when the target is untyped.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.useNumber = true
	}
}

// WithDisallowUnknownFields rejects keys that have no matching field in T.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.strict = true
	}
}

// NewDecoder builds a Decoder from opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T. A nil payload decodes to the zero value so
// modals registered without extension data stay usable.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var result T
	current := payload
	if current == nil {
		current = map[string]any{}
	}

	for _, hook := range d.preHooks {
		next, err := hook(ctx, current)
		if err != nil {
			return result, fmt.Errorf("hydrate: pre-hook for modal %q: %w", ctx.ModalID, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return result, fmt.Errorf("hydrate: marshal data for modal %q: %w", ctx.ModalID, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	if d.useNumber {
		decoder.UseNumber()
	}
	if d.strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&result); err != nil {
		var zero T
		return zero, fmt.Errorf("hydrate: decode modal %q: %w", ctx.ModalID, err)
	}

	for _, hook := range d.postHooks {
		if err := hook(ctx, &result); err != nil {
			var zero T
			return zero, fmt.Errorf("hydrate: post-hook for modal %q: %w", ctx.ModalID, err)
		}
	}
	return result, nil
}
