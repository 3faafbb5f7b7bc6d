// Package jsonmap converts JSON text to typed Go values and back.
//
// The package is self-contained: a hand-written tokenizer and recursive
// descent parser produce a dynamic Value tree, a streaming Writer emits text,
// and a coercion engine maps between Value trees and Go types described by
// TypeDescriptors. Descriptors carry closures for construction and field
// access, so the hot path never inspects struct layout at run time; the dsl
// subpackage builds them from plain Go accessors.
//
// A Context bundles the knobs of one conversion configuration: null member
// handling, the wire naming strategy, the date pattern, pretty printing and
// the adapter registry. Contexts are built once and are then safe for
// concurrent use:
//
//	ctx := jsonmap.NewContext().
//		SerializeNulls(true).
//		Indent("  ").
//		WithType(userDescriptor).
//		Build()
//
//	text, err := jsonmap.Encode(ctx, user)
//	back, err := jsonmap.Decode[User](ctx, []byte(text))
//
// Decoding is deliberately lenient in the small: numbers narrow with
// truncation, scalars lift into single-element sequences, enum names match
// case-insensitively as a last resort, and unknown object members are
// ignored. Structural mismatches and unparsable literals fail with typed
// errors carrying a JSON Pointer to the offending member.
package jsonmap
