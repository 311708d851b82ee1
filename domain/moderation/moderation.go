// Package moderation provides the moderation value types and pure decision
// functions: label, model and action enums with their string registries,
// auto-model resolution under a credit budget, and the mapping from a
// classification result to an enforcement decision.
// All functions are deterministic with no side effects.
package moderation

import "errors"

// ErrUnknownVariant is returned when an enum string does not match any
// known variant. Callers should surface it as a validation error.
var ErrUnknownVariant = errors.New("unknown variant")
