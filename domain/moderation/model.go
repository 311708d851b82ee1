package moderation

import (
	"fmt"
	"sort"
	"strings"
)

// Model is a classification strength tier. ModelAuto is a request-time
// placeholder only: it must be resolved to a concrete model before any
// cost or classification logic runs.
type Model string

const (
	ModelAuto     Model = "auto"
	ModelObserver Model = "observer"
	ModelSentinel Model = "sentinel"
	ModelArbiter  Model = "arbiter"
)

// AllModels returns every model, including the Auto placeholder.
func AllModels() []Model {
	return []Model{ModelAuto, ModelObserver, ModelSentinel, ModelArbiter}
}

// ConcreteModels returns the models that can actually execute a
// classification, cheapest first.
func ConcreteModels() []Model {
	return []Model{ModelObserver, ModelSentinel, ModelArbiter}
}

// ParseModel parses a model name. Matching is case-insensitive.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(s)) {
	case ModelAuto:
		return ModelAuto, nil
	case ModelObserver:
		return ModelObserver, nil
	case ModelSentinel:
		return ModelSentinel, nil
	case ModelArbiter:
		return ModelArbiter, nil
	}
	return "", fmt.Errorf("%w: moderation model %q", ErrUnknownVariant, s)
}

// String returns the lowercase wire form.
func (m Model) String() string {
	return string(m)
}

// DisplayName returns the human-readable name.
func (m Model) DisplayName() string {
	switch m {
	case ModelAuto:
		return "Auto"
	case ModelObserver:
		return "Observer"
	case ModelSentinel:
		return "Sentinel"
	case ModelArbiter:
		return "Arbiter"
	default:
		return "Unknown"
	}
}

// IsAuto reports whether m is the Auto placeholder.
func (m Model) IsAuto() bool {
	return m == ModelAuto
}

// CreditsPerByte returns the credit cost per byte of classified text.
// Calling it on the Auto placeholder is a caller bug, not a runtime
// condition, and panics.
func (m Model) CreditsPerByte() int64 {
	switch m {
	case ModelObserver:
		return 1
	case ModelSentinel:
		return 3
	case ModelArbiter:
		return 9
	case ModelAuto:
		panic("moderation: CreditsPerByte called on the auto placeholder; resolve it first")
	}
	panic(fmt.Sprintf("moderation: CreditsPerByte called on unknown model %q", string(m)))
}

// Resolve returns the concrete model for a request. A concrete request is
// echoed unchanged; Auto is resolved against the credit budget.
func Resolve(request Model, remaining, max int64, allowed []Model) Model {
	if !request.IsAuto() {
		return request
	}
	return ResolveAuto(remaining, max, allowed)
}

// ResolveAuto picks a concrete model for an Auto request.
//
// The allowed models are sorted most expensive first and assigned
// triangular weights so that each model is reachable only while a
// proportionally large share of the monthly budget remains. With models
// Observer/Sentinel/Arbiter and a 1200-credit cap the thresholds are
// 1000 and 600: above 1000 remaining picks Arbiter, above 600 Sentinel,
// any positive balance Observer. Thresholds use integer division so
// boundary behavior is exact, and spend degrades from the best model to
// the cheapest as the balance drains instead of failing outright.
func ResolveAuto(remaining, max int64, allowed []Model) Model {
	concrete := make([]Model, 0, len(allowed))
	for _, m := range allowed {
		if !m.IsAuto() {
			concrete = append(concrete, m)
		}
	}
	if len(concrete) == 0 {
		return ModelObserver
	}

	sort.SliceStable(concrete, func(i, j int) bool {
		return concrete[i].CreditsPerByte() > concrete[j].CreditsPerByte()
	})

	n := int64(len(concrete))
	totalWeight := n * (n + 1) / 2

	// Walking best to worst, each rank drops the next weight from the
	// numerator: rank i requires remaining > (totalWeight - T(i+1)) * max / totalWeight.
	remainingWeight := totalWeight
	for i, m := range concrete {
		remainingWeight -= int64(i + 1)
		var threshold int64
		if max > 0 {
			threshold = remainingWeight * max / totalWeight
		}
		if remaining > threshold {
			return m
		}
	}

	// Nothing qualified (balance exhausted): cheapest model.
	return concrete[len(concrete)-1]
}
