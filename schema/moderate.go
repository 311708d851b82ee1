// Package schema defines the wire DTOs exchanged at the service
// boundaries: moderation requests, dashboard guild data, auth handoffs,
// billing summaries. DTOs carry plain strings on the wire and convert
// to and from the domain's typed enums.
package schema

import (
	"fmt"
	"time"

	"github.com/modgate/modgate/domain/moderation"
)

// ModerationRequest asks for a single text to be scored.
type ModerationRequest struct {
	Text           string   `json:"text"`
	Model          string   `json:"model,omitempty"`
	EnabledLabels  []string `json:"enabled_labels,omitempty"`
	IncludeContext bool     `json:"include_context"`
}

// BatchModerationRequest asks for several texts to be scored in one call.
type BatchModerationRequest struct {
	Texts          []string `json:"texts"`
	Model          string   `json:"model,omitempty"`
	EnabledLabels  []string `json:"enabled_labels,omitempty"`
	IncludeContext bool     `json:"include_context"`
}

// ToDomain converts the request to the domain form, validating the
// model and label names.
func (r ModerationRequest) ToDomain() (moderation.Request, error) {
	req := moderation.Request{
		Text:           r.Text,
		IncludeContext: r.IncludeContext,
	}

	if r.Model != "" {
		model, err := moderation.ParseModel(r.Model)
		if err != nil {
			return moderation.Request{}, err
		}
		req.Model = model
	}

	labels, err := ParseLabels(r.EnabledLabels)
	if err != nil {
		return moderation.Request{}, err
	}
	req.EnabledLabels = labels

	return req, nil
}

// ToDomain expands the batch into per-text domain requests, validating
// the shared model and label names once.
func (r BatchModerationRequest) ToDomain() ([]moderation.Request, error) {
	shared, err := ModerationRequest{
		Model:          r.Model,
		EnabledLabels:  r.EnabledLabels,
		IncludeContext: r.IncludeContext,
	}.ToDomain()
	if err != nil {
		return nil, err
	}

	out := make([]moderation.Request, len(r.Texts))
	for i, text := range r.Texts {
		req := shared
		req.Text = text
		out[i] = req
	}
	return out, nil
}

// ModerationResponse is the classifier verdict on the wire.
type ModerationResponse struct {
	Flagged       bool               `json:"flagged"`
	Labels        []string           `json:"labels"`
	Scores        map[string]float32 `json:"scores"`
	NeedsContext  *bool              `json:"needs_context,omitempty"`
	ContextLabels []string           `json:"context_labels,omitempty"`
}

// ToResult converts the wire verdict to a domain result, validating
// label names.
func (r ModerationResponse) ToResult() (moderation.Result, error) {
	res := moderation.Result{Flagged: r.Flagged}

	labels, err := ParseLabels(r.Labels)
	if err != nil {
		return moderation.Result{}, err
	}
	res.Labels = labels

	if len(r.Scores) > 0 {
		res.Scores = make(map[moderation.Label]float32, len(r.Scores))
		for name, score := range r.Scores {
			label, err := moderation.ParseLabel(name)
			if err != nil {
				return moderation.Result{}, fmt.Errorf("score %s: %w", name, err)
			}
			res.Scores[label] = score
		}
	}

	if r.NeedsContext != nil {
		res.NeedsContext = *r.NeedsContext
	}

	ctx, err := ParseLabels(r.ContextLabels)
	if err != nil {
		return moderation.Result{}, err
	}
	res.ContextLabels = ctx

	return res, nil
}

// FromResult converts a domain result to the wire form.
func FromResult(res moderation.Result) ModerationResponse {
	out := ModerationResponse{
		Flagged: res.Flagged,
		Labels:  LabelNames(res.Labels),
	}
	if len(res.Scores) > 0 {
		out.Scores = make(map[string]float32, len(res.Scores))
		for label, score := range res.Scores {
			out.Scores[label.String()] = score
		}
	}
	if res.NeedsContext {
		needs := true
		out.NeedsContext = &needs
	}
	out.ContextLabels = LabelNames(res.ContextLabels)
	return out
}

// ModerationLogEntry is the audit-trail record of one scored text.
type ModerationLogEntry struct {
	Text      string `json:"text"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

// NewLogEntry builds a log entry stamped with the given time.
func NewLogEntry(text, result string, at time.Time) ModerationLogEntry {
	return ModerationLogEntry{
		Text:      text,
		Result:    result,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// ParseLabels validates a list of wire label names.
func ParseLabels(names []string) ([]moderation.Label, error) {
	if len(names) == 0 {
		return nil, nil
	}
	labels := make([]moderation.Label, 0, len(names))
	for _, name := range names {
		label, err := moderation.ParseLabel(name)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// LabelNames renders labels in their wire form.
func LabelNames(labels []moderation.Label) []string {
	if len(labels) == 0 {
		return nil
	}
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = label.String()
	}
	return names
}
