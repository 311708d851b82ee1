// Package classifier provides the HTTP adapter for the external
// text-classification service.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/modgate/modgate/domain/moderation"
	"github.com/modgate/modgate/ports"
	"github.com/modgate/modgate/schema"
)

const moderateEndpoint = "/v1/moderate"

// Options configures the HTTP classifier.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTP calls a remote classifier over its JSON API. Retry and timeout
// policy live here; the decision core never sees network details.
type HTTP struct {
	client *resty.Client
}

// New creates an HTTP classifier.
func New(opt Options) (*HTTP, error) {
	if strings.TrimSpace(opt.BaseURL) == "" {
		return nil, errors.New("classifier: base URL is required")
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opt.BaseURL, "/")).
		SetTimeout(opt.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	if opt.APIKey != "" {
		client.SetAuthToken(opt.APIKey)
	}

	return &HTTP{client: client}, nil
}

// Classify scores a text with a concrete model.
func (h *HTTP) Classify(ctx context.Context, req moderation.Request) (moderation.Result, error) {
	if req.Model.IsAuto() || req.Model == "" {
		return moderation.Result{}, errors.New("classifier: model must be concrete")
	}

	wire := schema.ModerationRequest{
		Text:           req.Text,
		Model:          req.Model.String(),
		EnabledLabels:  schema.LabelNames(req.EnabledLabels),
		IncludeContext: req.IncludeContext,
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(wire).
		Post(moderateEndpoint)
	if err != nil {
		return moderation.Result{}, fmt.Errorf("classifier: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return moderation.Result{}, fmt.Errorf("classifier: status %d: %s", resp.StatusCode(), resp.String())
	}

	// Decode the body ourselves: relying on the upstream Content-Type
	// header would turn a mislabelled 200 into an all-clear verdict.
	var out schema.ModerationResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return moderation.Result{}, fmt.Errorf("classifier: decode response: %w", err)
	}

	result, err := out.ToResult()
	if err != nil {
		return moderation.Result{}, fmt.Errorf("classifier: %w", err)
	}
	return result, nil
}

// Ensure interface compliance.
var _ ports.Classifier = (*HTTP)(nil)
