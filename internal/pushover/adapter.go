package pushover

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pushrelay/pushrelay/internal/logger"
)

// Credentials identify the provider application and the default recipient.
// Loaded once at startup and shared read-only; per-call overrides are derived
// copies and never mutate the shared value.
type Credentials struct {
	AppToken string
	UserKey  string
	Device   string
}

// WithOverride returns a copy of the credentials targeting a different user
// key and/or device. Empty arguments keep the corresponding default.
func (c Credentials) WithOverride(userKey, device string) Credentials {
	if userKey != "" {
		c.UserKey = userKey
	}
	if device != "" {
		c.Device = device
	}
	return c
}

// RateLimit mirrors the provider's application quota response headers.
// ResetEpoch is a Unix timestamp; callers convert it for display.
type RateLimit struct {
	Limit      int   `json:"limit"`
	Remaining  int   `json:"remaining"`
	ResetEpoch int64 `json:"reset"`
}

// DispatchResult is the normalized outcome of one accepted dispatch.
type DispatchResult struct {
	Success        bool       `json:"success"`
	ProviderStatus int        `json:"status"`
	RequestID      string     `json:"request"`
	Receipt        string     `json:"receipt,omitempty"`
	RateLimit      *RateLimit `json:"rate_limit,omitempty"`
}

// LimitsResult is the normalized outcome of a limits check.
type LimitsResult struct {
	Limit          int    `json:"limit"`
	Remaining      int    `json:"remaining"`
	ResetEpoch     int64  `json:"reset"`
	ProviderStatus int    `json:"status"`
	RequestID      string `json:"request"`
}

// ValidationResult is the provider's verdict on a user/group key.
type ValidationResult struct {
	ProviderStatus int      `json:"status"`
	Group          int      `json:"group"`
	Devices        []string `json:"devices"`
	Licenses       []string `json:"licenses"`
	RequestID      string   `json:"request"`
}

const (
	headerAppLimit     = "X-Limit-App-Limit"
	headerAppRemaining = "X-Limit-App-Remaining"
	headerAppReset     = "X-Limit-App-Reset"
)

// Adapter translates canonical options into provider requests and provider
// responses into normalized results. It holds no mutable state; each operation
// is a single request/response round trip with no local retry loop (emergency
// retries are driven by the provider, not this layer).
type Adapter struct {
	transport Transport
	baseURL   string
	logger    *logger.Logger
}

// NewAdapter creates a dispatch adapter issuing requests through transport.
func NewAdapter(transport Transport, baseURL string, logger *logger.Logger) *Adapter {
	return &Adapter{
		transport: transport,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// messageResponse is the provider's body shape for message and validation
// endpoints. Errors is populated on rejection.
type messageResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Receipt string   `json:"receipt"`
	Errors  []string `json:"errors"`
}

// Send dispatches a single notification. On provider rejection (status != 1,
// regardless of HTTP status) it returns a *ProviderError; on network, timeout
// or undecodable-body failure it returns a *TransportError.
func (a *Adapter) Send(ctx context.Context, opts CanonicalOptions, creds Credentials) (*DispatchResult, error) {
	log := a.logger.WithContext(ctx).WithComponent("pushover")

	resp, err := a.transport.Request(ctx, http.MethodPost, a.baseURL+"/messages.json", nil, opts.Form(creds))
	if err != nil {
		return nil, err
	}

	var body messageResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Err: err}
	}

	if body.Status != 1 {
		return nil, &ProviderError{
			Status:     body.Status,
			HTTPStatus: resp.StatusCode,
			Errors:     body.Errors,
			Body:       string(resp.Body),
		}
	}

	result := &DispatchResult{
		Success:        true,
		ProviderStatus: body.Status,
		RequestID:      body.Request,
		Receipt:        body.Receipt,
		RateLimit:      parseRateLimit(resp.Header),
	}

	if result.RateLimit != nil {
		log.Info("notification dispatched",
			slog.String("request", result.RequestID),
			slog.Int("remaining", result.RateLimit.Remaining))
	} else {
		log.Info("notification dispatched", slog.String("request", result.RequestID))
	}

	return result, nil
}

// CheckLimits fetches the application's current message quota.
func (a *Adapter) CheckLimits(ctx context.Context, creds Credentials) (*LimitsResult, error) {
	query := url.Values{}
	query.Set("token", creds.AppToken)

	resp, err := a.transport.Request(ctx, http.MethodGet, a.baseURL+"/apps/limits.json", query, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Limit     int      `json:"limit"`
		Remaining int      `json:"remaining"`
		Reset     int64    `json:"reset"`
		Status    int      `json:"status"`
		Request   string   `json:"request"`
		Errors    []string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Err: err}
	}

	if body.Status != 1 {
		return nil, &ProviderError{
			Status:     body.Status,
			HTTPStatus: resp.StatusCode,
			Errors:     body.Errors,
			Body:       string(resp.Body),
		}
	}

	return &LimitsResult{
		Limit:          body.Limit,
		Remaining:      body.Remaining,
		ResetEpoch:     body.Reset,
		ProviderStatus: body.Status,
		RequestID:      body.Request,
	}, nil
}

// ValidateUser asks the provider whether the credentials' user key is valid.
// The only local precondition is a non-empty user key; everything else is the
// provider's verdict, surfaced verbatim.
func (a *Adapter) ValidateUser(ctx context.Context, creds Credentials) (*ValidationResult, error) {
	if creds.UserKey == "" {
		return nil, &ValidationError{Field: "user", Reason: "user key is required"}
	}

	form := url.Values{}
	form.Set("token", creds.AppToken)
	form.Set("user", creds.UserKey)
	if creds.Device != "" {
		form.Set("device", creds.Device)
	}

	resp, err := a.transport.Request(ctx, http.MethodPost, a.baseURL+"/users/validate.json", nil, form)
	if err != nil {
		return nil, err
	}

	var body struct {
		Status   int      `json:"status"`
		Group    int      `json:"group"`
		Devices  []string `json:"devices"`
		Licenses []string `json:"licenses"`
		Request  string   `json:"request"`
		Errors   []string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Err: err}
	}

	if body.Status != 1 {
		return nil, &ProviderError{
			Status:     body.Status,
			HTTPStatus: resp.StatusCode,
			Errors:     body.Errors,
			Body:       string(resp.Body),
		}
	}

	return &ValidationResult{
		ProviderStatus: body.Status,
		Group:          body.Group,
		Devices:        body.Devices,
		Licenses:       body.Licenses,
		RequestID:      body.Request,
	}, nil
}

// parseRateLimit extracts the three quota headers. All three must parse;
// otherwise the result carries no rate-limit block.
func parseRateLimit(h http.Header) *RateLimit {
	limit, errLimit := strconv.Atoi(h.Get(headerAppLimit))
	remaining, errRemaining := strconv.Atoi(h.Get(headerAppRemaining))
	reset, errReset := strconv.ParseInt(h.Get(headerAppReset), 10, 64)
	if errLimit != nil || errRemaining != nil || errReset != nil {
		return nil
	}
	return &RateLimit{Limit: limit, Remaining: remaining, ResetEpoch: reset}
}
