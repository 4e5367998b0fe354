package relay

import (
	"context"
	"strings"
	"time"

	"github.com/pushrelay/pushrelay/internal/logger"
	"github.com/pushrelay/pushrelay/internal/pushover"
)

const (
	ServiceName = "Push Relay API Server"
	Version     = "1.0.0"
)

// Service orchestrates normalization and dispatch for both the REST and
// GraphQL surfaces, so the two stay behaviorally consistent.
type Service struct {
	adapter *pushover.Adapter
	creds   pushover.Credentials
	logger  *logger.Logger
}

// NewService creates a relay service bound to the process-wide credentials.
func NewService(adapter *pushover.Adapter, creds pushover.Credentials, logger *logger.Logger) *Service {
	return &Service{
		adapter: adapter,
		creds:   creds,
		logger:  logger,
	}
}

// SendRequest is the caller-facing option set shared by both surfaces. Pointer
// fields distinguish "absent" from zero values so absent fields never reach
// the provider.
type SendRequest struct {
	Message          string  `json:"message"`
	Title            *string `json:"title,omitempty"`
	Priority         *int    `json:"priority,omitempty"`
	URL              *string `json:"url,omitempty"`
	URLTitle         *string `json:"url_title,omitempty"`
	HTML             *bool   `json:"html,omitempty"`
	Device           *string `json:"device,omitempty"`
	Sound            *string `json:"sound,omitempty"`
	TTL              *int    `json:"ttl,omitempty"`
	Expire           *int    `json:"expire,omitempty"`
	Retry            *int    `json:"retry,omitempty"`
	Timestamp        *int64  `json:"timestamp,omitempty"`
	Callback         *string `json:"callback,omitempty"`
	Attachment       *string `json:"attachment,omitempty"`
	AttachmentBase64 *string `json:"attachment_base64,omitempty"`
	AttachmentType   *string `json:"attachment_type,omitempty"`
}

func (r SendRequest) options() pushover.Options {
	return pushover.Options{
		Title:            r.Title,
		Priority:         r.Priority,
		URL:              r.URL,
		URLTitle:         r.URLTitle,
		HTML:             r.HTML,
		Device:           r.Device,
		Sound:            r.Sound,
		TTL:              r.TTL,
		Expire:           r.Expire,
		Retry:            r.Retry,
		Timestamp:        r.Timestamp,
		Callback:         r.Callback,
		Attachment:       r.Attachment,
		AttachmentBase64: r.AttachmentBase64,
		AttachmentType:   r.AttachmentType,
	}
}

// Dispatch normalizes the option layers and sends a single notification with
// the shared credentials. Layer order expresses precedence: defaults first,
// caller fields next, forced fields last.
func (s *Service) Dispatch(ctx context.Context, message string, layers ...pushover.Options) (*pushover.DispatchResult, error) {
	opts, err := pushover.Normalize(message, layers...)
	if err != nil {
		return nil, err
	}
	return s.adapter.Send(ctx, opts, s.creds)
}

// SendNotification dispatches a plain notification with caller options only.
func (s *Service) SendNotification(ctx context.Context, req SendRequest) (*pushover.DispatchResult, error) {
	return s.Dispatch(ctx, req.Message, req.options())
}

// SendEmergency forces emergency priority and the siren sound regardless of
// caller input. Expire and retry default to 3600s/60s per provider semantics
// but remain caller-overridable, as do url, title and callback.
func (s *Service) SendEmergency(ctx context.Context, req SendRequest) (*pushover.DispatchResult, error) {
	expire, retry := 3600, 60
	defaults := pushover.Options{Expire: &expire, Retry: &retry}

	emergency, siren := 2, "siren"
	forced := pushover.Options{Priority: &emergency, Sound: &siren}

	return s.Dispatch(ctx, req.Message, defaults, req.options(), forced)
}

// SendTemplate dispatches with a template's defaults below the caller fields.
// In strict mode an unrecognized template is rejected; otherwise it falls back
// to the default "notification" descriptor.
func (s *Service) SendTemplate(ctx context.Context, template string, req SendRequest, strict bool) (*pushover.DispatchResult, error) {
	if strict && !pushover.KnownTemplate(template) {
		return nil, &pushover.ValidationError{
			Field:  "template",
			Reason: "unknown template, available templates: " + strings.Join(pushover.TemplateNames(), ", "),
		}
	}

	d := pushover.ResolveTemplate(template)
	defaults := pushover.Options{Title: &d.Title, Priority: &d.Priority, Sound: &d.Sound}

	return s.Dispatch(ctx, req.Message, defaults, req.options())
}

// SendByCategory dispatches with a category's defaults. The generated title is
// the category icon plus the capitalized category name unless the caller
// supplies one.
func (s *Service) SendByCategory(ctx context.Context, category, message string, title *string, priority *int) (*pushover.DispatchResult, error) {
	d := pushover.ResolveCategory(category)

	defaultTitle := d.Icon + " " + capitalize(category)
	defaults := pushover.Options{Title: &defaultTitle, Priority: &d.Priority, Sound: &d.Sound}
	caller := pushover.Options{Title: title, Priority: priority}

	return s.Dispatch(ctx, message, defaults, caller)
}

// SendBatch dispatches the requests sequentially with the shared credentials,
// preserving input order and isolating per-item failures.
func (s *Service) SendBatch(ctx context.Context, requests []SendRequest, delay time.Duration) *pushover.BatchResult {
	items := make([]pushover.BatchItem, 0, len(requests))
	for _, req := range requests {
		items = append(items, pushover.BatchItem{Message: req.Message, Options: req.options()})
	}
	return s.adapter.SendBatch(ctx, items, delay, s.creds)
}

// ValidateUser validates the given user key (or the configured default when
// empty) against the provider. The override is a derived credential set; the
// shared default is never mutated.
func (s *Service) ValidateUser(ctx context.Context, user, device string) (*pushover.ValidationResult, error) {
	return s.adapter.ValidateUser(ctx, s.creds.WithOverride(user, device))
}

// CheckLimits fetches the application's remaining message quota.
func (s *Service) CheckLimits(ctx context.Context) (*pushover.LimitsResult, error) {
	return s.adapter.CheckLimits(ctx, s.creds)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
