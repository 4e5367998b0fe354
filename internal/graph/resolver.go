package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/pushrelay/pushrelay/internal/logger"
	"github.com/pushrelay/pushrelay/internal/pushover"
	"github.com/pushrelay/pushrelay/internal/relay"
)

// Resolver holds the dependencies of the GraphQL surface. Both surfaces share
// the relay service, so REST and GraphQL stay behaviorally consistent.
type Resolver struct {
	Service *relay.Service
	Logger  *logger.Logger
}

// resolverError carries structured provider details into the GraphQL error
// extensions (gqlerrors picks up the Extensions method).
type resolverError struct {
	msg        string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string { return e.msg }

func (e *resolverError) Extensions() map[string]interface{} { return e.extensions }

// wrapErr translates the dispatch error taxonomy into GraphQL errors. The
// transport cause stays in the server logs; callers only see a generic
// message for those.
func (r *Resolver) wrapErr(ctx context.Context, op string, err error) error {
	var validationErr *pushover.ValidationError
	if errors.As(err, &validationErr) {
		return &resolverError{
			msg: fmt.Sprintf("Failed to %s: %s", op, validationErr.Error()),
			extensions: map[string]interface{}{
				"code":  "VALIDATION_ERROR",
				"field": validationErr.Field,
			},
		}
	}

	var providerErr *pushover.ProviderError
	if errors.As(err, &providerErr) {
		return &resolverError{
			msg: fmt.Sprintf("Failed to %s: %s", op, providerErr.Error()),
			extensions: map[string]interface{}{
				"code":           "PROVIDER_ERROR",
				"providerStatus": providerErr.Status,
				"providerErrors": providerErr.Errors,
			},
		}
	}

	var transportErr *pushover.TransportError
	if errors.As(err, &transportErr) {
		r.Logger.WithContext(ctx).WithComponent("graphql").Error("provider transport failure",
			slog.String("operation", op),
			slog.String("kind", string(transportErr.Kind)),
			slog.String("error", transportErr.Error()))
		return &resolverError{
			msg: fmt.Sprintf("Failed to %s: provider unreachable", op),
			extensions: map[string]interface{}{
				"code": "TRANSPORT_ERROR",
				"kind": string(transportErr.Kind),
			},
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// notificationData shapes a dispatch result for the NotificationResponse type.
func notificationData(res *pushover.DispatchResult) map[string]interface{} {
	data := map[string]interface{}{
		"status":  res.ProviderStatus,
		"request": res.RequestID,
	}
	if res.Receipt != "" {
		data["receipt"] = res.Receipt
	}
	if res.RateLimit != nil {
		data["rateLimit"] = map[string]interface{}{
			"limit":     res.RateLimit.Limit,
			"remaining": res.RateLimit.Remaining,
			"reset":     res.RateLimit.ResetEpoch,
		}
	}
	return data
}

func sendResponse(res *pushover.DispatchResult, message string) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"status":  1,
		"data":    notificationData(res),
		"message": message,
	}
}

// Optional-argument helpers: absent or null args stay nil so the normalizer
// never sees them.

func optString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optInt64(args map[string]interface{}, key string) *int64 {
	if v, ok := args[key].(int); ok {
		v64 := int64(v)
		return &v64
	}
	return nil
}

func optBool(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func sendRequestFromInput(input map[string]interface{}) relay.SendRequest {
	req := relay.SendRequest{}
	if v, ok := input["message"].(string); ok {
		req.Message = v
	}
	req.Title = optString(input, "title")
	req.Priority = optInt(input, "priority")
	req.URL = optString(input, "url")
	req.URLTitle = optString(input, "url_title")
	req.HTML = optBool(input, "html")
	req.Device = optString(input, "device")
	req.Sound = optString(input, "sound")
	req.TTL = optInt(input, "ttl")
	req.Expire = optInt(input, "expire")
	req.Retry = optInt(input, "retry")
	req.Timestamp = optInt64(input, "timestamp")
	req.Callback = optString(input, "callback")
	req.Attachment = optString(input, "attachment")
	req.AttachmentBase64 = optString(input, "attachment_base64")
	req.AttachmentType = optString(input, "attachment_type")
	return req
}

// Query resolvers.

func (r *Resolver) resolveHealth(p graphql.ResolveParams) (interface{}, error) {
	return map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   relay.ServiceName,
		"version":   relay.Version,
	}, nil
}

func (r *Resolver) resolveLimits(p graphql.ResolveParams) (interface{}, error) {
	limits, err := r.Service.CheckLimits(p.Context)
	if err != nil {
		return nil, r.wrapErr(p.Context, "check limits", err)
	}
	return map[string]interface{}{
		"limit":     limits.Limit,
		"remaining": limits.Remaining,
		"reset":     limits.ResetEpoch,
		"status":    limits.ProviderStatus,
		"request":   limits.RequestID,
	}, nil
}

// Mutation resolvers.

func (r *Resolver) resolveSendNotification(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})
	req := sendRequestFromInput(input)

	res, err := r.Service.SendNotification(p.Context, req)
	if err != nil {
		return nil, r.wrapErr(p.Context, "send notification", err)
	}
	return sendResponse(res, "Notification sent successfully"), nil
}

func (r *Resolver) resolveSendEmergency(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})
	req := sendRequestFromInput(input)

	res, err := r.Service.SendEmergency(p.Context, req)
	if err != nil {
		return nil, r.wrapErr(p.Context, "send emergency alert", err)
	}
	return sendResponse(res, "Emergency alert sent successfully"), nil
}

// resolveSendTemplate uses fallback semantics: the template argument is a
// schema enum, so free-form typos are already rejected by the executor and an
// unknown value can only arrive through resolver reuse.
func (r *Resolver) resolveSendTemplate(p graphql.ResolveParams) (interface{}, error) {
	template, _ := p.Args["template"].(string)
	input, _ := p.Args["input"].(map[string]interface{})
	req := sendRequestFromInput(input)

	res, err := r.Service.SendTemplate(p.Context, template, req, false)
	if err != nil {
		return nil, r.wrapErr(p.Context, "send template notification", err)
	}

	out := sendResponse(res, "Notification sent successfully")
	out["template"] = template
	return out, nil
}

func (r *Resolver) resolveSendBatch(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	rawItems, _ := input["notifications"].([]interface{})
	requests := make([]relay.SendRequest, 0, len(rawItems))
	for _, raw := range rawItems {
		item, _ := raw.(map[string]interface{})
		requests = append(requests, sendRequestFromInput(item))
	}

	delayMillis := 1000
	if v, ok := input["delay"].(int); ok {
		delayMillis = v
	}

	batch := r.Service.SendBatch(p.Context, requests, time.Duration(delayMillis)*time.Millisecond)

	slots := make([]interface{}, 0, len(batch.Results))
	for _, slot := range batch.Results {
		if slot.Result != nil {
			entry := notificationData(slot.Result)
			entry["success"] = true
			slots = append(slots, entry)
			continue
		}
		slots = append(slots, map[string]interface{}{
			"success": false,
			"error":   slot.Error,
		})
	}

	return map[string]interface{}{
		"success": true,
		"status":  1,
		"data":    slots,
		"message": fmt.Sprintf("Batch notification completed. Sent: %d, Failed: %d", batch.Sent, batch.Failed),
		"sent":    batch.Sent,
		"failed":  batch.Failed,
	}, nil
}

func (r *Resolver) resolveValidateUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})
	user := ""
	device := ""
	if v, ok := input["user"].(string); ok {
		user = v
	}
	if v, ok := input["device"].(string); ok {
		device = v
	}

	result, err := r.Service.ValidateUser(p.Context, user, device)
	if err != nil {
		return nil, r.wrapErr(p.Context, "validate user", err)
	}
	return map[string]interface{}{
		"status":   result.ProviderStatus,
		"group":    result.Group,
		"devices":  result.Devices,
		"licenses": result.Licenses,
		"request":  result.RequestID,
	}, nil
}

// resolveSendByCategory falls back to the category's default priority when the
// caller supplies none or NORMAL, matching the REST surface's category
// convenience semantics.
func (r *Resolver) resolveSendByCategory(p graphql.ResolveParams) (interface{}, error) {
	category, _ := p.Args["category"].(string)
	message, _ := p.Args["message"].(string)

	var priority *int
	if v, ok := p.Args["priority"].(int); ok && v != 0 {
		priority = &v
	}

	res, err := r.Service.SendByCategory(p.Context, category, message, optString(p.Args, "title"), priority)
	if err != nil {
		return nil, r.wrapErr(p.Context, "send "+category+" notification", err)
	}
	return sendResponse(res, category+" notification sent successfully"), nil
}

// specializedSend backs the convenience mutations: a fixed descriptor-style
// default layer below whatever subset of title/priority/device/url the
// mutation accepts.
func (r *Resolver) specializedSend(p graphql.ResolveParams, op, successMsg string, defaults, caller pushover.Options) (interface{}, error) {
	message, _ := p.Args["message"].(string)

	res, err := r.Service.Dispatch(p.Context, message, defaults, caller)
	if err != nil {
		return nil, r.wrapErr(p.Context, op, err)
	}
	return sendResponse(res, successMsg), nil
}
