package pushover

import (
	"net/url"
	"strconv"
	"strings"
)

// Options carries the optional provider fields of one notification. Nil fields
// are absent and never reach the wire; the provider applies its own defaults.
// Values are passed through unvalidated (the provider is the source of truth
// for valid ranges and returns a descriptive error).
type Options struct {
	Title            *string
	Priority         *int
	URL              *string
	URLTitle         *string
	HTML             *bool
	Device           *string
	Sound            *string
	TTL              *int
	Expire           *int
	Retry            *int
	Timestamp        *int64
	Callback         *string
	Attachment       *string
	AttachmentBase64 *string
	AttachmentType   *string
}

// CanonicalOptions is the fully merged, provider-ready option set for a single
// dispatch. Constructed fresh per call; never shared between calls.
type CanonicalOptions struct {
	Message string
	Options
}

// Normalize merges the given option layers into canonical options. Layers are
// applied field by field in order, later layers overriding earlier ones, so
// precedence is expressed by argument order: descriptor defaults first, caller
// fields next, forced fields last. The message must be non-empty after
// trimming; no other field is checked locally.
func Normalize(message string, layers ...Options) (CanonicalOptions, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return CanonicalOptions{}, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	var merged Options
	for _, layer := range layers {
		merged = mergeOptions(merged, layer)
	}

	return CanonicalOptions{Message: message, Options: merged}, nil
}

// mergeOptions overlays over onto base, field by field. Only fields present in
// over replace base fields; this is deliberately not a bulk overwrite.
func mergeOptions(base, over Options) Options {
	if over.Title != nil {
		base.Title = over.Title
	}
	if over.Priority != nil {
		base.Priority = over.Priority
	}
	if over.URL != nil {
		base.URL = over.URL
	}
	if over.URLTitle != nil {
		base.URLTitle = over.URLTitle
	}
	if over.HTML != nil {
		base.HTML = over.HTML
	}
	if over.Device != nil {
		base.Device = over.Device
	}
	if over.Sound != nil {
		base.Sound = over.Sound
	}
	if over.TTL != nil {
		base.TTL = over.TTL
	}
	if over.Expire != nil {
		base.Expire = over.Expire
	}
	if over.Retry != nil {
		base.Retry = over.Retry
	}
	if over.Timestamp != nil {
		base.Timestamp = over.Timestamp
	}
	if over.Callback != nil {
		base.Callback = over.Callback
	}
	if over.Attachment != nil {
		base.Attachment = over.Attachment
	}
	if over.AttachmentBase64 != nil {
		base.AttachmentBase64 = over.AttachmentBase64
	}
	if over.AttachmentType != nil {
		base.AttachmentType = over.AttachmentType
	}
	return base
}

// Form encodes the canonical options into the provider's form fields. The
// default device from the credentials is injected only when the caller did not
// specify one. The HTML flag is coerced to the provider's 0/1 integer.
func (o CanonicalOptions) Form(creds Credentials) url.Values {
	v := url.Values{}
	v.Set("token", creds.AppToken)
	v.Set("user", creds.UserKey)
	v.Set("message", o.Message)

	if o.Title != nil {
		v.Set("title", *o.Title)
	}
	if o.Priority != nil {
		v.Set("priority", strconv.Itoa(*o.Priority))
	}
	if o.URL != nil {
		v.Set("url", *o.URL)
	}
	if o.URLTitle != nil {
		v.Set("url_title", *o.URLTitle)
	}
	if o.HTML != nil {
		if *o.HTML {
			v.Set("html", "1")
		} else {
			v.Set("html", "0")
		}
	}
	if o.Device != nil {
		v.Set("device", *o.Device)
	} else if creds.Device != "" {
		v.Set("device", creds.Device)
	}
	if o.Sound != nil {
		v.Set("sound", *o.Sound)
	}
	if o.TTL != nil {
		v.Set("ttl", strconv.Itoa(*o.TTL))
	}
	if o.Expire != nil {
		v.Set("expire", strconv.Itoa(*o.Expire))
	}
	if o.Retry != nil {
		v.Set("retry", strconv.Itoa(*o.Retry))
	}
	if o.Timestamp != nil {
		v.Set("timestamp", strconv.FormatInt(*o.Timestamp, 10))
	}
	if o.Callback != nil {
		v.Set("callback", *o.Callback)
	}
	if o.Attachment != nil {
		v.Set("attachment", *o.Attachment)
	}
	if o.AttachmentBase64 != nil {
		v.Set("attachment_base64", *o.AttachmentBase64)
	}
	if o.AttachmentType != nil {
		v.Set("attachment_type", *o.AttachmentType)
	}

	return v
}
