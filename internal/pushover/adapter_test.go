package pushover

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/pushrelay/pushrelay/internal/logger"
)

type transportCall struct {
	method string
	url    string
	query  url.Values
	form   url.Values
}

// fakeTransport records every call and answers via the respond callback.
type fakeTransport struct {
	calls   []transportCall
	respond func(call transportCall) (*Response, error)
}

func (f *fakeTransport) Request(ctx context.Context, method, rawURL string, query, form url.Values) (*Response, error) {
	call := transportCall{method: method, url: rawURL, query: query, form: form}
	f.calls = append(f.calls, call)
	return f.respond(call)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "text"})
}

func testCreds() Credentials {
	return Credentials{AppToken: "app-token", UserKey: "user-key"}
}

func okResponse(body string, header http.Header) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{StatusCode: http.StatusOK, Header: header, Body: []byte(body)}
}

func TestSendSuccess(t *testing.T) {
	header := http.Header{}
	header.Set("X-Limit-App-Limit", "7500")
	header.Set("X-Limit-App-Remaining", "7499")
	header.Set("X-Limit-App-Reset", "1700000000")

	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"status":1,"request":"abc123"}`, header), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	opts, _ := Normalize("hello world")
	result, err := adapter.Send(context.Background(), opts, testCreds())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if !result.Success || result.ProviderStatus != 1 || result.RequestID != "abc123" {
		t.Errorf("result = %+v", result)
	}
	if result.RateLimit == nil {
		t.Fatal("rate limit headers not surfaced")
	}
	if result.RateLimit.Limit != 7500 || result.RateLimit.Remaining != 7499 || result.RateLimit.ResetEpoch != 1700000000 {
		t.Errorf("rate limit = %+v", result.RateLimit)
	}

	if len(transport.calls) != 1 {
		t.Fatalf("expected 1 transport call, got %d", len(transport.calls))
	}
	call := transport.calls[0]
	if call.method != http.MethodPost || call.url != "https://api.example.net/1/messages.json" {
		t.Errorf("call = %s %s", call.method, call.url)
	}
	if call.form.Get("token") != "app-token" || call.form.Get("user") != "user-key" || call.form.Get("message") != "hello world" {
		t.Errorf("form = %v", call.form)
	}
}

func TestSendEmergencyReceipt(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"status":1,"request":"abc123","receipt":"r-789"}`, nil), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	opts, _ := Normalize("down", Options{Priority: intp(2)})
	result, err := adapter.Send(context.Background(), opts, testCreds())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.Receipt != "r-789" {
		t.Errorf("receipt = %q, want r-789", result.Receipt)
	}
}

func TestSendProviderRejection(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"status":0,"errors":["application token is invalid"]}`, nil), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	opts, _ := Normalize("hello")
	_, err := adapter.Send(context.Background(), opts, testCreds())

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if providerErr.Status != 0 {
		t.Errorf("provider status = %d, want 0", providerErr.Status)
	}
	if len(providerErr.Errors) != 1 || providerErr.Errors[0] != "application token is invalid" {
		t.Errorf("provider errors = %v", providerErr.Errors)
	}
}

func TestSendMalformedBody(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`<html>gateway error</html>`, nil), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	opts, _ := Normalize("hello")
	_, err := adapter.Send(context.Background(), opts, testCreds())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if transportErr.Kind != TransportMalformed {
		t.Errorf("kind = %q, want %q", transportErr.Kind, TransportMalformed)
	}
}

func TestSendMissingRateLimitHeaders(t *testing.T) {
	header := http.Header{}
	header.Set("X-Limit-App-Limit", "7500")
	// Remaining and Reset absent: the result must carry no partial block.

	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"status":1,"request":"abc123"}`, header), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	opts, _ := Normalize("hello")
	result, err := adapter.Send(context.Background(), opts, testCreds())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.RateLimit != nil {
		t.Errorf("rate limit = %+v, want nil with incomplete headers", result.RateLimit)
	}
}

func TestCheckLimits(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"limit":10000,"remaining":9950,"reset":1700000000,"status":1,"request":"req-1"}`, nil), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	result, err := adapter.CheckLimits(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("CheckLimits: %v", err)
	}
	if result.Limit != 10000 || result.Remaining != 9950 || result.ResetEpoch != 1700000000 {
		t.Errorf("result = %+v", result)
	}

	call := transport.calls[0]
	if call.method != http.MethodGet || call.url != "https://api.example.net/1/apps/limits.json" {
		t.Errorf("call = %s %s", call.method, call.url)
	}
	if call.query.Get("token") != "app-token" {
		t.Errorf("query = %v", call.query)
	}
}

func TestValidateUser(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		return okResponse(`{"status":1,"group":0,"devices":["phone"],"licenses":["Android"],"request":"req-2"}`, nil), nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	result, err := adapter.ValidateUser(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("ValidateUser: %v", err)
	}
	if result.ProviderStatus != 1 || len(result.Devices) != 1 || result.Devices[0] != "phone" {
		t.Errorf("result = %+v", result)
	}

	call := transport.calls[0]
	if call.form.Get("user") != "user-key" {
		t.Errorf("form = %v", call.form)
	}
	if call.form.Get("device") != "" {
		t.Error("device sent without an override")
	}
}

func TestValidateUserEmptyKey(t *testing.T) {
	transport := &fakeTransport{respond: func(call transportCall) (*Response, error) {
		t.Fatal("transport reached with empty user key")
		return nil, nil
	}}
	adapter := NewAdapter(transport, "https://api.example.net/1", testLogger())

	_, err := adapter.ValidateUser(context.Background(), Credentials{AppToken: "app-token"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(transport.calls) != 0 {
		t.Errorf("expected no transport calls, got %d", len(transport.calls))
	}
}
