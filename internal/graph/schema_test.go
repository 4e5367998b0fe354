package graph

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/pushrelay/pushrelay/internal/logger"
	"github.com/pushrelay/pushrelay/internal/pushover"
	"github.com/pushrelay/pushrelay/internal/relay"
)

type fakeTransport struct {
	forms []url.Values
	body  string
}

func (f *fakeTransport) Request(ctx context.Context, method, rawURL string, query, form url.Values) (*pushover.Response, error) {
	f.forms = append(f.forms, form)
	body := f.body
	if body == "" {
		if form != nil && form.Get("message") == "bad" {
			body = `{"status":0,"errors":["message is invalid"]}`
		} else {
			body = `{"status":1,"request":"req-1"}`
		}
	}
	return &pushover.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}, nil
}

func newTestSchema(t *testing.T, transport *fakeTransport) graphql.Schema {
	t.Helper()

	log := logger.New(logger.Config{Level: slog.LevelError, Format: "text"})
	adapter := pushover.NewAdapter(transport, "https://api.example.net/1", log)
	creds := pushover.Credentials{AppToken: "app-token", UserKey: "user-key"}
	service := relay.NewService(adapter, creds, log)

	schema, err := NewSchema(&Resolver{Service: service, Logger: log})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema
}

func exec(t *testing.T, schema graphql.Schema, query string) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
}

func dataField(t *testing.T, result *graphql.Result, field string) map[string]interface{} {
	t.Helper()
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("result data = %v", result.Data)
	}
	out, ok := data[field].(map[string]interface{})
	if !ok {
		t.Fatalf("field %q = %v", field, data[field])
	}
	return out
}

func TestHealthQuery(t *testing.T) {
	schema := newTestSchema(t, &fakeTransport{})

	result := exec(t, schema, `{ health { status service version } }`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	health := dataField(t, result, "health")
	if health["status"] != "ok" || health["service"] != relay.ServiceName {
		t.Errorf("health = %v", health)
	}
}

func TestTemplatesQuery(t *testing.T) {
	schema := newTestSchema(t, &fakeTransport{})

	result := exec(t, schema, `{ templates }`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	data, _ := result.Data.(map[string]interface{})
	templates, _ := data["templates"].([]interface{})
	if len(templates) != 20 {
		t.Errorf("templates = %d entries, want 20", len(templates))
	}
}

func TestSendNotificationMutation(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendNotification(input: {message: "hello", title: "Greeting"}) {
			success status message data { request }
		}
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	resp := dataField(t, result, "sendNotification")
	if resp["success"] != true || resp["message"] != "Notification sent successfully" {
		t.Errorf("response = %v", resp)
	}
	data, _ := resp["data"].(map[string]interface{})
	if data["request"] != "req-1" {
		t.Errorf("data = %v", data)
	}

	if transport.forms[0].Get("title") != "Greeting" {
		t.Errorf("form = %v", transport.forms[0])
	}
}

func TestSendEmergencyMutation(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendEmergency(input: {message: "fire"}) { success message }
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	form := transport.forms[0]
	if form.Get("priority") != "2" || form.Get("sound") != "siren" {
		t.Errorf("form = %v", form)
	}
	if form.Get("expire") != "3600" || form.Get("retry") != "60" {
		t.Errorf("form = %v", form)
	}
}

func TestSendTemplateMutation(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendTemplate(template: success, input: {message: "done"}) { template message }
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	resp := dataField(t, result, "sendTemplate")
	if resp["template"] != "success" {
		t.Errorf("response = %v", resp)
	}
	if transport.forms[0].Get("title") != "✅ Success" {
		t.Errorf("form = %v", transport.forms[0])
	}
}

func TestSendBatchMutation(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendBatch(input: {notifications: [{message: "bad"}, {message: "fine"}], delay: 0}) {
			sent failed message data { success request error }
		}
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	resp := dataField(t, result, "sendBatch")
	if resp["sent"] != 1 || resp["failed"] != 1 {
		t.Errorf("response = %v", resp)
	}

	slots, _ := resp["data"].([]interface{})
	if len(slots) != 2 {
		t.Fatalf("slots = %v", slots)
	}
	first, _ := slots[0].(map[string]interface{})
	if first["success"] != false || first["error"] == nil {
		t.Errorf("slot 0 = %v", first)
	}
	second, _ := slots[1].(map[string]interface{})
	if second["success"] != true || second["request"] != "req-1" {
		t.Errorf("slot 1 = %v", second)
	}
}

func TestSendByCategoryNormalPriorityUsesCategoryDefault(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendByCategory(category: security, message: "intrusion", priority: NORMAL) { success }
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	form := transport.forms[0]
	if form.Get("priority") != "2" {
		t.Errorf("priority = %q, category default should apply", form.Get("priority"))
	}
	if form.Get("title") != "🔒 Security" {
		t.Errorf("title = %q", form.Get("title"))
	}
}

func TestSendSecurityAlertMutation(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendSecurityAlert(message: "breach") { success message }
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	form := transport.forms[0]
	if form.Get("title") != "🔒 Security Alert" || form.Get("priority") != "2" {
		t.Errorf("form = %v", form)
	}
	if form.Get("expire") != "3600" || form.Get("retry") != "60" {
		t.Errorf("form = %v", form)
	}
}

func TestSendMonitoringAlertAddsURLTitle(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendMonitoringAlert(message: "cpu high", url: "https://dash.example.net") { success }
	}`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	form := transport.forms[0]
	if form.Get("url") != "https://dash.example.net" || form.Get("url_title") != "View Dashboard" {
		t.Errorf("form = %v", form)
	}
}

func TestValidationErrorCarriesExtensions(t *testing.T) {
	transport := &fakeTransport{}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendNotification(input: {message: "   "}) { success }
	}`)
	if len(result.Errors) == 0 {
		t.Fatal("expected a validation error")
	}

	formatted := result.Errors[0]
	if !strings.Contains(formatted.Message, "invalid message") {
		t.Errorf("message = %q", formatted.Message)
	}
	if formatted.Extensions["code"] != "VALIDATION_ERROR" {
		t.Errorf("extensions = %v", formatted.Extensions)
	}
	if len(transport.forms) != 0 {
		t.Error("invalid message reached the transport")
	}
}

func TestProviderErrorCarriesExtensions(t *testing.T) {
	transport := &fakeTransport{body: `{"status":0,"errors":["application token is invalid"]}`}
	schema := newTestSchema(t, transport)

	result := exec(t, schema, `mutation {
		sendNotification(input: {message: "hello"}) { success }
	}`)
	if len(result.Errors) == 0 {
		t.Fatal("expected a provider error")
	}

	formatted := result.Errors[0]
	if !strings.Contains(formatted.Message, "application token is invalid") {
		t.Errorf("message = %q", formatted.Message)
	}
	if formatted.Extensions["code"] != "PROVIDER_ERROR" {
		t.Errorf("extensions = %v", formatted.Extensions)
	}
}
