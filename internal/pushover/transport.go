package pushover

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is the raw outcome of one provider round trip.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange against the provider. The adapter
// depends only on this shape, so tests substitute a mock without touching the
// adapter. Implementations must be safe for concurrent use.
type Transport interface {
	Request(ctx context.Context, method, rawURL string, query url.Values, form url.Values) (*Response, error)
}

// HTTPTransport is the production Transport backed by net/http. The client
// timeout is the only cancellation primitive: once a call is issued there is
// no way to abort it short of the timeout firing.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *HTTPTransport) Request(ctx context.Context, method, rawURL string, query url.Values, form url.Values) (*Response, error) {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &TransportError{Kind: TransportNetwork, Err: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: classifyTransportErr(err), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: TransportNetwork, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func classifyTransportErr(err error) TransportErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TransportTimeout
	}
	return TransportNetwork
}
