package transport

import (
	"context"
	"io"
	"net/http"
)

// HTTPClient is the minimal interface the SDK needs to talk to the
// Telesocial service. Callers may inject their own implementation, for
// example to add retries, record traffic, or fake responses in tests.
type HTTPClient interface {
	// Do executes a single HTTP request. The implementation must respect
	// the context's deadline and cancellation.
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request describes one HTTP exchange. The Method field carries the
// effective verb for the whole GET/POST/PUT/DELETE/HEAD range; nothing in
// the request shape is verb-specific.
type Request struct {
	Method  string
	FullURL string
	Headers http.Header
	Body    io.Reader
}

// Response is the fully-buffered result of a request: the remote status
// code and raw body exactly as received, before any decoding.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

type stdClientAdapter struct {
	client *http.Client
}

// NewHTTPClient adapts a standard *http.Client into an HTTPClient.
// Passing nil yields a client with default transport settings.
func NewHTTPClient(stdClient *http.Client) HTTPClient {
	if stdClient == nil {
		stdClient = &http.Client{}
	}
	return &stdClientAdapter{client: stdClient}
}

func (a *stdClientAdapter) Do(ctx context.Context, req *Request) (*Response, error) {
	stdReq, err := http.NewRequestWithContext(ctx, req.Method, req.FullURL, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Headers != nil {
		stdReq.Header = req.Headers
	}

	stdResp, err := a.client.Do(stdReq)
	if err != nil {
		return nil, err
	}
	defer stdResp.Body.Close()

	body, err := io.ReadAll(stdResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: stdResp.StatusCode,
		Headers:    stdResp.Header,
		Body:       body,
	}, nil
}
