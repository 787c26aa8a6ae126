package httpx

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/telesocial/telesocial-sdk-go/transport"
)

// RequestBuilder assembles a transport.Request from its parts. The zero
// verb is GET; any verb the remote service understands may be set,
// including DELETE and HEAD.
type RequestBuilder struct {
	BaseURL string
	Path    string
	Method  string
	Params  url.Values
	Headers http.Header
	Body    io.Reader
}

func NewRequestBuilder(baseURL string) *RequestBuilder {
	return &RequestBuilder{
		BaseURL: baseURL,
		Method:  http.MethodGet,
		Params:  make(url.Values),
		Headers: make(http.Header),
	}
}

func (b *RequestBuilder) WithMethod(method string) *RequestBuilder {
	b.Method = method
	return b
}

func (b *RequestBuilder) WithPath(path string) *RequestBuilder {
	b.Path = path
	return b
}

func (b *RequestBuilder) WithQuery(params url.Values) *RequestBuilder {
	b.Params = params
	return b
}

func (b *RequestBuilder) WithHeaders(headers http.Header) *RequestBuilder {
	b.Headers = headers
	return b
}

func (b *RequestBuilder) WithBody(body io.Reader) *RequestBuilder {
	b.Body = body
	return b
}

// WithForm sets an application/x-www-form-urlencoded body. Repeated keys
// are preserved, which is how the service receives multi-valued
// parameters such as repeated media ids.
func (b *RequestBuilder) WithForm(form url.Values) *RequestBuilder {
	b.Body = strings.NewReader(form.Encode())
	b.Headers.Set("Content-Type", "application/x-www-form-urlencoded")
	return b
}

func (b *RequestBuilder) Build() *transport.Request {
	fullURL := b.BaseURL + b.Path
	if len(b.Params) > 0 {
		// The base URL may already carry a query string, e.g. signed
		// content URLs handed out by the service.
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}
		fullURL += sep + b.Params.Encode()
	}
	return &transport.Request{
		Method:  b.Method,
		FullURL: fullURL,
		Headers: b.Headers,
		Body:    b.Body,
	}
}
