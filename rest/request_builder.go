package rest

import (
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/telesocial/telesocial-sdk-go/internal/httpx"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// requestBuilder layers the Telesocial conventions over the plain httpx
// builder: appkey injection per placement, a correlation id header, and
// form or raw bodies.
type requestBuilder struct {
	inner       *httpx.RequestBuilder
	appKey      string
	placement   AuthPlacement
	form        url.Values
	body        io.Reader
	contentType string
	requestID   func() string
}

func newRequestBuilder(appKey string) *requestBuilder {
	return &requestBuilder{
		inner:     httpx.NewRequestBuilder(defaultBaseURL),
		appKey:    appKey,
		requestID: uuid.NewString,
	}
}

func (b *requestBuilder) WithBaseURL(baseURL string) *requestBuilder {
	if baseURL != "" {
		b.inner.BaseURL = baseURL
	}
	return b
}

// WithFullURL targets an absolute URL directly, bypassing the base URL
// and path. Used for the content URLs the media status endpoint hands
// out.
func (b *requestBuilder) WithFullURL(u string) *requestBuilder {
	b.inner.BaseURL = u
	b.inner.Path = ""
	return b
}

func (b *requestBuilder) WithPlacement(p AuthPlacement) *requestBuilder {
	b.placement = p
	return b
}

func (b *requestBuilder) WithMethod(method string) *requestBuilder {
	b.inner = b.inner.WithMethod(method)
	return b
}

func (b *requestBuilder) WithPath(path string) *requestBuilder {
	b.inner = b.inner.WithPath(path)
	return b
}

func (b *requestBuilder) WithQuery(params url.Values) *requestBuilder {
	b.inner = b.inner.WithQuery(params)
	return b
}

func (b *requestBuilder) WithForm(form url.Values) *requestBuilder {
	b.form = form
	return b
}

// WithBody sets a pre-encoded body, used for multipart uploads where the
// content type carries the part boundary.
func (b *requestBuilder) WithBody(body io.Reader, contentType string) *requestBuilder {
	b.body = body
	b.contentType = contentType
	return b
}

func (b *requestBuilder) Build() *transport.Request {
	headers := make(http.Header)
	headers.Set(headerRequestID, b.requestID())
	headers.Set("Accept", "application/json")

	switch b.placement {
	case AuthInHeader:
		headers.Set(headerAPIKey, b.appKey)
	default:
		if b.form != nil {
			b.form.Set(appKeyParam, b.appKey)
		} else {
			b.inner.Params.Set(appKeyParam, b.appKey)
		}
	}

	b.inner.WithHeaders(headers)
	if b.form != nil {
		b.inner.WithForm(b.form)
	} else if b.body != nil {
		headers.Set("Content-Type", b.contentType)
		b.inner.WithBody(b.body)
	}

	return b.inner.Build()
}
