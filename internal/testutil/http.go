package testutil

import (
	"context"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// ExtractQuery parses the query string out of a built request URL.
func ExtractQuery(t *testing.T, fullURL string) url.Values {
	t.Helper()
	parsed, err := url.Parse(fullURL)
	assert.NoError(t, err)
	return parsed.Query()
}

// ExtractForm decodes a form-encoded request body.
func ExtractForm(t *testing.T, req *transport.Request) url.Values {
	t.Helper()
	require.NotNil(t, req.Body)
	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(raw))
	require.NoError(t, err)
	return form
}

type FakeHTTPClient struct {
	DoFunc func(ctx context.Context, req *transport.Request) (*transport.Response, error)
	Calls  int
}

func (f *FakeHTTPClient) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	f.Calls++
	return f.DoFunc(ctx, req)
}
