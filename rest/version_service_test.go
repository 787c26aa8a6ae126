package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telesocial/telesocial-sdk-go/internal/testutil"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

func TestVersionService_Do_Success(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Contains(t, req.FullURL, "/api/rest/version")
			return &transport.Response{StatusCode: 200, Body: []byte("1.3.10\n")}, nil
		},
	}

	v, err := NewVersionService("key").WithClient(fakeClient).Do(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Version{Major: 1, Minor: 3, Patch: 10}, v)
	assert.Equal(t, "1.3.10", v.String())
}

func TestVersionService_Do_MalformedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "html error page", body: "<html>gateway timeout</html>"},
		{name: "two components", body: "1.3"},
		{name: "non-numeric component", body: "1.3.x"},
		{name: "empty body", body: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeClient := &testutil.FakeHTTPClient{
				DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
					return &transport.Response{StatusCode: 200, Body: []byte(tc.body)}, nil
				},
			}

			_, err := NewVersionService("key").WithClient(fakeClient).Do(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, sdkerr.ErrDecodeError)

			var sdkErr *sdkerr.SDKError
			require.ErrorAs(t, err, &sdkErr)
			assert.Equal(t, tc.body, string(sdkErr.RawBody()))
		})
	}
}

func TestVersionService_Do_RemoteError(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			return &transport.Response{StatusCode: 502, Body: nil}, nil
		},
	}

	_, err := NewVersionService("key").WithClient(fakeClient).Do(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrAPIError)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
}
