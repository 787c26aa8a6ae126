package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telesocial/telesocial-sdk-go/internal/testutil"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

func TestRegisterNetworkIDService_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := NewRegisterNetworkIDService("key").NetworkID("eric").Phone("14054441212")
		assert.NoError(t, svc.Validate())
	})

	t.Run("missing networkid", func(t *testing.T) {
		svc := NewRegisterNetworkIDService("key").Phone("14054441212")
		err := svc.Validate()
		require.Error(t, err)

		sdkErr, ok := err.(*sdkerr.SDKError)
		require.True(t, ok)
		assert.Equal(t, sdkerr.ErrValidation, sdkErr.Kind())
		assert.Contains(t, sdkErr.Message(), "networkid is required")
	})

	t.Run("blank phone", func(t *testing.T) {
		svc := NewRegisterNetworkIDService("key").NetworkID("eric").Phone("  ")
		err := svc.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, sdkerr.ErrValidation)
	})
}

func TestRegisterNetworkIDService_Do_Created(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Contains(t, req.FullURL, "/api/rest/registrant/")

			form := testutil.ExtractForm(t, req)
			assert.Equal(t, "eric", form.Get("networkid"))
			assert.Equal(t, "14054441212", form.Get("phone"))
			assert.Equal(t, "key", form.Get("appkey"))

			return &transport.Response{
				StatusCode: 201,
				Body: []byte(`{
					"RegistrantResponse": {
						"status": 201,
						"uri": "/api/rest/registrant/eric"
					}
				}`),
			}, nil
		},
	}

	svc := NewRegisterNetworkIDService("key").
		WithClient(fakeClient).
		NetworkID("eric").
		Phone("14054441212")

	env, err := svc.Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 201, env.Status())
	assert.Equal(t, "/api/rest/registrant/eric", env.URI())
}

func TestRegisterNetworkIDService_Do_AuthInHeader(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, "key", req.Headers.Get("X-Api-Key"))
			form := testutil.ExtractForm(t, req)
			assert.Empty(t, form.Get("appkey"))

			return &transport.Response{StatusCode: 200, Body: []byte(`{}`)}, nil
		},
	}

	svc := NewRegisterNetworkIDService("key").
		WithClient(fakeClient).
		WithAuthPlacement(AuthInHeader).
		NetworkID("eric")

	_, err := svc.Do(context.Background())
	assert.NoError(t, err)
}

func TestRegisterNetworkIDService_Do_Errors(t *testing.T) {
	type testCase struct {
		name       string
		setup      func() transport.HTTPClient
		wantKind   error
		wantStatus int
	}

	cases := []testCase{
		{
			name: "network down",
			setup: func() transport.HTTPClient {
				return &testutil.FakeHTTPClient{
					DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
						return nil, errors.New("connection refused")
					},
				}
			},
			wantKind: sdkerr.ErrNetwork,
		},
		{
			name: "remote rejects",
			setup: func() transport.HTTPClient {
				return &testutil.FakeHTTPClient{
					DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
						return &transport.Response{
							StatusCode: 409,
							Body:       []byte(`{"RegistrantResponse":{"status":409,"message":"networkid in use"}}`),
						}, nil
					},
				}
			},
			wantKind:   sdkerr.ErrAPIError,
			wantStatus: 409,
		},
		{
			name: "garbled body",
			setup: func() transport.HTTPClient {
				return &testutil.FakeHTTPClient{
					DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
						return &transport.Response{StatusCode: 200, Body: []byte(`{broken`)}, nil
					},
				}
			},
			wantKind:   sdkerr.ErrDecodeError,
			wantStatus: 200,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewRegisterNetworkIDService("key").
				WithClient(tc.setup()).
				NetworkID("eric")

			_, err := svc.Do(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantKind)

			sdkErr, ok := err.(*sdkerr.SDKError)
			require.True(t, ok)
			assert.Equal(t, tc.wantStatus, sdkErr.Status())
		})
	}
}

func TestRegisterNetworkIDService_RemoteErrorCarriesBody(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			return &transport.Response{
				StatusCode: 409,
				Body:       []byte(`{"RegistrantResponse":{"status":409,"message":"networkid in use"}}`),
			}, nil
		},
	}

	svc := NewRegisterNetworkIDService("key").WithClient(fakeClient).NetworkID("eric")
	_, err := svc.Do(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, "networkid in use", apiErr.Message)
	require.NotNil(t, apiErr.Body)
	assert.Equal(t, int64(409), apiErr.Body.Find("status").Int())
}

func TestRegisterNetworkIDService_DecodeErrorKeepsRawBody(t *testing.T) {
	raw := []byte(`<<<not a body>>>`)
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			return &transport.Response{StatusCode: 200, Body: raw}, nil
		},
	}

	svc := NewRegisterNetworkIDService("key").WithClient(fakeClient).NetworkID("eric")
	_, err := svc.Do(context.Background())
	require.Error(t, err)

	sdkErr, ok := err.(*sdkerr.SDKError)
	require.True(t, ok)
	assert.Equal(t, sdkerr.ErrDecodeError, sdkErr.Kind())
	assert.Equal(t, raw, sdkErr.RawBody())
}

func TestNetworkIDStatusService_Do(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Contains(t, req.FullURL, "/api/rest/registrant/eric")

			query := testutil.ExtractQuery(t, req.FullURL)
			assert.Equal(t, "related", query.Get("query"))
			assert.Equal(t, "key", query.Get("appkey"))

			return &transport.Response{
				StatusCode: 200,
				Body:       []byte(`{"RegistrantResponse":{"status":200}}`),
			}, nil
		},
	}

	env, err := NewNetworkIDStatusService("key").
		WithClient(fakeClient).
		NetworkID("eric").
		CheckRelated().
		Do(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 200, env.Status())
}

func TestChangePhoneService_Do(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			form := testutil.ExtractForm(t, req)
			assert.Equal(t, "eric", form.Get("networkid"))
			assert.Equal(t, "14055550000", form.Get("phone"))

			return &transport.Response{
				StatusCode: 200,
				Body:       []byte(`{"RegistrantResponse":{"status":200,"uri":"/api/rest/registrant/eric"}}`),
			}, nil
		},
	}

	env, err := NewChangePhoneService("key").
		WithClient(fakeClient).
		NetworkID("eric").
		Phone("14055550000").
		Do(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/api/rest/registrant/eric", env.URI())
}

func TestChangePhoneService_Validate_RequiresBoth(t *testing.T) {
	err := NewChangePhoneService("key").Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrValidation)

	sdkErr := err.(*sdkerr.SDKError)
	assert.Contains(t, sdkErr.Message(), "networkid is required")
	assert.Contains(t, sdkErr.Message(), "phone is required")
}

func TestListNetworkIDsService_SequenceNormalization(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty", `{"RegistrantListResponse":{"status":200}}`, 0},
		{"single without wrapping array", `{"RegistrantListResponse":{"status":200,"networkid":"eric"}}`, 1},
		{"many", `{"RegistrantListResponse":{"status":200,"networkid":["eric","maria","tom"]}}`, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeClient := &testutil.FakeHTTPClient{
				DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
					return &transport.Response{StatusCode: 200, Body: []byte(tc.body)}, nil
				},
			}

			env, err := NewListNetworkIDsService("key").
				WithClient(fakeClient).
				Do(context.Background())
			require.NoError(t, err)

			assert.Len(t, env.Find("networkid").Seq(), tc.want)
		})
	}
}
