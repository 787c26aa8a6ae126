package rest

import (
	"context"

	"github.com/telesocial/telesocial-sdk-go/envelope"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// execute performs the common tail of every service: send the request,
// split failures into the network / remote / decode kinds, and wrap a
// successful body into an envelope.
func execute(ctx context.Context, client transport.HTTPClient, req *transport.Request, op string) (*envelope.Envelope, error) {
	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrNetwork).
			WithCause(err)
	}
	return wrapResponse(resp, op)
}

func wrapResponse(resp *transport.Response, op string) (*envelope.Envelope, error) {
	if err := checkResponseError(resp); err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrAPIError).
			WithStatus(resp.StatusCode).
			WithCause(err)
	}

	env, err := envelope.Parse(resp.StatusCode, resp.Body, contentTypeOf(resp))
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrDecodeError).
			WithStatus(resp.StatusCode).
			WithRawBody(resp.Body).
			WithCause(err)
	}
	return env, nil
}

// checkResponseError turns a non-2xx response into an *APIError. The
// error body is decoded when possible; its message field wins over the
// generic per-status text. An undecodable error body is tolerated, the
// status alone still identifies the failure.
func checkResponseError(resp *transport.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: statusMessage(resp.StatusCode),
	}
	if env, err := envelope.Parse(resp.StatusCode, resp.Body, contentTypeOf(resp)); err == nil {
		apiErr.Body = env
		if msg := env.Message(); msg != "" {
			apiErr.Message = msg
		}
	}
	return apiErr
}

func contentTypeOf(resp *transport.Response) string {
	if resp.Headers == nil {
		return ""
	}
	return resp.Headers.Get("Content-Type")
}
