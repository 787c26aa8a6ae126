package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/telesocial/telesocial-sdk-go/internal/httpx"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// Version is the service's API version, split from its dotted form.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// VersionService reports the API version of the remote service. The
// body is a bare dotted string, not a structured envelope.
type VersionService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder
}

// NewVersionService creates a new VersionService.
func NewVersionService(appKey string) *VersionService {
	return &VersionService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *VersionService) WithClient(client transport.HTTPClient) *VersionService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *VersionService) WithBaseURL(baseURL string) *VersionService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *VersionService) WithAuthPlacement(p AuthPlacement) *VersionService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// Do executes the service.
func (s *VersionService) Do(ctx context.Context) (*Version, error) {
	const op = "VersionService.Do"
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/version").
		Build()

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrNetwork).
			WithCause(err)
	}
	if err := checkResponseError(resp); err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrAPIError).
			WithStatus(resp.StatusCode).
			WithCause(err)
	}

	v, err := parseVersion(string(resp.Body))
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrDecodeError).
			WithRawBody(resp.Body).
			WithCause(err)
	}
	return v, nil
}

func parseVersion(body string) (*Version, error) {
	parts := strings.Split(strings.TrimSpace(body), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed version string %q", strings.TrimSpace(body))
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("malformed version string %q", strings.TrimSpace(body))
		}
		nums[i] = n
	}
	return &Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
