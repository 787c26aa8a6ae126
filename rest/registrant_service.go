package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/telesocial/telesocial-sdk-go/envelope"
	"github.com/telesocial/telesocial-sdk-go/internal/httpx"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// RegisterNetworkIDService registers a (networkid, phone) pair, or
// relates an already-registered networkid to the calling application.
// On creation the service answers 201 with the new registrant URI.
type RegisterNetworkIDService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	networkID  string
	phone      *string
	greetingID *string
}

// NewRegisterNetworkIDService creates a new RegisterNetworkIDService.
func NewRegisterNetworkIDService(appKey string) *RegisterNetworkIDService {
	return &RegisterNetworkIDService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *RegisterNetworkIDService) WithClient(client transport.HTTPClient) *RegisterNetworkIDService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *RegisterNetworkIDService) WithBaseURL(baseURL string) *RegisterNetworkIDService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *RegisterNetworkIDService) WithAuthPlacement(p AuthPlacement) *RegisterNetworkIDService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// NetworkID sets the network id to register.
func (s *RegisterNetworkIDService) NetworkID(id string) *RegisterNetworkIDService {
	s.networkID = id
	return s
}

// Phone sets the phone number to relate to the network id.
func (s *RegisterNetworkIDService) Phone(phone string) *RegisterNetworkIDService {
	s.phone = &phone
	return s
}

// GreetingID sets the media id of the greeting played to the registrant.
func (s *RegisterNetworkIDService) GreetingID(id string) *RegisterNetworkIDService {
	s.greetingID = &id
	return s
}

// Validate validates the service parameters.
func (s *RegisterNetworkIDService) Validate() error {
	if err := s.validate(); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("RegisterNetworkIDService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *RegisterNetworkIDService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/registrant/").
		WithForm(s.buildForm()).
		Build()
	return execute(ctx, s.client, req, "RegisterNetworkIDService.Do")
}

func (s *RegisterNetworkIDService) validate() error {
	var errs []string
	if s.networkID == "" {
		errs = append(errs, "networkid is required")
	}
	if s.phone != nil && strings.TrimSpace(*s.phone) == "" {
		errs = append(errs, "phone must not be blank")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (s *RegisterNetworkIDService) buildForm() url.Values {
	f := make(url.Values)
	f.Set("networkid", s.networkID)
	if s.phone != nil {
		f.Set("phone", *s.phone)
	}
	if s.greetingID != nil {
		f.Set("greetingid", *s.greetingID)
	}
	return f
}

// NetworkIDStatusService reports the registration state of a network id:
// 200 when registered and related to this application, 401 when
// registered to another application, 404 when unknown.
type NetworkIDStatusService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	networkID    string
	checkRelated bool
}

// NewNetworkIDStatusService creates a new NetworkIDStatusService.
func NewNetworkIDStatusService(appKey string) *NetworkIDStatusService {
	return &NetworkIDStatusService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *NetworkIDStatusService) WithClient(client transport.HTTPClient) *NetworkIDStatusService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *NetworkIDStatusService) WithBaseURL(baseURL string) *NetworkIDStatusService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *NetworkIDStatusService) WithAuthPlacement(p AuthPlacement) *NetworkIDStatusService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// NetworkID sets the network id to query.
func (s *NetworkIDStatusService) NetworkID(id string) *NetworkIDStatusService {
	s.networkID = id
	return s
}

// CheckRelated additionally asks whether the network id is associated
// with the calling application.
func (s *NetworkIDStatusService) CheckRelated() *NetworkIDStatusService {
	s.checkRelated = true
	return s
}

// Validate validates the service parameters.
func (s *NetworkIDStatusService) Validate() error {
	if s.networkID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("NetworkIDStatusService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("networkid is required")
	}
	return nil
}

// Do executes the service.
func (s *NetworkIDStatusService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	q := make(url.Values)
	if s.checkRelated {
		q.Set("query", "related")
	}
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/registrant/" + url.PathEscape(s.networkID)).
		WithQuery(q).
		Build()
	return execute(ctx, s.client, req, "NetworkIDStatusService.Do")
}

// ChangePhoneService moves an existing network id to a new phone number.
// The service models this as a re-registration with both fields present.
type ChangePhoneService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	networkID string
	phone     string
}

// NewChangePhoneService creates a new ChangePhoneService.
func NewChangePhoneService(appKey string) *ChangePhoneService {
	return &ChangePhoneService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *ChangePhoneService) WithClient(client transport.HTTPClient) *ChangePhoneService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *ChangePhoneService) WithBaseURL(baseURL string) *ChangePhoneService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *ChangePhoneService) WithAuthPlacement(p AuthPlacement) *ChangePhoneService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// NetworkID sets the network id whose phone changes.
func (s *ChangePhoneService) NetworkID(id string) *ChangePhoneService {
	s.networkID = id
	return s
}

// Phone sets the new phone number.
func (s *ChangePhoneService) Phone(phone string) *ChangePhoneService {
	s.phone = phone
	return s
}

// Validate validates the service parameters.
func (s *ChangePhoneService) Validate() error {
	if err := s.validate(); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("ChangePhoneService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *ChangePhoneService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("networkid", s.networkID)
	f.Set("phone", s.phone)
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/registrant/").
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "ChangePhoneService.Do")
}

func (s *ChangePhoneService) validate() error {
	var errs []string
	if s.networkID == "" {
		errs = append(errs, "networkid is required")
	}
	if strings.TrimSpace(s.phone) == "" {
		errs = append(errs, "phone is required")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// ListNetworkIDsService lists the network ids registered to the calling
// application. The registrant list in the envelope is a sequence even
// when the service returns a single bare entry.
type ListNetworkIDsService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder
}

// NewListNetworkIDsService creates a new ListNetworkIDsService.
func NewListNetworkIDsService(appKey string) *ListNetworkIDsService {
	return &ListNetworkIDsService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *ListNetworkIDsService) WithClient(client transport.HTTPClient) *ListNetworkIDsService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *ListNetworkIDsService) WithBaseURL(baseURL string) *ListNetworkIDsService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *ListNetworkIDsService) WithAuthPlacement(p AuthPlacement) *ListNetworkIDsService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// Do executes the service.
func (s *ListNetworkIDsService) Do(ctx context.Context) (*envelope.Envelope, error) {
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/registrant/").
		Build()
	return execute(ctx, s.client, req, "ListNetworkIDsService.Do")
}
