package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/telesocial/telesocial-sdk-go/envelope"
	"github.com/telesocial/telesocial-sdk-go/internal/httpx"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// CreateConferenceService creates a conference call led by the given
// network id. The response carries the new conference id and URI.
type CreateConferenceService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	networkID   string
	greetingID  *string
	recordingID *string
}

// NewCreateConferenceService creates a new CreateConferenceService.
func NewCreateConferenceService(appKey string) *CreateConferenceService {
	return &CreateConferenceService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *CreateConferenceService) WithClient(client transport.HTTPClient) *CreateConferenceService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *CreateConferenceService) WithBaseURL(baseURL string) *CreateConferenceService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *CreateConferenceService) WithAuthPlacement(p AuthPlacement) *CreateConferenceService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// LeaderNetworkID sets the network id of the conference leader.
func (s *CreateConferenceService) LeaderNetworkID(id string) *CreateConferenceService {
	s.networkID = id
	return s
}

// GreetingID sets the media id of the greeting played to participants
// when they answer.
func (s *CreateConferenceService) GreetingID(id string) *CreateConferenceService {
	s.greetingID = &id
	return s
}

// RecordingID sets the media id the conference audio is recorded to.
func (s *CreateConferenceService) RecordingID(id string) *CreateConferenceService {
	s.recordingID = &id
	return s
}

// Validate validates the service parameters.
func (s *CreateConferenceService) Validate() error {
	if s.networkID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("CreateConferenceService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("leader networkid is required")
	}
	return nil
}

// Do executes the service.
func (s *CreateConferenceService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("networkid", s.networkID)
	if s.greetingID != nil {
		f.Set("greetingid", *s.greetingID)
	}
	if s.recordingID != nil {
		f.Set("recordingid", *s.recordingID)
	}
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/conference").
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "CreateConferenceService.Do")
}

// AddParticipantService dials one network id into a conference. The
// contract is deliberately single-valued: adding several participants
// is several calls, one per leg.
type AddParticipantService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	conferenceID string
	networkID    string
	greetingID   *string
}

// NewAddParticipantService creates a new AddParticipantService.
func NewAddParticipantService(appKey string) *AddParticipantService {
	return &AddParticipantService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *AddParticipantService) WithClient(client transport.HTTPClient) *AddParticipantService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *AddParticipantService) WithBaseURL(baseURL string) *AddParticipantService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *AddParticipantService) WithAuthPlacement(p AuthPlacement) *AddParticipantService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// ConferenceID sets the target conference.
func (s *AddParticipantService) ConferenceID(id string) *AddParticipantService {
	s.conferenceID = id
	return s
}

// NetworkID sets the single network id to add.
func (s *AddParticipantService) NetworkID(id string) *AddParticipantService {
	s.networkID = id
	return s
}

// GreetingID sets the media id of the greeting played when the
// participant answers.
func (s *AddParticipantService) GreetingID(id string) *AddParticipantService {
	s.greetingID = &id
	return s
}

// Validate validates the service parameters.
func (s *AddParticipantService) Validate() error {
	if err := requireIDs(map[string]string{
		"conferenceid": s.conferenceID,
		"networkid":    s.networkID,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("AddParticipantService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *AddParticipantService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "add")
	f.Set("networkid", s.networkID)
	if s.greetingID != nil {
		f.Set("greetingid", *s.greetingID)
	}
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/conference/" + url.PathEscape(s.conferenceID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "AddParticipantService.Do")
}

// ConferenceDetailsService fetches the state of one conference. The
// participants field normalizes to a sequence, possibly empty for an
// inactive call.
type ConferenceDetailsService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	conferenceID string
}

// NewConferenceDetailsService creates a new ConferenceDetailsService.
func NewConferenceDetailsService(appKey string) *ConferenceDetailsService {
	return &ConferenceDetailsService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *ConferenceDetailsService) WithClient(client transport.HTTPClient) *ConferenceDetailsService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *ConferenceDetailsService) WithBaseURL(baseURL string) *ConferenceDetailsService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *ConferenceDetailsService) WithAuthPlacement(p AuthPlacement) *ConferenceDetailsService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// ConferenceID sets the conference to describe.
func (s *ConferenceDetailsService) ConferenceID(id string) *ConferenceDetailsService {
	s.conferenceID = id
	return s
}

// Validate validates the service parameters.
func (s *ConferenceDetailsService) Validate() error {
	if s.conferenceID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("ConferenceDetailsService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("conferenceid is required")
	}
	return nil
}

// Do executes the service.
func (s *ConferenceDetailsService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/conference/" + url.PathEscape(s.conferenceID)).
		Build()
	return execute(ctx, s.client, req, "ConferenceDetailsService.Do")
}

// ListConferencesService lists the application's conference sessions.
type ListConferencesService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder
}

// NewListConferencesService creates a new ListConferencesService.
func NewListConferencesService(appKey string) *ListConferencesService {
	return &ListConferencesService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *ListConferencesService) WithClient(client transport.HTTPClient) *ListConferencesService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *ListConferencesService) WithBaseURL(baseURL string) *ListConferencesService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *ListConferencesService) WithAuthPlacement(p AuthPlacement) *ListConferencesService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// Do executes the service.
func (s *ListConferencesService) Do(ctx context.Context) (*envelope.Envelope, error) {
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/conference").
		Build()
	return execute(ctx, s.client, req, "ListConferencesService.Do")
}

// CloseConferenceService ends an active conference, hanging up every
// remaining leg.
type CloseConferenceService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	conferenceID string
}

// NewCloseConferenceService creates a new CloseConferenceService.
func NewCloseConferenceService(appKey string) *CloseConferenceService {
	return &CloseConferenceService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *CloseConferenceService) WithClient(client transport.HTTPClient) *CloseConferenceService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *CloseConferenceService) WithBaseURL(baseURL string) *CloseConferenceService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *CloseConferenceService) WithAuthPlacement(p AuthPlacement) *CloseConferenceService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// ConferenceID sets the conference to close.
func (s *CloseConferenceService) ConferenceID(id string) *CloseConferenceService {
	s.conferenceID = id
	return s
}

// Validate validates the service parameters.
func (s *CloseConferenceService) Validate() error {
	if s.conferenceID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("CloseConferenceService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("conferenceid is required")
	}
	return nil
}

// Do executes the service.
func (s *CloseConferenceService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "close")
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/conference/" + url.PathEscape(s.conferenceID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "CloseConferenceService.Do")
}
