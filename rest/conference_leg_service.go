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

// HangupParticipantService terminates a single call leg, leaving the
// rest of the conference running.
type HangupParticipantService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	conferenceID string
	networkID    string
}

// NewHangupParticipantService creates a new HangupParticipantService.
func NewHangupParticipantService(appKey string) *HangupParticipantService {
	return &HangupParticipantService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *HangupParticipantService) WithClient(client transport.HTTPClient) *HangupParticipantService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *HangupParticipantService) WithBaseURL(baseURL string) *HangupParticipantService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *HangupParticipantService) WithAuthPlacement(p AuthPlacement) *HangupParticipantService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// ConferenceID sets the conference the leg belongs to.
func (s *HangupParticipantService) ConferenceID(id string) *HangupParticipantService {
	s.conferenceID = id
	return s
}

// NetworkID sets the leg to terminate.
func (s *HangupParticipantService) NetworkID(id string) *HangupParticipantService {
	s.networkID = id
	return s
}

// Validate validates the service parameters.
func (s *HangupParticipantService) Validate() error {
	if err := requireIDs(map[string]string{
		"conferenceid": s.conferenceID,
		"networkid":    s.networkID,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("HangupParticipantService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *HangupParticipantService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "hangup")
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(legPath(s.conferenceID, s.networkID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "HangupParticipantService.Do")
}

// MoveParticipantService moves a live call leg from one conference to
// another without redialing.
type MoveParticipantService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	fromConferenceID string
	toConferenceID   string
	networkID        string
}

// NewMoveParticipantService creates a new MoveParticipantService.
func NewMoveParticipantService(appKey string) *MoveParticipantService {
	return &MoveParticipantService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *MoveParticipantService) WithClient(client transport.HTTPClient) *MoveParticipantService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *MoveParticipantService) WithBaseURL(baseURL string) *MoveParticipantService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *MoveParticipantService) WithAuthPlacement(p AuthPlacement) *MoveParticipantService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// FromConferenceID sets the conference the leg currently sits in.
func (s *MoveParticipantService) FromConferenceID(id string) *MoveParticipantService {
	s.fromConferenceID = id
	return s
}

// ToConferenceID sets the destination conference.
func (s *MoveParticipantService) ToConferenceID(id string) *MoveParticipantService {
	s.toConferenceID = id
	return s
}

// NetworkID sets the leg to move.
func (s *MoveParticipantService) NetworkID(id string) *MoveParticipantService {
	s.networkID = id
	return s
}

// Validate validates the service parameters.
func (s *MoveParticipantService) Validate() error {
	if err := requireIDs(map[string]string{
		"fromconferenceid": s.fromConferenceID,
		"toconferenceid":   s.toConferenceID,
		"networkid":        s.networkID,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("MoveParticipantService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *MoveParticipantService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "move")
	f.Set("toconferenceid", s.toConferenceID)
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(legPath(s.fromConferenceID, s.networkID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "MoveParticipantService.Do")
}

// MuteParticipantService mutes or unmutes one call leg.
type MuteParticipantService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	conferenceID string
	networkID    string
	unmute       bool
}

// NewMuteParticipantService creates a new MuteParticipantService. The
// default action is mute; Unmute flips it.
func NewMuteParticipantService(appKey string) *MuteParticipantService {
	return &MuteParticipantService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *MuteParticipantService) WithClient(client transport.HTTPClient) *MuteParticipantService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *MuteParticipantService) WithBaseURL(baseURL string) *MuteParticipantService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *MuteParticipantService) WithAuthPlacement(p AuthPlacement) *MuteParticipantService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// ConferenceID sets the conference the leg belongs to.
func (s *MuteParticipantService) ConferenceID(id string) *MuteParticipantService {
	s.conferenceID = id
	return s
}

// NetworkID sets the leg to mute or unmute.
func (s *MuteParticipantService) NetworkID(id string) *MuteParticipantService {
	s.networkID = id
	return s
}

// Unmute switches the action from mute to unmute.
func (s *MuteParticipantService) Unmute() *MuteParticipantService {
	s.unmute = true
	return s
}

// Validate validates the service parameters.
func (s *MuteParticipantService) Validate() error {
	if err := requireIDs(map[string]string{
		"conferenceid": s.conferenceID,
		"networkid":    s.networkID,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("MuteParticipantService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *MuteParticipantService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	action := "mute"
	if s.unmute {
		action = "unmute"
	}
	f := make(url.Values)
	f.Set("action", action)
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(legPath(s.conferenceID, s.networkID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "MuteParticipantService.Do")
}

func legPath(conferenceID, networkID string) string {
	return apiPrefix + "/conference/" + url.PathEscape(conferenceID) + "/" + url.PathEscape(networkID)
}
