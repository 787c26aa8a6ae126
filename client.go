// Package telesocial is a client for the Telesocial REST API: network
// id registration, conference call control, and media recording,
// blasting, upload and download.
//
// Client wraps the per-operation services in the rest package behind
// one method per remote operation. Every method returns the service's
// response as a generic envelope; callers navigate it by key rather
// than through fixed response structs.
package telesocial

import (
	"context"

	"go.uber.org/zap"

	"github.com/telesocial/telesocial-sdk-go/envelope"
	"github.com/telesocial/telesocial-sdk-go/rest"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at a non-default service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient injects a custom transport, e.g. one with timeouts or
// a fake for tests.
func WithHTTPClient(client transport.HTTPClient) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithLogger enables debug logging of each call. The default logger
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAuthInHeader sends the appkey as an X-Api-Key header instead of
// a request parameter.
func WithAuthInHeader() Option {
	return func(c *Client) { c.placement = rest.AuthInHeader }
}

// Client holds the credential and endpoint for one application.
// It is immutable after construction and safe for concurrent use as
// long as the injected transport is.
type Client struct {
	appKey     string
	baseURL    string
	httpClient transport.HTTPClient
	logger     *zap.Logger
	placement  rest.AuthPlacement
}

// NewClient creates a Client for the given application key.
func NewClient(appKey string, opts ...Option) (*Client, error) {
	if appKey == "" {
		return nil, sdkerr.NewSDKError().
			WithSubsys("client").
			WithOp("NewClient").
			WithKind(sdkerr.ErrConfiguration).
			WithMessage("appkey is required")
	}
	c := &Client{
		appKey: appKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Version reports the API version of the remote service.
func (c *Client) Version(ctx context.Context) (*rest.Version, error) {
	svc := rest.NewVersionService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	v, err := svc.Do(ctx)
	if err != nil {
		c.logFailure("Version", err)
		return nil, err
	}
	c.logger.Debug("telesocial call", zap.String("op", "Version"), zap.String("version", v.String()))
	return v, nil
}

// RegisterNetworkID registers a network id with a phone number, or
// relates an existing id to this application when phone is empty.
func (c *Client) RegisterNetworkID(ctx context.Context, networkID, phone string) (*envelope.Envelope, error) {
	svc := rest.NewRegisterNetworkIDService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		NetworkID(networkID)
	if phone != "" {
		svc.Phone(phone)
	}
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "RegisterNetworkID", svc.Do)
}

// NetworkIDStatus reports the registration state of a network id,
// including whether it is related to this application.
func (c *Client) NetworkIDStatus(ctx context.Context, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewNetworkIDStatusService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		NetworkID(networkID).
		CheckRelated()
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "NetworkIDStatus", svc.Do)
}

// ChangePhone moves an existing network id to a new phone number.
func (c *Client) ChangePhone(ctx context.Context, networkID, phone string) (*envelope.Envelope, error) {
	svc := rest.NewChangePhoneService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		NetworkID(networkID).
		Phone(phone)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "ChangePhone", svc.Do)
}

// ListNetworkIDs lists the network ids registered to this application.
func (c *Client) ListNetworkIDs(ctx context.Context) (*envelope.Envelope, error) {
	svc := rest.NewListNetworkIDsService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "ListNetworkIDs", svc.Do)
}

// CreateConference creates a conference led by the given network id.
func (c *Client) CreateConference(ctx context.Context, leaderNetworkID string) (*envelope.Envelope, error) {
	svc := rest.NewCreateConferenceService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		LeaderNetworkID(leaderNetworkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "CreateConference", svc.Do)
}

// AddParticipant dials exactly one network id into a conference.
func (c *Client) AddParticipant(ctx context.Context, conferenceID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewAddParticipantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID).
		NetworkID(networkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "AddParticipant", svc.Do)
}

// ConferenceDetails fetches the state of one conference.
func (c *Client) ConferenceDetails(ctx context.Context, conferenceID string) (*envelope.Envelope, error) {
	svc := rest.NewConferenceDetailsService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "ConferenceDetails", svc.Do)
}

// ListConferences lists this application's conference sessions.
func (c *Client) ListConferences(ctx context.Context) (*envelope.Envelope, error) {
	svc := rest.NewListConferencesService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "ListConferences", svc.Do)
}

// CloseConference ends an active conference.
func (c *Client) CloseConference(ctx context.Context, conferenceID string) (*envelope.Envelope, error) {
	svc := rest.NewCloseConferenceService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "CloseConference", svc.Do)
}

// HangupParticipant terminates one call leg.
func (c *Client) HangupParticipant(ctx context.Context, conferenceID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewHangupParticipantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID).
		NetworkID(networkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "HangupParticipant", svc.Do)
}

// MoveParticipant moves a live call leg between conferences.
func (c *Client) MoveParticipant(ctx context.Context, fromConferenceID, toConferenceID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewMoveParticipantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		FromConferenceID(fromConferenceID).
		ToConferenceID(toConferenceID).
		NetworkID(networkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "MoveParticipant", svc.Do)
}

// MuteParticipant mutes one call leg.
func (c *Client) MuteParticipant(ctx context.Context, conferenceID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewMuteParticipantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID).
		NetworkID(networkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "MuteParticipant", svc.Do)
}

// UnmuteParticipant unmutes one call leg.
func (c *Client) UnmuteParticipant(ctx context.Context, conferenceID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewMuteParticipantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		ConferenceID(conferenceID).
		NetworkID(networkID).
		Unmute()
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "UnmuteParticipant", svc.Do)
}

// CreateMedia allocates a new media id.
func (c *Client) CreateMedia(ctx context.Context) (*envelope.Envelope, error) {
	svc := rest.NewCreateMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "CreateMedia", svc.Do)
}

// ListMedia lists this application's media items.
func (c *Client) ListMedia(ctx context.Context) (*envelope.Envelope, error) {
	svc := rest.NewListMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "ListMedia", svc.Do)
}

// MediaStatus reports the state of a media id, including the download
// URL and file size once content exists.
func (c *Client) MediaStatus(ctx context.Context, mediaID string) (*envelope.Envelope, error) {
	svc := rest.NewMediaStatusService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		MediaID(mediaID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "MediaStatus", svc.Do)
}

// RecordMedia calls the network id and records its audio under the
// media id.
func (c *Client) RecordMedia(ctx context.Context, mediaID, networkID string) (*envelope.Envelope, error) {
	svc := rest.NewRecordMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		MediaID(mediaID).
		NetworkID(networkID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "RecordMedia", svc.Do)
}

// BlastMedia calls the network id and plays the given clips. One id or
// many, the request shape is the same.
func (c *Client) BlastMedia(ctx context.Context, networkID string, mediaIDs ...string) (*envelope.Envelope, error) {
	svc := rest.NewBlastMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		NetworkID(networkID).
		MediaIDs(mediaIDs...)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "BlastMedia", svc.Do)
}

// RemoveMedia deletes a media item.
func (c *Client) RemoveMedia(ctx context.Context, mediaID string) (*envelope.Envelope, error) {
	svc := rest.NewRemoveMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		MediaID(mediaID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "RemoveMedia", svc.Do)
}

// RequestUploadGrant asks for a one-shot upload token for a media id.
func (c *Client) RequestUploadGrant(ctx context.Context, mediaID string) (*envelope.Envelope, error) {
	svc := rest.NewRequestUploadGrantService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		MediaID(mediaID)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "RequestUploadGrant", svc.Do)
}

// UploadMedia posts a local audio file against an upload grant.
func (c *Client) UploadMedia(ctx context.Context, grantID, filePath string) (*envelope.Envelope, error) {
	svc := rest.NewUploadMediaService(c.appKey).
		WithBaseURL(c.baseURL).
		WithAuthPlacement(c.placement).
		GrantID(grantID).
		FilePath(filePath)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	return c.logged(ctx, "UploadMedia", svc.Do)
}

// DownloadMedia fetches media content to a local path and returns the
// number of bytes written. The destination is never left partial.
func (c *Client) DownloadMedia(ctx context.Context, downloadURL, destPath string) (int64, error) {
	svc := rest.NewDownloadMediaService(c.appKey).
		WithAuthPlacement(c.placement).
		DownloadURL(downloadURL).
		DestPath(destPath)
	if c.httpClient != nil {
		svc.WithClient(c.httpClient)
	}
	n, err := svc.Do(ctx)
	if err != nil {
		c.logFailure("DownloadMedia", err)
		return 0, err
	}
	c.logger.Debug("telesocial call", zap.String("op", "DownloadMedia"), zap.Int64("bytes", n))
	return n, nil
}

func (c *Client) logged(ctx context.Context, op string, do func(context.Context) (*envelope.Envelope, error)) (*envelope.Envelope, error) {
	env, err := do(ctx)
	if err != nil {
		c.logFailure(op, err)
		return nil, err
	}
	c.logger.Debug("telesocial call", zap.String("op", op), zap.Int("status", env.Status()))
	return env, nil
}

func (c *Client) logFailure(op string, err error) {
	c.logger.Debug("telesocial call failed", zap.String("op", op), zap.Error(err))
}
