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

// CreateMediaService allocates a new media id. Content is attached
// later by recording or uploading against the id.
type CreateMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder
}

// NewCreateMediaService creates a new CreateMediaService.
func NewCreateMediaService(appKey string) *CreateMediaService {
	return &CreateMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *CreateMediaService) WithClient(client transport.HTTPClient) *CreateMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *CreateMediaService) WithBaseURL(baseURL string) *CreateMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *CreateMediaService) WithAuthPlacement(p AuthPlacement) *CreateMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// Do executes the service.
func (s *CreateMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/media").
		WithForm(make(url.Values)).
		Build()
	return execute(ctx, s.client, req, "CreateMediaService.Do")
}

// ListMediaService lists the application's media items.
type ListMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder
}

// NewListMediaService creates a new ListMediaService.
func NewListMediaService(appKey string) *ListMediaService {
	return &ListMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *ListMediaService) WithClient(client transport.HTTPClient) *ListMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *ListMediaService) WithBaseURL(baseURL string) *ListMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *ListMediaService) WithAuthPlacement(p AuthPlacement) *ListMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// Do executes the service.
func (s *ListMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/media").
		Build()
	return execute(ctx, s.client, req, "ListMediaService.Do")
}

// MediaStatusService reports the state of a media id and any operation
// in progress, including the download URL and file size once content
// exists.
type MediaStatusService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	mediaID string
}

// NewMediaStatusService creates a new MediaStatusService.
func NewMediaStatusService(appKey string) *MediaStatusService {
	return &MediaStatusService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *MediaStatusService) WithClient(client transport.HTTPClient) *MediaStatusService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *MediaStatusService) WithBaseURL(baseURL string) *MediaStatusService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *MediaStatusService) WithAuthPlacement(p AuthPlacement) *MediaStatusService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// MediaID sets the media id to query.
func (s *MediaStatusService) MediaID(id string) *MediaStatusService {
	s.mediaID = id
	return s
}

// Validate validates the service parameters.
func (s *MediaStatusService) Validate() error {
	if s.mediaID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("MediaStatusService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("mediaid is required")
	}
	return nil
}

// Do executes the service.
func (s *MediaStatusService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithPath(apiPrefix + "/media/status/" + url.PathEscape(s.mediaID)).
		Build()
	return execute(ctx, s.client, req, "MediaStatusService.Do")
}

// RecordMediaService calls the network id and plays a record prompt;
// the captured audio lands under the media id.
type RecordMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	mediaID    string
	networkID  string
	greetingID *string
}

// NewRecordMediaService creates a new RecordMediaService.
func NewRecordMediaService(appKey string) *RecordMediaService {
	return &RecordMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *RecordMediaService) WithClient(client transport.HTTPClient) *RecordMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *RecordMediaService) WithBaseURL(baseURL string) *RecordMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *RecordMediaService) WithAuthPlacement(p AuthPlacement) *RecordMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// MediaID sets the media id the recording is stored under.
func (s *RecordMediaService) MediaID(id string) *RecordMediaService {
	s.mediaID = id
	return s
}

// NetworkID sets the network id to call.
func (s *RecordMediaService) NetworkID(id string) *RecordMediaService {
	s.networkID = id
	return s
}

// GreetingID sets the media id of the greeting played when the phone
// is answered.
func (s *RecordMediaService) GreetingID(id string) *RecordMediaService {
	s.greetingID = &id
	return s
}

// Validate validates the service parameters.
func (s *RecordMediaService) Validate() error {
	if err := requireIDs(map[string]string{
		"mediaid":   s.mediaID,
		"networkid": s.networkID,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("RecordMediaService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *RecordMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "record")
	f.Set("networkid", s.networkID)
	if s.greetingID != nil {
		f.Set("greetingid", *s.greetingID)
	}
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/media/" + url.PathEscape(s.mediaID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "RecordMediaService.Do")
}

// BlastMediaService calls the network id and plays one or more
// previously recorded clips. MediaID and MediaIDs feed the same
// dispatch list, so a single id needs no pre-wrapping; each clip goes
// out as its own request, all with the same shape.
type BlastMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	mediaIDs   []string
	networkID  string
	greetingID *string
}

// NewBlastMediaService creates a new BlastMediaService.
func NewBlastMediaService(appKey string) *BlastMediaService {
	return &BlastMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *BlastMediaService) WithClient(client transport.HTTPClient) *BlastMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *BlastMediaService) WithBaseURL(baseURL string) *BlastMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *BlastMediaService) WithAuthPlacement(p AuthPlacement) *BlastMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// MediaID adds a single media id to play.
func (s *BlastMediaService) MediaID(id string) *BlastMediaService {
	s.mediaIDs = append(s.mediaIDs, id)
	return s
}

// MediaIDs adds a sequence of media ids to play.
func (s *BlastMediaService) MediaIDs(ids ...string) *BlastMediaService {
	s.mediaIDs = append(s.mediaIDs, ids...)
	return s
}

// NetworkID sets the network id to call.
func (s *BlastMediaService) NetworkID(id string) *BlastMediaService {
	s.networkID = id
	return s
}

// GreetingID sets the media id of the greeting played when the phone
// is answered.
func (s *BlastMediaService) GreetingID(id string) *BlastMediaService {
	s.greetingID = &id
	return s
}

// Validate validates the service parameters.
func (s *BlastMediaService) Validate() error {
	if err := s.validate(); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("BlastMediaService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service, one request per media id in the order
// given. Dispatch stops at the first failure; the returned envelope
// confirms the last dispatched clip.
func (s *BlastMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	const op = "BlastMediaService.Do"
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var env *envelope.Envelope
	for _, id := range s.mediaIDs {
		f := make(url.Values)
		f.Set("action", "blast")
		f.Set("networkid", s.networkID)
		if s.greetingID != nil {
			f.Set("greetingid", *s.greetingID)
		}
		req := s.reqBuilder.
			WithMethod(http.MethodPost).
			WithPath(apiPrefix + "/media/" + url.PathEscape(id)).
			WithForm(f).
			Build()
		var err error
		env, err = execute(ctx, s.client, req, op)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (s *BlastMediaService) validate() error {
	var errs []string
	if len(s.mediaIDs) == 0 {
		errs = append(errs, "at least one mediaid is required")
	}
	for _, id := range s.mediaIDs {
		if id == "" {
			errs = append(errs, "mediaid must not be blank")
			break
		}
	}
	if s.networkID == "" {
		errs = append(errs, "networkid is required")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// RemoveMediaService deletes a media item and its content.
type RemoveMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	mediaID string
}

// NewRemoveMediaService creates a new RemoveMediaService.
func NewRemoveMediaService(appKey string) *RemoveMediaService {
	return &RemoveMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *RemoveMediaService) WithClient(client transport.HTTPClient) *RemoveMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *RemoveMediaService) WithBaseURL(baseURL string) *RemoveMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *RemoveMediaService) WithAuthPlacement(p AuthPlacement) *RemoveMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// MediaID sets the media id to remove.
func (s *RemoveMediaService) MediaID(id string) *RemoveMediaService {
	s.mediaID = id
	return s
}

// Validate validates the service parameters.
func (s *RemoveMediaService) Validate() error {
	if s.mediaID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("RemoveMediaService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("mediaid is required")
	}
	return nil
}

// Do executes the service.
func (s *RemoveMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "remove")
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/media/" + url.PathEscape(s.mediaID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "RemoveMediaService.Do")
}

// RequestUploadGrantService asks for a short-lived token authorizing
// exactly one binary upload against the media id.
type RequestUploadGrantService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	mediaID string
}

// NewRequestUploadGrantService creates a new RequestUploadGrantService.
func NewRequestUploadGrantService(appKey string) *RequestUploadGrantService {
	return &RequestUploadGrantService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *RequestUploadGrantService) WithClient(client transport.HTTPClient) *RequestUploadGrantService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *RequestUploadGrantService) WithBaseURL(baseURL string) *RequestUploadGrantService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *RequestUploadGrantService) WithAuthPlacement(p AuthPlacement) *RequestUploadGrantService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// MediaID sets the media id the grant is issued for.
func (s *RequestUploadGrantService) MediaID(id string) *RequestUploadGrantService {
	s.mediaID = id
	return s
}

// Validate validates the service parameters.
func (s *RequestUploadGrantService) Validate() error {
	if s.mediaID == "" {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("RequestUploadGrantService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage("mediaid is required")
	}
	return nil
}

// Do executes the service.
func (s *RequestUploadGrantService) Do(ctx context.Context) (*envelope.Envelope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := make(url.Values)
	f.Set("action", "upload_grant")
	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/media/" + url.PathEscape(s.mediaID)).
		WithForm(f).
		Build()
	return execute(ctx, s.client, req, "RequestUploadGrantService.Do")
}
