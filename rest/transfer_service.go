package rest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/telesocial/telesocial-sdk-go/envelope"
	"github.com/telesocial/telesocial-sdk-go/internal/httpx"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

// UploadMediaService posts a local audio file against a previously
// obtained upload grant. A missing or unreadable file fails with a
// local I/O error before any network traffic; an invalid or expired
// grant comes back from the service as a remote error.
type UploadMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	grantID  string
	filePath string
}

// NewUploadMediaService creates a new UploadMediaService.
func NewUploadMediaService(appKey string) *UploadMediaService {
	return &UploadMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *UploadMediaService) WithClient(client transport.HTTPClient) *UploadMediaService {
	s.client = client
	return s
}

// WithBaseURL overrides the default service endpoint.
func (s *UploadMediaService) WithBaseURL(baseURL string) *UploadMediaService {
	s.reqBuilder.WithBaseURL(baseURL)
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *UploadMediaService) WithAuthPlacement(p AuthPlacement) *UploadMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// GrantID sets the upload grant authorizing this upload.
func (s *UploadMediaService) GrantID(id string) *UploadMediaService {
	s.grantID = id
	return s
}

// FilePath sets the local audio file to upload.
func (s *UploadMediaService) FilePath(path string) *UploadMediaService {
	s.filePath = path
	return s
}

// Validate validates the service parameters.
func (s *UploadMediaService) Validate() error {
	if err := requireIDs(map[string]string{
		"grantid":  s.grantID,
		"filepath": s.filePath,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("UploadMediaService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service.
func (s *UploadMediaService) Do(ctx context.Context) (*envelope.Envelope, error) {
	const op = "UploadMediaService.Do"
	if err := s.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrLocalIO).
			WithCause(err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("mediafile", filepath.Base(s.filePath))
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		return nil, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrLocalIO).
			WithCause(err)
	}

	req := s.reqBuilder.
		WithMethod(http.MethodPost).
		WithPath(apiPrefix + "/media/" + url.PathEscape(s.grantID)).
		WithBody(&body, writer.FormDataContentType()).
		Build()
	return execute(ctx, s.client, req, op)
}

// DownloadMediaService fetches media content and writes it to a local
// path. The body lands in a temporary file in the destination directory
// and is renamed into place only on success, so a failed download never
// leaves a partial file behind.
type DownloadMediaService struct {
	client     transport.HTTPClient
	reqBuilder *requestBuilder

	downloadURL string
	destPath    string
}

// NewDownloadMediaService creates a new DownloadMediaService. The
// download URL is the one reported by MediaStatusService for a media
// id whose content exists.
func NewDownloadMediaService(appKey string) *DownloadMediaService {
	return &DownloadMediaService{
		client:     httpx.NewDefaultHTTPClient(),
		reqBuilder: newRequestBuilder(appKey),
	}
}

// WithClient sets the HTTP client for the service.
func (s *DownloadMediaService) WithClient(client transport.HTTPClient) *DownloadMediaService {
	s.client = client
	return s
}

// WithAuthPlacement sets where the appkey credential travels.
func (s *DownloadMediaService) WithAuthPlacement(p AuthPlacement) *DownloadMediaService {
	s.reqBuilder.WithPlacement(p)
	return s
}

// DownloadURL sets the content URL to fetch.
func (s *DownloadMediaService) DownloadURL(u string) *DownloadMediaService {
	s.downloadURL = u
	return s
}

// DestPath sets the local file the content is written to.
func (s *DownloadMediaService) DestPath(path string) *DownloadMediaService {
	s.destPath = path
	return s
}

// Validate validates the service parameters.
func (s *DownloadMediaService) Validate() error {
	if err := requireIDs(map[string]string{
		"downloadurl": s.downloadURL,
		"destpath":    s.destPath,
	}); err != nil {
		return sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp("DownloadMediaService.Validate").
			WithKind(sdkerr.ErrValidation).
			WithMessage(err.Error())
	}
	return nil
}

// Do executes the service and returns the number of bytes written.
func (s *DownloadMediaService) Do(ctx context.Context) (int64, error) {
	const op = "DownloadMediaService.Do"
	if err := s.Validate(); err != nil {
		return 0, err
	}

	req := s.reqBuilder.
		WithMethod(http.MethodGet).
		WithFullURL(s.downloadURL).
		Build()

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return 0, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrNetwork).
			WithCause(err)
	}
	if err := checkResponseError(resp); err != nil {
		return 0, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrAPIError).
			WithStatus(resp.StatusCode).
			WithCause(err)
	}

	if err := writeAtomic(s.destPath, resp.Body); err != nil {
		return 0, sdkerr.NewSDKError().
			WithSubsys(subsys).
			WithOp(op).
			WithKind(sdkerr.ErrLocalIO).
			WithCause(err)
	}
	return int64(len(resp.Body)), nil
}

// writeAtomic stages the content next to dest and renames it into
// place; on any failure the temp file is removed and dest is untouched.
func writeAtomic(dest string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".telesocial-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, dest)
	}
	if werr != nil {
		os.Remove(tmpName)
		return werr
	}
	return nil
}
