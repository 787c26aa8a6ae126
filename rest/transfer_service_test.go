package rest

import (
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telesocial/telesocial-sdk-go/internal/testutil"
	"github.com/telesocial/telesocial-sdk-go/sdkerr"
	"github.com/telesocial/telesocial-sdk-go/transport"
)

func TestUploadMediaService_Do_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp3")
	content := []byte("fake mp3 bytes")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Contains(t, req.FullURL, "/api/rest/media/1011")

			mediaType, params, err := mime.ParseMediaType(req.Headers.Get("Content-Type"))
			require.NoError(t, err)
			assert.Equal(t, "multipart/form-data", mediaType)

			reader := multipart.NewReader(req.Body, params["boundary"])
			form, err := reader.ReadForm(1 << 20)
			require.NoError(t, err)
			files := form.File["mediafile"]
			require.Len(t, files, 1)
			assert.Equal(t, "clip.mp3", files[0].Filename)

			f, err := files[0].Open()
			require.NoError(t, err)
			defer f.Close()
			got := make([]byte, len(content))
			_, err = f.Read(got)
			require.NoError(t, err)
			assert.Equal(t, content, got)

			return &transport.Response{
				StatusCode: 200,
				Body:       []byte(`{"UploadResponse":{"status":200}}`),
			}, nil
		},
	}

	env, err := NewUploadMediaService("key").
		WithClient(fakeClient).
		GrantID("1011").
		FilePath(path).
		Do(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 200, env.Status())
}

func TestUploadMediaService_Do_ExpiredGrantIsRemoteError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			return &transport.Response{
				StatusCode: 403,
				Body:       []byte(`{"UploadResponse":{"status":403,"message":"grant expired"}}`),
			}, nil
		},
	}

	_, err := NewUploadMediaService("key").
		WithClient(fakeClient).
		GrantID("1011").
		FilePath(path).
		Do(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrAPIError)
	assert.NotErrorIs(t, err, sdkerr.ErrLocalIO)
	assert.Equal(t, 403, err.(*sdkerr.SDKError).Status())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "grant expired", apiErr.Message)
}

func TestUploadMediaService_Do_MissingFileIsLocalError(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			t.Fatal("no request expected when the local file is unreadable")
			return nil, nil
		},
	}

	_, err := NewUploadMediaService("key").
		WithClient(fakeClient).
		GrantID("1011").
		FilePath(filepath.Join(t.TempDir(), "no-such-file.mp3")).
		Do(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrLocalIO)
	assert.NotErrorIs(t, err, sdkerr.ErrAPIError)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, fakeClient.Calls)
}

func TestDownloadMediaService_Do_Success(t *testing.T) {
	content := []byte("downloaded audio")
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Contains(t, req.FullURL, "http://files.example.com/m77.mp3")
			return &transport.Response{StatusCode: 200, Body: content}, nil
		},
	}

	dest := filepath.Join(t.TempDir(), "m77.mp3")
	n, err := NewDownloadMediaService("key").
		WithClient(fakeClient).
		DownloadURL("http://files.example.com/m77.mp3").
		DestPath(dest).
		Do(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDownloadMediaService_Do_SignedURL(t *testing.T) {
	fakeClient := &testutil.FakeHTTPClient{
		DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			u, err := url.Parse(req.FullURL)
			require.NoError(t, err)
			// the signed token and the appended appkey must share one
			// query string
			assert.Equal(t, 1, strings.Count(req.FullURL, "?"))
			assert.Equal(t, "abc", u.Query().Get("token"))
			assert.Equal(t, "key", u.Query().Get("appkey"))
			return &transport.Response{StatusCode: 200, Body: []byte("audio")}, nil
		},
	}

	dest := filepath.Join(t.TempDir(), "m77.mp3")
	_, err := NewDownloadMediaService("key").
		WithClient(fakeClient).
		DownloadURL("http://files.example.com/m77.mp3?token=abc").
		DestPath(dest).
		Do(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, dest)
}

func TestDownloadMediaService_Do_FailureLeavesNoFile(t *testing.T) {
	t.Run("network failure", func(t *testing.T) {
		fakeClient := &testutil.FakeHTTPClient{
			DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
				return nil, errors.New("connection reset mid-transfer")
			},
		}

		dir := t.TempDir()
		dest := filepath.Join(dir, "m77.mp3")
		_, err := NewDownloadMediaService("key").
			WithClient(fakeClient).
			DownloadURL("http://files.example.com/m77.mp3").
			DestPath(dest).
			Do(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, sdkerr.ErrNetwork)
		assert.NoFileExists(t, dest)
		assertNoStrays(t, dir)
	})

	t.Run("remote failure", func(t *testing.T) {
		fakeClient := &testutil.FakeHTTPClient{
			DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
				return &transport.Response{StatusCode: 404, Body: []byte(`{"MediaResponse":{"status":404}}`)}, nil
			},
		}

		dir := t.TempDir()
		dest := filepath.Join(dir, "m77.mp3")
		_, err := NewDownloadMediaService("key").
			WithClient(fakeClient).
			DownloadURL("http://files.example.com/m77.mp3").
			DestPath(dest).
			Do(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, sdkerr.ErrAPIError)
		assert.NoFileExists(t, dest)
		assertNoStrays(t, dir)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		fakeClient := &testutil.FakeHTTPClient{
			DoFunc: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
				return &transport.Response{StatusCode: 200, Body: []byte("audio")}, nil
			},
		}

		dest := filepath.Join(t.TempDir(), "missing-subdir", "m77.mp3")
		_, err := NewDownloadMediaService("key").
			WithClient(fakeClient).
			DownloadURL("http://files.example.com/m77.mp3").
			DestPath(dest).
			Do(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, sdkerr.ErrLocalIO)
		assert.NoFileExists(t, dest)
	})
}

// assertNoStrays verifies no staged temp files survived a failed
// download.
func assertNoStrays(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
