// Package youtube uploads videos to YouTube with a single multipart request.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/ccfrost/climbsync/internal/config"
	"github.com/ccfrost/climbsync/internal/lib"
)

const (
	defaultContentType = "video/mp4"
	titleTimeLayout    = "20060102_150405"
	// maxErrorBody caps how much of a failed response is kept for the error message.
	maxErrorBody = 64 * 1024
)

// Client implements lib.VideoUploader against the YouTube Data API.
type Client struct {
	Tokens     lib.TokenProvider
	HTTPClient *http.Client
	Endpoint   string

	Description   string
	PrivacyStatus string
	TitlePrefix   string

	// TempDir holds the temporary copy of each video while it is uploaded.
	TempDir string

	now func() time.Time
}

var _ lib.VideoUploader = (*Client)(nil)

// NewClient returns a Client configured from cfg.
func NewClient(cfg config.ClimbsyncConfig, tokens lib.TokenProvider) *Client {
	return &Client{
		Tokens:        tokens,
		HTTPClient:    http.DefaultClient,
		Endpoint:      cfg.YouTube.Endpoint,
		Description:   cfg.YouTube.Description,
		PrivacyStatus: cfg.YouTube.PrivacyStatus,
		TitlePrefix:   cfg.YouTube.TitlePrefix,
		TempDir:       cfg.CacheDir,
	}
}

type snippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type status struct {
	PrivacyStatus string `json:"privacyStatus"`
}

type videoMetadata struct {
	Snippet snippet `json:"snippet"`
	Status  status  `json:"status"`
}

type videoResource struct {
	ID string `json:"id"`
}

func (c *Client) timeNow() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Client) metadata(item lib.MediaItem) videoMetadata {
	title := item.DisplayName
	if title == "" {
		title = c.TitlePrefix + c.timeNow().Format(titleTimeLayout)
	}
	return videoMetadata{
		Snippet: snippet{Title: title, Description: c.Description},
		Status:  status{PrivacyStatus: c.PrivacyStatus},
	}
}

// Upload sends item as account and returns the new video's ID.
func (c *Client) Upload(ctx context.Context, item lib.MediaItem, account lib.Credentials) (string, error) {
	tmp, err := lib.MaterializeTemp(ctx, item, c.TempDir)
	if err != nil {
		return "", err
	}
	defer tmp.Remove()

	token, err := c.Tokens.Token(ctx, account.AccountIdentifier, lib.UploadScope)
	if err != nil {
		return "", fmt.Errorf("%w: %w", lib.ErrAuthFailed, err)
	}

	meta, err := json.Marshal(c.metadata(item))
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	contentType := item.MIMEType
	if contentType == "" {
		contentType = defaultContentType
	}

	f, err := os.Open(tmp.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open temporary copy of %s: %w", item.DisplayName, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)
	bar := lib.NewProgressBar(tmp.Size, "Uploading "+item.DisplayName)
	go func() {
		pw.CloseWithError(writeBody(mw, meta, item.DisplayName, contentType, io.TeeReader(f, bar)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &lib.TransportError{Err: err}
	}
	defer resp.Body.Close()
	_ = bar.Finish()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &lib.TransportError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var video videoResource
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return "", fmt.Errorf("%w: cannot decode response: %v", lib.ErrProtocolViolation, err)
	}
	if video.ID == "" {
		return "", fmt.Errorf("%w: response has no video id", lib.ErrProtocolViolation)
	}
	lib.Logger().Debug("Video accepted",
		slog.String("file", item.DisplayName),
		slog.String("video_id", video.ID),
		slog.Int64("bytes", tmp.Size))
	return video.ID, nil
}

// writeBody writes the metadata part followed by the media part.
func writeBody(mw *multipart.Writer, meta []byte, filename, contentType string, media io.Reader) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="metadata"`)
	h.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(meta); err != nil {
		return err
	}

	h = make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err = mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, media); err != nil {
		return err
	}
	return mw.Close()
}
