//go:generate go run github.com/golang/mock/mockgen -source=${GOFILE} -destination=zz_generated_mocks_test.go -package=googlephotos

// Package googlephotos uploads videos into a Google Photos library.
package googlephotos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gphotos "github.com/gphotosuploader/google-photos-api-client-go/v3"
	"github.com/gphotosuploader/google-photos-api-client-go/v3/media_items"
	"golang.org/x/oauth2"

	"github.com/ccfrost/climbsync/internal/lib"
)

const (
	AppendOnlyScope  = "https://www.googleapis.com/auth/photoslibrary.appendonly"
	EditAppDataScope = "https://www.googleapis.com/auth/photoslibrary.edit.appcreateddata"
)

// Scopes lists every scope the uploader needs when connecting an account.
var Scopes = []string{AppendOnlyScope, EditAppDataScope}

// MediaUploader uploads raw bytes and returns an upload token.
type MediaUploader interface {
	UploadFile(ctx context.Context, filePath string) (string, error)
}

// MediaItemsService turns upload tokens into library items.
type MediaItemsService interface {
	Create(ctx context.Context, item media_items.SimpleMediaItem) (*media_items.MediaItem, error)
}

// AlbumsService adds library items to an album.
type AlbumsService interface {
	AddMediaItems(ctx context.Context, albumID string, mediaItemIDs []string) error
}

// Services is the part of the Google Photos API the uploader calls.
type Services struct {
	Uploader   MediaUploader
	MediaItems MediaItemsService
	Albums     AlbumsService
}

// NewServices adapts a gphotos client.
func NewServices(c *gphotos.Client) Services {
	return Services{
		Uploader:   c.Uploader,
		MediaItems: c.MediaItems,
		Albums:     c.Albums,
	}
}

// Connector returns the API services authorized as account.
type Connector func(ctx context.Context, account lib.Credentials) (Services, error)

// Uploader implements lib.VideoUploader for Google Photos.
type Uploader struct {
	Connect Connector
	// AlbumID, if set, receives every uploaded video.
	AlbumID string
	TempDir string
}

var _ lib.VideoUploader = (*Uploader)(nil)

// Upload returns the ID of the media item created for item.
func (u *Uploader) Upload(ctx context.Context, item lib.MediaItem, account lib.Credentials) (string, error) {
	tmp, err := lib.MaterializeTemp(ctx, item, u.TempDir)
	if err != nil {
		return "", err
	}
	defer tmp.Remove()

	svc, err := u.Connect(ctx, account)
	if err != nil {
		if errors.Is(err, lib.ErrAuthFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", lib.ErrAuthFailed, err)
	}

	// TODO: report upload progress; UploadFile reads the file itself.
	uploadToken, err := svc.Uploader.UploadFile(ctx, tmp.Path)
	if err != nil {
		return "", classify(fmt.Errorf("failed to upload file %s: %w", item.DisplayName, err))
	}

	mediaItem, err := svc.MediaItems.Create(ctx, media_items.SimpleMediaItem{
		UploadToken: uploadToken,
		Filename:    item.DisplayName,
	})
	if err != nil {
		return "", classify(fmt.Errorf("failed to create media item for %s: %w", item.DisplayName, err))
	}
	if mediaItem == nil || mediaItem.ID == "" {
		return "", fmt.Errorf("%w: no media item id for %s", lib.ErrProtocolViolation, item.DisplayName)
	}
	lib.Logger().Debug("Successfully created media item",
		slog.String("file", item.DisplayName),
		slog.String("media_id", mediaItem.ID))

	// The item exists remotely now, so a failed album add must not fail the upload.
	if u.AlbumID != "" {
		if err := svc.Albums.AddMediaItems(ctx, u.AlbumID, []string{mediaItem.ID}); err != nil {
			lib.Logger().Error("Error adding media item to album",
				slog.String("media_id", mediaItem.ID),
				slog.String("album_id", u.AlbumID),
				slog.String("error", err.Error()))
		}
	}
	return mediaItem.ID, nil
}

// classify maps an API error onto the upload error categories.
func classify(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: %w", lib.ErrAuthFailed, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &lib.TransportError{Err: err}
}
