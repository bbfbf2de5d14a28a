package main

import (
	"context"
	"fmt"

	gphotos "github.com/gphotosuploader/google-photos-api-client-go/v3"

	"github.com/ccfrost/climbsync/internal/auth"
	"github.com/ccfrost/climbsync/internal/config"
	"github.com/ccfrost/climbsync/internal/googlephotos"
	"github.com/ccfrost/climbsync/internal/jobs"
	"github.com/ccfrost/climbsync/internal/lib"
	"github.com/ccfrost/climbsync/internal/settings"
	"github.com/ccfrost/climbsync/internal/youtube"
)

// syncJobName is the unique name of the sync job; enqueueing it replaces a pending run.
const syncJobName = "manual_sync"

// scopesFor returns the scopes an account must grant for the configured destination.
func scopesFor(cfg config.ClimbsyncConfig) []string {
	if cfg.Destination == config.DestinationGooglePhotos {
		return googlephotos.Scopes
	}
	return []string{lib.UploadScope}
}

func newTokenStore(cfg config.ClimbsyncConfig) *auth.Store {
	return auth.NewStore(cfg, scopesFor(cfg)...)
}

// newUploader returns the uploader for the configured destination.
func newUploader(cfg config.ClimbsyncConfig, tokens *auth.Store) lib.VideoUploader {
	if cfg.Destination == config.DestinationGooglePhotos {
		return &googlephotos.Uploader{
			AlbumID: cfg.GooglePhotos.AlbumId,
			TempDir: cfg.CacheDir,
			Connect: func(ctx context.Context, account lib.Credentials) (googlephotos.Services, error) {
				httpClient, err := tokens.Client(ctx, account.AccountIdentifier, googlephotos.AppendOnlyScope)
				if err != nil {
					return googlephotos.Services{}, err
				}
				client, err := gphotos.NewClient(httpClient)
				if err != nil {
					return googlephotos.Services{}, fmt.Errorf("failed to create Google Photos client: %w", err)
				}
				return googlephotos.NewServices(client), nil
			},
		}
	}
	return youtube.NewClient(cfg, tokens)
}

func newSyncer(cfg config.ClimbsyncConfig, store *settings.Store, uploader lib.VideoUploader, observer lib.SyncObserver) *lib.Syncer {
	return &lib.Syncer{
		Settings:  store,
		Directory: lib.LocalDirectory{},
		Uploader:  uploader,
		Limiter:   lib.NewLimiter(cfg.UploadsPerSecond, cfg.UploadBurst),
		Observer:  observer,
	}
}

// syncWork adapts a sync run to the job runner. A run with nothing to do succeeds.
func syncWork(syncer *lib.Syncer, tempDir string) jobs.Work {
	return func(ctx context.Context) jobs.Result {
		if err := lib.SweepTempFiles(tempDir); err != nil {
			lib.Logger().Warn("Failed to sweep stale temporary files", "error", err)
		}
		out := syncer.Run(ctx)
		switch out.Status {
		case lib.StatusSucceeded, lib.StatusNoOp:
			return jobs.Result{State: jobs.Succeeded, Message: out.Message}
		default:
			return jobs.Result{State: jobs.Failed, Message: out.Message}
		}
	}
}

// syncConstraints returns the constraints a sync job waits for.
func syncConstraints(cfg config.ClimbsyncConfig) []jobs.Constraint {
	if cfg.Sync.RequireNetworkHost == "" {
		return nil
	}
	return []jobs.Constraint{jobs.NetworkReachable(cfg.Sync.RequireNetworkHost)}
}
