package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Status is the terminal state of a sync run.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusNoOp
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusNoOp:
		return "noop"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the single value a sync run produces.
// Uploads recorded before a failure stay recorded.
type Outcome struct {
	Status   Status
	Message  string
	Uploaded int
	Err      error
}

// SyncObserver receives per-upload and per-run events, e.g. for metrics.
type SyncObserver interface {
	ObserveUpload(kind string)
	ObservePending(n int)
	ObserveRun(status string, d time.Duration)
}

// Syncer uploads every not-yet-uploaded video in the configured folder.
// A Syncer must not run concurrently with another Syncer sharing the same Settings;
// the job runner guarantees this.
type Syncer struct {
	Settings  SettingsStore
	Directory DirectoryAccess
	Uploader  VideoUploader

	// Limiter paces uploads. Nil means no pacing.
	Limiter *rate.Limiter
	// Observer is optional.
	Observer SyncObserver
}

// NewLimiter returns a limiter allowing perSecond uploads with the given burst.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Run performs one sync run. It never returns an error; every failure is
// reported through the Outcome.
func (s *Syncer) Run(ctx context.Context) Outcome {
	start := time.Now()
	out := s.run(ctx)
	if s.Observer != nil {
		s.Observer.ObserveRun(out.Status.String(), time.Since(start))
	}

	attrs := []any{
		slog.String("status", out.Status.String()),
		slog.Int("uploaded", out.Uploaded),
		slog.Duration("elapsed", time.Since(start)),
	}
	if out.Err != nil {
		attrs = append(attrs, slog.String("kind", ErrorKind(out.Err)), slog.String("error", out.Err.Error()))
		logger.Error("Sync run failed", attrs...)
	} else {
		logger.Info("Sync run finished", attrs...)
	}
	return out
}

func failed(uploaded int, err error, format string, args ...any) Outcome {
	return Outcome{
		Status:   StatusFailed,
		Message:  fmt.Sprintf(format, args...),
		Uploaded: uploaded,
		Err:      err,
	}
}

func (s *Syncer) run(ctx context.Context) Outcome {
	// --- Preconditions ---
	folder, err := s.Settings.Folder(ctx)
	if err != nil {
		return failed(0, err, "cannot read settings: %v", err)
	}
	if folder == "" {
		return failed(0, fmt.Errorf("%w: no target folder", ErrPreconditionMissing), "no target folder configured")
	}
	account, err := s.Settings.Account(ctx)
	if err != nil {
		return failed(0, err, "cannot read settings: %v", err)
	}
	if account == "" {
		return failed(0, fmt.Errorf("%w: no account", ErrPreconditionMissing), "no account connected")
	}

	// --- Listing ---
	entries, err := s.Directory.List(ctx, folder)
	if err != nil {
		if !errors.Is(err, ErrDirectoryUnavailable) {
			err = fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
		}
		return failed(0, err, "cannot access target folder: %v", err)
	}
	ledger, err := LoadLedger(ctx, s.Settings)
	if err != nil {
		return failed(0, err, "cannot read upload history: %v", err)
	}
	eligible := SelectVideos(entries, ledger)
	if s.Observer != nil {
		s.Observer.ObservePending(len(eligible))
	}
	if len(eligible) == 0 {
		logger.Info("No videos waiting to be uploaded",
			slog.String("folder", folder),
			slog.Int("listed", len(entries)),
			slog.Int("recorded", ledger.Len()))
		return Outcome{Status: StatusNoOp, Message: "no videos waiting to be uploaded"}
	}
	logger.Info("Found videos to upload",
		slog.String("folder", folder),
		slog.Int("count", len(eligible)))

	// --- Upload Loop ---
	creds := Credentials{AccountIdentifier: account}
	uploaded := 0
	for i, entry := range eligible {
		if err := ctx.Err(); err != nil {
			return failed(uploaded, err, "upload interrupted before %s (%v)", entry.DisplayName, err)
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return failed(uploaded, err, "upload interrupted before %s (%v)", entry.DisplayName, err)
			}
		}

		logger.Debug("Uploading video",
			slog.Int("index", i),
			slog.String("file", entry.DisplayName),
			slog.String("identifier", entry.Identifier))
		item := MediaItem{
			DirEntry: entry,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				return s.Directory.Open(ctx, entry)
			},
		}
		remoteID, err := s.Uploader.Upload(ctx, item, creds)
		if err != nil {
			s.observeUpload(err)
			return failed(uploaded, err, "upload failed: %s (%v)", entry.DisplayName, err)
		}

		// The remote side has committed the upload; record it before moving on.
		if err := ledger.Record(ctx, entry.Identifier, remoteID); err != nil {
			s.observeUpload(err)
			return failed(uploaded, err, "uploaded %s but could not record it (%v)", entry.DisplayName, err)
		}
		s.observeUpload(nil)
		uploaded++
		logger.Info("Uploaded video",
			slog.String("file", entry.DisplayName),
			slog.String("remote_id", remoteID))
	}

	return Outcome{
		Status:   StatusSucceeded,
		Message:  fmt.Sprintf("upload complete: %d videos", uploaded),
		Uploaded: uploaded,
	}
}

func (s *Syncer) observeUpload(err error) {
	if s.Observer == nil {
		return
	}
	if err == nil {
		s.Observer.ObserveUpload("success")
		return
	}
	s.Observer.ObserveUpload(ErrorKind(err))
}
