package lib

import (
	"context"
	"fmt"
	"log/slog"
)

// Ledger records which source identifiers have been uploaded.
// It is loaded once per run; entries are never removed.
type Ledger struct {
	store    SettingsStore
	uploaded map[string]struct{}
}

// LoadLedger snapshots the uploaded set from store.
func LoadLedger(ctx context.Context, store SettingsStore) (*Ledger, error) {
	ids, err := store.UploadedIdentifiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load uploaded identifiers: %w", err)
	}
	l := &Ledger{
		store:    store,
		uploaded: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		l.uploaded[id] = struct{}{}
	}
	return l, nil
}

// Contains reports whether identifier has already been uploaded.
func (l *Ledger) Contains(identifier string) bool {
	_, ok := l.uploaded[identifier]
	return ok
}

// Len returns the number of recorded identifiers.
func (l *Ledger) Len() int {
	return len(l.uploaded)
}

// Record durably marks identifier as uploaded. Recording an identifier twice is a no-op.
// The write ignores cancellation of ctx: once the remote side has accepted the
// upload it must be recorded.
func (l *Ledger) Record(ctx context.Context, identifier, remoteID string) error {
	if l.Contains(identifier) {
		return nil
	}
	if err := l.store.AddUploaded(context.WithoutCancel(ctx), identifier, remoteID); err != nil {
		return fmt.Errorf("failed to record upload of %s: %w", identifier, err)
	}
	l.uploaded[identifier] = struct{}{}
	logger.Debug("Recorded upload",
		slog.String("identifier", identifier),
		slog.String("remote_id", remoteID))
	return nil
}
