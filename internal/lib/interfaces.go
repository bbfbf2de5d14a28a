//go:generate go run github.com/golang/mock/mockgen -source=${GOFILE} -destination=zz_generated_mocks_test.go -package=lib

package lib

import (
	"context"
	"io"
)

// UploadScope is the authorization scope required to call the YouTube upload endpoint.
const UploadScope = "https://www.googleapis.com/auth/youtube.upload"

// DirEntry is one immediate child of the target folder.
type DirEntry struct {
	Identifier  string
	DisplayName string
	MIMEType    string // Empty when unknown.
	IsFile      bool
}

// MediaItem is a listed file together with a way to read its bytes.
// Two items with the same Identifier denote the same file across runs.
type MediaItem struct {
	DirEntry
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// Credentials identifies the account to upload as. It never holds secrets.
type Credentials struct {
	AccountIdentifier string
}

// DirectoryAccess lists and reads files granted via a stored folder selection.
type DirectoryAccess interface {
	List(ctx context.Context, folder string) ([]DirEntry, error)
	Open(ctx context.Context, entry DirEntry) (io.ReadCloser, error)
}

// VideoUploader transmits one video and returns the remote identifier.
type VideoUploader interface {
	Upload(ctx context.Context, item MediaItem, account Credentials) (string, error)
}

// TokenProvider returns a short-lived bearer token for account and scope.
type TokenProvider interface {
	Token(ctx context.Context, account, scope string) (string, error)
}

// SettingsStore is the durable key-value state the sync run depends on.
// All writes are persisted before the call returns.
type SettingsStore interface {
	Folder(ctx context.Context) (string, error)
	SetFolder(ctx context.Context, folder string) error
	Account(ctx context.Context) (string, error)
	SetAccount(ctx context.Context, account string) error
	ClearAccount(ctx context.Context) error
	UploadedIdentifiers(ctx context.Context) ([]string, error)
	AddUploaded(ctx context.Context, identifier, remoteID string) error
}
