package lib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalDirectory implements DirectoryAccess on the local filesystem.
// The folder selection is an absolute directory path.
type LocalDirectory struct{}

var _ DirectoryAccess = LocalDirectory{}

// FileIdentifier returns the stable identifier of the file at path.
func FileIdentifier(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func pathFromIdentifier(identifier string) (string, error) {
	u, err := url.Parse(identifier)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("not a file identifier: %q", identifier)
	}
	return filepath.FromSlash(u.Path), nil
}

// List returns the immediate children of folder in directory order.
func (LocalDirectory) List(ctx context.Context, folder string) ([]DirEntry, error) {
	if !filepath.IsAbs(folder) {
		return nil, fmt.Errorf("%w: folder %q is not an absolute path", ErrDirectoryUnavailable, folder)
	}
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	entries := make([]DirEntry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(folder, d.Name())
		entry := DirEntry{
			Identifier:  FileIdentifier(path),
			DisplayName: d.Name(),
			IsFile:      d.Type().IsRegular(),
		}
		if entry.IsFile {
			entry.MIMEType = detectMIMEType(path)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Open returns a reader over the entry's bytes.
func (LocalDirectory) Open(ctx context.Context, entry DirEntry) (io.ReadCloser, error) {
	path, err := pathFromIdentifier(entry.Identifier)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return f, nil
}

// detectMIMEType looks the extension up first and sniffs the content second.
// It returns "" when neither yields a specific type.
func detectMIMEType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Debug("Cannot sniff file type",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return ""
	}
	defer f.Close()

	// Read first 512 bytes for MIME type detection
	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return ""
	}
	if n == 0 {
		return ""
	}
	t := http.DetectContentType(header[:n])
	if strings.HasPrefix(t, unknownMIMEType) {
		return ""
	}
	return t
}
