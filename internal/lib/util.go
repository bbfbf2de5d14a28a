package lib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const tempPattern = "upload_*.tmp"

// TempCopy is a local, re-readable copy of a media item's bytes.
type TempCopy struct {
	Path string
	Size int64
}

// Remove deletes the copy. It is safe to call more than once.
func (c *TempCopy) Remove() {
	if c == nil || c.Path == "" {
		return
	}
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove temporary copy",
			slog.String("path", c.Path),
			slog.String("error", err.Error()))
	}
	c.Path = ""
}

// MaterializeTemp copies item's bytes into a new temporary file under dir.
// On success the caller must call Remove on the result; on error nothing is left behind.
func MaterializeTemp(ctx context.Context, item MediaItem, dir string) (*TempCopy, error) {
	if item.Open == nil {
		return nil, fmt.Errorf("no byte source for %s", item.DisplayName)
	}
	src, err := item.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", item.DisplayName, err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create dir %s: %w", dir, err)
	}
	dst, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmp := &TempCopy{Path: dst.Name()}
	defer func() {
		if dst != nil {
			dst.Close()
			tmp.Remove()
		}
	}()

	bar := NewProgressBar(-1, "Copying "+item.DisplayName)
	n, err := copyWithContext(ctx, io.MultiWriter(dst, bar), src)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", item.DisplayName, err)
	}
	_ = bar.Finish()

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file %s: %w", tmp.Path, err)
	}
	dst = nil
	tmp.Size = n
	return tmp, nil
}

// copyWithContext copies src to dst, checking ctx between buffers.
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 1024*1024)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// SweepTempFiles removes temporary copies left behind by an interrupted process.
func SweepTempFiles(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, tempPattern))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale temporary file %s: %w", path, err)
		}
		logger.Debug("Removed stale temporary copy", slog.String("path", path))
	}
	return nil
}
