package lib

import (
	"path/filepath"
	"strings"
)

const unknownMIMEType = "application/octet-stream"

var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// isVideo classifies an entry by MIME type, falling back to the file
// extension only when the MIME type is unknown.
func isVideo(entry DirEntry) bool {
	mimeType := strings.ToLower(strings.TrimSpace(entry.MIMEType))
	if strings.HasPrefix(mimeType, "video/") {
		return true
	}
	if mimeType != "" && mimeType != unknownMIMEType {
		return false
	}
	return videoExtensions[strings.ToLower(filepath.Ext(entry.DisplayName))]
}

// SelectVideos returns the regular video files in entries that are not in
// the ledger, in listing order.
func SelectVideos(entries []DirEntry, uploaded *Ledger) []DirEntry {
	var selected []DirEntry
	for _, entry := range entries {
		if !entry.IsFile || !isVideo(entry) {
			continue
		}
		if uploaded.Contains(entry.Identifier) {
			continue
		}
		selected = append(selected, entry)
	}
	return selected
}
