package mimetype

import (
	"path/filepath"
	"strings"
)

// Fallback is the Content-Type for extensions the table does not know.
const Fallback = "application/octet-stream"

// table is fixed and matched case sensitively. Keys carry no dot.
var table = map[string]string{
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"mp4":  "video/mp4",
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"wav":  "audio/wav",
	"pdf":  "application/pdf",
}

// Lookup returns the Content-Type for a bare extension ("html", not
// ".html").
func Lookup(ext string) string {
	if ct, ok := table[ext]; ok {
		return ct
	}
	return Fallback
}

// ForPath returns the Content-Type for the extension of path, taken
// after the last dot of its final element.
func ForPath(path string) string {
	return Lookup(strings.TrimPrefix(filepath.Ext(path), "."))
}
