package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cileamzh/cileamzh-web/internal/mimetype"
)

// StaticRoute mounts a filesystem directory under a path prefix.
type StaticRoute struct {
	Prefix string
	Dir    string
}

// StaticTable holds static mounts in registration order. The first
// mount whose prefix matches claims the request, whether or not the
// file under it exists; later mounts are never consulted.
type StaticTable struct {
	routes []StaticRoute
}

// NewStaticTable returns an empty static table.
func NewStaticTable() *StaticTable {
	return &StaticTable{}
}

// Add mounts dir under prefix.
func (t *StaticTable) Add(prefix, dir string) {
	t.routes = append(t.routes, StaticRoute{Prefix: prefix, Dir: dir})
}

// Match returns the first mount whose prefix matches path. A prefix
// matches when the path is strictly longer, starts with it, and the
// byte right after it is '/'. "/assets" matches "/assets/app.js" but
// not "/assets" itself and not "/assetsFoo/app.js".
func (t *StaticTable) Match(path string) (StaticRoute, bool) {
	for _, route := range t.routes {
		if len(path) > len(route.Prefix) &&
			strings.HasPrefix(path, route.Prefix) &&
			path[len(route.Prefix)] == '/' {
			return route, true
		}
	}
	return StaticRoute{}, false
}

// StaticFile is the content and Content-Type of a resolved file.
type StaticFile struct {
	Content     string
	ContentType string
}

// Open reads the file that path names under the matched mount: the
// remainder after the prefix and its slash, joined onto the mount's
// directory. A remainder that climbs out of the directory reads as
// missing, and so does any file that cannot be read.
func (r StaticRoute) Open(path string) (*StaticFile, bool) {
	remainder := path[len(r.Prefix)+1:]
	name := filepath.Join(r.Dir, filepath.FromSlash(remainder))
	if !contained(r.Dir, name) {
		return nil, false
	}
	content, err := os.ReadFile(name)
	if err != nil {
		return nil, false
	}
	return &StaticFile{
		Content:     string(content),
		ContentType: mimetype.ForPath(name),
	}, true
}

// contained reports whether name stays inside dir once cleaned.
func contained(dir, name string) bool {
	rel, err := filepath.Rel(dir, name)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
