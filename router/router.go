package router

import (
	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
)

// Handler processes one request, writing its outcome into res. Nothing
// is returned; whatever res holds afterwards goes on the wire.
type Handler func(req *request.Request, res *response.Response)

type routeKey struct {
	method string
	path   string
}

// Table maps exact (method, path) pairs to handlers. There is no
// prefix matching and no path parameters, and the query string plays
// no part in a lookup.
type Table struct {
	routes map[routeKey]Handler
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{routes: make(map[routeKey]Handler)}
}

// Add registers handler for method and path. Registering the same pair
// again replaces the earlier handler.
func (t *Table) Add(method, path string, handler Handler) {
	t.routes[routeKey{method, path}] = handler
}

// Lookup returns the handler registered for exactly method and path.
func (t *Table) Lookup(method, path string) (Handler, bool) {
	handler, ok := t.routes[routeKey{method, path}]
	return handler, ok
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}
