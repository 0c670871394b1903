package server

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/cileamzh/cileamzh-web/router"
)

// Server owns a TCP listener plus the routes, middleware, and static
// mounts wired into it. Registration happens between New and Run; Run
// publishes a snapshot of the tables, and calls to the Add methods
// after that are not seen by running connections.
type Server struct {
	listener net.Listener
	closed   atomic.Bool

	routes     *router.Table
	middleware *router.Chain
	statics    *router.StaticTable

	// Logger and Metrics may be swapped out between New and Run.
	Logger  Logger
	Metrics *Metrics

	// ReadTimeout bounds how long one request may take to arrive.
	// Zero, the default, waits forever.
	ReadTimeout time.Duration

	// MaxConns caps connections dispatched at once. Zero, the default,
	// dispatches every accepted connection immediately.
	MaxConns int
}

// New binds a TCP listener on addr. Binding is the only fatal error in
// the server's life; everything after it is logged and survived.
func New(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	return &Server{
		listener:   listener,
		routes:     router.NewTable(),
		middleware: router.NewChain(),
		statics:    router.NewStaticTable(),
		Logger:     NewDefaultLogger(),
		Metrics:    NewMetrics(),
	}, nil
}

// AddRoute registers handler for an exact method and path pair.
// Registering the same pair again replaces the earlier handler.
func (s *Server) AddRoute(method, path string, handler router.Handler) {
	s.routes.Add(method, path, handler)
}

// AddGet registers a GET route.
func (s *Server) AddGet(path string, handler router.Handler) {
	s.routes.Add("GET", path, handler)
}

// AddPost registers a POST route.
func (s *Server) AddPost(path string, handler router.Handler) {
	s.routes.Add("POST", path, handler)
}

// AddMiddleware appends handler to the middleware chain. Middleware
// runs for every parsed request, in registration order, before any
// routing.
func (s *Server) AddMiddleware(handler router.Handler) {
	s.middleware.Use(handler)
}

// AddStaticDir mounts dir under prefix. Mounts match in the order they
// were added, and the first matching prefix settles the request even
// when the file under it is missing.
func (s *Server) AddStaticDir(prefix, dir string) {
	s.statics.Add(prefix, dir)
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run accepts connections until Close, dispatching each one on its own
// goroutine. Accept errors are logged and the loop keeps going; after
// Close it returns nil.
func (s *Server) Run() error {
	table := &dispatchTable{
		routes:     s.routes,
		middleware: s.middleware,
		statics:    s.statics,
	}

	var sem chan struct{}
	if s.MaxConns > 0 {
		sem = make(chan struct{}, s.MaxConns)
	}

	s.Logger.Debug("server started",
		Field{"addr", s.listener.Addr().String()},
		Field{"routes", s.routes.Len()},
		Field{"middleware", s.middleware.Len()},
	)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			s.Logger.Error("accept failed", Field{"error", err})
			continue
		}

		if sem != nil {
			sem <- struct{}{}
		}
		go func() {
			defer func() {
				if sem != nil {
					<-sem
				}
			}()
			s.serveConn(conn, table)
		}()
	}
}

// Close stops the accept loop and releases the listener. Connections
// already dispatched run to completion.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}
