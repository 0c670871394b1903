package server

import (
	"bytes"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
	"github.com/cileamzh/cileamzh-web/router"
)

// dispatchTable is the registration state Run publishes to connection
// goroutines. Nothing mutates it after publication, so reads need no
// locks.
type dispatchTable struct {
	routes     *router.Table
	middleware *router.Chain
	statics    *router.StaticTable
}

// readChunkSize is how much each read from the connection asks for.
const readChunkSize = 512

var readBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, readChunkSize)
		return &buf
	},
}

// serveConn runs the whole cycle for one connection: read the request
// text, parse it, run middleware, then static mounts, then the route
// table, and write whatever accumulated. The connection always closes
// at the end; nothing is ever reused for a second request.
func (s *Server) serveConn(conn net.Conn, table *dispatchTable) {
	defer conn.Close()

	s.Metrics.ConnectionsTotal.Add(1)
	s.Metrics.ActiveConnections.Add(1)
	defer s.Metrics.ActiveConnections.Add(-1)

	start := time.Now()

	if s.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}

	raw, err := ReadRequestText(conn)
	if err != nil {
		s.Logger.Error("read failed",
			Field{"error", err},
			Field{"remote", conn.RemoteAddr().String()},
		)
		return
	}

	req, err := request.Parse(raw)
	if err != nil {
		// Malformed requests get no response, just a closed connection.
		s.Metrics.MalformedRequests.Add(1)
		s.Logger.Error("parse failed",
			Field{"error", err},
			Field{"remote", conn.RemoteAddr().String()},
		)
		return
	}

	res := response.New()
	if !s.dispatch(table, req, res) {
		return
	}

	n, err := conn.Write(res.Serialize())
	if err != nil {
		s.Logger.Error("write failed",
			Field{"error", err},
			Field{"remote", conn.RemoteAddr().String()},
		)
	}
	s.Metrics.BytesWritten.Add(int64(n))
	s.Metrics.RecordRequest(time.Since(start))

	s.Logger.Debug("request served",
		Field{"method", req.Method},
		Field{"path", req.Path},
		Field{"status", res.Status()},
	)
}

// dispatch fills res for req: all middleware, then the first matching
// static mount, then the route table, then the not-found fallback.
// A false return means a handler panicked and the connection should
// drop with nothing written.
func (s *Server) dispatch(table *dispatchTable, req *request.Request, res *response.Response) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("handler panic",
				Field{"panic", r},
				Field{"method", req.Method},
				Field{"path", req.Path},
			)
			ok = false
		}
	}()

	table.middleware.Run(req, res)

	// A prefix match settles the request, found or not; the route
	// table is never consulted after one.
	if route, matched := table.statics.Match(req.Path); matched {
		if file, found := route.Open(req.Path); found {
			s.Metrics.StaticHits.Add(1)
			res.SetHeader("Content-Type", file.ContentType)
			res.SetBody(file.Content)
		} else {
			s.Metrics.NotFound.Add(1)
			res.SetStatus(response.NotFoundStatusLine)
			res.SetHeader("Content-Type", "text/plain")
			res.SetBody("file not found")
		}
		return true
	}

	if handler, found := table.routes.Lookup(req.Method, req.Path); found {
		s.Metrics.RouteHits.Add(1)
		handler(req, res)
		return true
	}

	// No route: the body says not found while the status line keeps
	// its default.
	s.Metrics.NotFound.Add(1)
	res.SetHeader("Content-Type", "text/plain")
	res.SetBody("404 Not Found")
	return true
}

// ReadRequestText accumulates one request's text from r, reading in
// fixed 512 byte chunks. Reading stops once the blank line ending the
// header section has arrived, unless those headers declare a
// Content-Length, in which case it goes on until that many body bytes
// are in. EOF stops it anywhere, returning whatever arrived. The
// declared length is only a stop hint here; the parser never checks it
// against the body.
func ReadRequestText(r io.Reader) (string, error) {
	bufp := readBufPool.Get().(*[]byte)
	defer readBufPool.Put(bufp)
	buf := *bufp

	var data []byte
	headerEnd := -1
	bodyWant := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			if headerEnd < 0 {
				if idx := bytes.Index(data, []byte("\r\n\r\n")); idx >= 0 {
					headerEnd = idx + 4
					bodyWant = declaredBodyLength(data[:headerEnd])
				}
			}
			if headerEnd >= 0 && len(data)-headerEnd >= bodyWant {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	return string(data), nil
}

// declaredBodyLength reads the Content-Length a finished header
// section declares. Zero means it declares none worth waiting for.
func declaredBodyLength(head []byte) int {
	req, err := request.Parse(string(head))
	if err != nil {
		return 0
	}
	n, ok := req.ContentLength()
	if !ok {
		return 0
	}
	return n
}
