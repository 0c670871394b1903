package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cileamzh/cileamzh-web/headers"
)

// ErrMalformedRequest reports request text that cannot be parsed. The
// specific failure wraps it, so errors.Is works against the variable.
var ErrMalformedRequest = errors.New("malformed request")

// Request is one parsed HTTP request. Parse fills every field once;
// handlers treat the value as read only.
type Request struct {
	Method  string
	Path    string
	Query   string
	Version string
	Headers headers.Headers
	Body    string
}

const headerTerminator = "\r\n\r\n"

// Parse builds a Request from raw request text.
//
// The text splits on the first blank line into a header section and a
// body. The first line is the request line: method, target, protocol
// version, with any extra tokens ignored. The target splits on its
// first "?" into path and query, and the path gains a leading "/" when
// it lacks one. Every remaining line is a header field; lines without
// the ": " separator are skipped, and a repeated key keeps its last
// value. The body is whatever follows the blank line, verbatim.
func Parse(raw string) (*Request, error) {
	head, body, found := strings.Cut(raw, headerTerminator)
	if !found {
		return nil, fmt.Errorf("%w: no header terminator", ErrMalformedRequest)
	}

	lines := splitLines(head)

	method, target, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	path, query, _ := strings.Cut(target, "?")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	h := headers.New()
	for _, line := range lines[1:] {
		key, value, ok := headers.ParseLine(line)
		if !ok {
			continue
		}
		h.Set(key, value)
	}

	return &Request{
		Method:  method,
		Path:    path,
		Query:   query,
		Version: version,
		Headers: h,
		Body:    body,
	}, nil
}

// Header returns the value of a header field, or "" when it is absent.
func (r *Request) Header(key string) string {
	value, _ := r.Headers.Get(key)
	return value
}

// ContentLength returns the length the Content-Length header declares.
// It is a declaration only; Parse never checks it against the body.
// ok is false when the header is absent, negative, or not a number.
func (r *Request) ContentLength() (int, bool) {
	value, ok := r.Headers.Get("Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// splitLines cuts s on "\n", dropping one trailing "\r" per line.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func parseRequestLine(line string) (method, target, version string, err error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", "", "", fmt.Errorf("%w: short request line", ErrMalformedRequest)
	}
	return fields[0], fields[1], fields[2], nil
}
