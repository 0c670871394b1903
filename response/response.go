package response

import (
	"strconv"
	"strings"

	"github.com/cileamzh/cileamzh-web/headers"
)

// Status lines the server itself emits.
const (
	DefaultStatusLine  = "HTTP/1.1 200 OK"
	NotFoundStatusLine = "HTTP/1.1 404 Not Found"
)

// Response accumulates a status line, header fields, and a body until
// Serialize turns them into wire bytes. The zero state of a New
// response serializes as an empty 200.
type Response struct {
	statusLine string
	Headers    headers.Headers
	body       string
}

// New returns a response with the default status line, no header
// fields, and an empty body.
func New() *Response {
	return &Response{
		statusLine: DefaultStatusLine,
		Headers:    headers.New(),
	}
}

// SetStatus replaces the whole status line. The value goes on the wire
// as given; nothing checks that it looks like HTTP.
func (r *Response) SetStatus(line string) {
	r.statusLine = line
}

// Status returns the current status line.
func (r *Response) Status() string {
	return r.statusLine
}

// SetHeader stores a header field, replacing any previous value for key.
func (r *Response) SetHeader(key, value string) {
	r.Headers.Set(key, value)
}

// SetBody replaces the body.
func (r *Response) SetBody(body string) {
	r.body = body
}

// Body returns the current body.
func (r *Response) Body() string {
	return r.body
}

// Text sets a plain text body.
func (r *Response) Text(body string) {
	r.Headers.Set("Content-Type", "text/plain")
	r.body = body
}

// HTML sets an HTML body.
func (r *Response) HTML(body string) {
	r.Headers.Set("Content-Type", "text/html")
	r.body = body
}

// JSON sets an already encoded JSON body.
func (r *Response) JSON(body string) {
	r.Headers.Set("Content-Type", "application/json")
	r.body = body
}

// Serialize renders the response: status line, a Content-Length
// computed from the body right now, the header fields in map order,
// a blank line, then the body verbatim. A caller-set Content-Length is
// dropped so the computed one is the only one on the wire.
func (r *Response) Serialize() []byte {
	var b strings.Builder
	b.WriteString(r.statusLine)
	b.WriteString("\r\n")
	b.WriteString("Content-Length: ")
	b.WriteString(strconv.Itoa(len(r.body)))
	b.WriteString("\r\n")
	for key, value := range r.Headers {
		if key == "Content-Length" {
			continue
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(r.body)
	return []byte(b.String())
}
