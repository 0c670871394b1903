package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGETRequest(t *testing.T) {
	raw := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/index.html", req.Path)
	assert.Equal(t, "", req.Query)
	assert.Equal(t, "HTTP/1.1", req.Version)

	host, ok := req.Headers.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Empty(t, req.Body)
}

func TestPOSTWithBody(t *testing.T) {
	raw := "POST /api/data HTTP/1.1\r\n" +
		"Host: api.example.com\r\n" +
		"Content-Length: 13\r\n" +
		"\r\n" +
		"Hello, World!"

	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/data", req.Path)
	assert.Equal(t, "Hello, World!", req.Body)

	n, ok := req.ContentLength()
	assert.True(t, ok)
	assert.Equal(t, 13, n)
}

func TestQuerySplitsOnFirstMark(t *testing.T) {
	raw := "GET /a?x=1?y=2 HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "/a", req.Path)
	assert.Equal(t, "x=1?y=2", req.Query)
}

func TestQueryKeptRaw(t *testing.T) {
	// The query string is carried whole; nothing decodes k=v pairs.
	raw := "GET /search?q=rust&page=2 HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "/search", req.Path)
	assert.Equal(t, "q=rust&page=2", req.Query)

	// Test: percent escapes are not decoded either
	raw = "GET /search?q=a%20b HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err = Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "q=a%20b", req.Query)
}

func TestHeaderCaseAndDuplicates(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Host: one\r\n" +
		"host: two\r\n" +
		"Host: three\r\n" +
		"\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	val, _ := req.Headers.Get("Host")
	assert.Equal(t, "three", val)
	val, _ = req.Headers.Get("host")
	assert.Equal(t, "two", val)
	assert.Len(t, req.Headers, 2)
}

func TestMalformedHeaderLinesSkipped(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Good: yes\r\n" +
		"NoSeparatorHere\r\n" +
		"AlsoBad:nospace\r\n" +
		"\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	val, ok := req.Headers.Get("Good")
	assert.True(t, ok)
	assert.Equal(t, "yes", val)
	_, ok = req.Headers.Get("NoSeparatorHere")
	assert.False(t, ok)
	_, ok = req.Headers.Get("AlsoBad")
	assert.False(t, ok)
	assert.Len(t, req.Headers, 1)
}

func TestHeaderValueNotTrimmed(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Pad:  padded  \r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	val, _ := req.Headers.Get("X-Pad")
	assert.Equal(t, " padded  ", val)
}

func TestBodyKeptVerbatim(t *testing.T) {
	// Blank lines inside the body never re-split it.
	raw := "POST /up HTTP/1.1\r\nHost: h\r\n\r\nline1\r\n\r\nline2"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "line1\r\n\r\nline2", req.Body)
}

func TestMissingTerminator(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: example.com\r\n"
	_, err := Parse(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestEmptyInput(t *testing.T) {
	_, err := Parse("")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestShortRequestLine(t *testing.T) {
	raw := "GET /path\r\nHost: h\r\n\r\n"
	_, err := Parse(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestEmptyRequestLine(t *testing.T) {
	raw := "\r\nHost: h\r\n\r\n"
	_, err := Parse(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestExtraRequestLineTokensIgnored(t *testing.T) {
	raw := "GET / HTTP/1.1 junk trailing\r\nHost: h\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/", req.Path)
	assert.Equal(t, "HTTP/1.1", req.Version)
}

func TestPathGainsLeadingSlash(t *testing.T) {
	raw := "GET home HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "/home", req.Path)
}

func TestUnknownMethodAccepted(t *testing.T) {
	// Methods are not validated against any list.
	raw := "BREW /pot HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "BREW", req.Method)
}

func TestContentLengthIsDeclarationOnly(t *testing.T) {
	// A declared length never gets checked against the actual body.
	raw := "POST / HTTP/1.1\r\nContent-Length: 100\r\n\r\nshort"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "short", req.Body)
	n, ok := req.ContentLength()
	assert.True(t, ok)
	assert.Equal(t, 100, n)
}

func TestContentLengthCaseSensitive(t *testing.T) {
	raw := "POST / HTTP/1.1\r\ncontent-length: 5\r\n\r\nhello"
	req, err := Parse(raw)

	require.NoError(t, err)
	_, ok := req.ContentLength()
	assert.False(t, ok)
}

func TestContentLengthGarbage(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: banana\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	_, ok := req.ContentLength()
	assert.False(t, ok)

	raw = "POST / HTTP/1.1\r\nContent-Length: -3\r\n\r\n"
	req, err = Parse(raw)

	require.NoError(t, err)
	_, ok = req.ContentLength()
	assert.False(t, ok)
}

func TestHeaderAccessor(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Token: abc\r\n\r\n"
	req, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "abc", req.Header("X-Token"))
	assert.Equal(t, "", req.Header("X-Missing"))
}
