package headers

import "strings"

// Headers holds header fields the way they appear on the wire. Keys are
// case sensitive and a repeated key keeps only its last value.
type Headers map[string]string

// New returns an empty header map.
func New() Headers {
	return make(Headers)
}

// Get returns the value stored under key and whether it is present.
func (h Headers) Get(key string) (string, bool) {
	value, ok := h[key]
	return value, ok
}

// Set stores value under key, replacing any previous value.
func (h Headers) Set(key, value string) {
	h[key] = value
}

// Del removes key.
func (h Headers) Del(key string) {
	delete(h, key)
}

// ParseLine splits one header line on the first ": ". Key and value are
// returned verbatim, with no trimming and no case folding. ok is false
// when the line has no separator.
func ParseLine(line string) (key, value string, ok bool) {
	return strings.Cut(line, ": ")
}
