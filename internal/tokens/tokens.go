// Package tokens implements the two lazy iterators the command parser
// works with: a single-byte-delimiter splitter and a CRLF line splitter.
//
// Both iterate over a borrowed slice; every token they hand out is a
// sub-slice of the input, no copies are made.
package tokens

import "bytes"

// Tokens yields successive sub-slices of a buffer separated by a single
// delimiter byte. One delimiter is consumed between each pair of tokens,
// so a trailing delimiter yields a final empty token. An empty buffer
// yields nothing. The iterator is finite and fused.
type Tokens struct {
	rest  []byte
	delim byte

	// A delimiter was just consumed, so there is one more token to give
	// out even if rest is empty.
	pending bool
}

// New returns a Tokens iterator over buf, splitting on delim.
func New(buf []byte, delim byte) *Tokens {
	return &Tokens{rest: buf, delim: delim}
}

// Next returns the next token. The second return value is false once the
// iterator is exhausted, and stays false.
func (t *Tokens) Next() ([]byte, bool) {
	if len(t.rest) == 0 && !t.pending {
		return nil, false
	}
	t.pending = false

	i := bytes.IndexByte(t.rest, t.delim)
	if i < 0 {
		tok := t.rest
		t.rest = nil
		return tok, true
	}

	tok := t.rest[:i]
	t.rest = t.rest[i+1:]
	t.pending = true
	return tok, true
}

// Lines yields sub-slices of a buffer separated by "\r\n". It does not
// emit a final line that is missing its terminator; that tail stays
// available through Rest. The iterator is finite and fused.
type Lines struct {
	rest []byte
	done bool
}

var crlf = []byte("\r\n")

// NewLines returns a Lines iterator over buf.
func NewLines(buf []byte) *Lines {
	return &Lines{rest: buf}
}

// Next returns the next CRLF-terminated line, without the terminator.
func (l *Lines) Next() ([]byte, bool) {
	if l.done {
		return nil, false
	}

	i := bytes.Index(l.rest, crlf)
	if i < 0 {
		l.done = true
		return nil, false
	}

	line := l.rest[:i]
	l.rest = l.rest[i+2:]
	return line, true
}

// Rest returns the bytes not yet yielded: after exhaustion, the trailing
// partial line (possibly empty).
func (l *Lines) Rest() []byte {
	return l.rest
}
