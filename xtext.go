package smtpwire

import (
	"bytes"

	"blitiri.com.ar/go/smtpwire/internal/syntax"
)

// XText is a validated xtext string (RFC 3461 section 4): xchar bytes,
// with "+HH" hex triplets escaping everything else. Empty is valid.
// Constructed by the parser or EncodeXText; see Domain about converting
// arbitrary strings.
type XText string

// EncodeXText escapes raw into xtext: xchar bytes pass through, anything
// else becomes a "+HH" triplet with uppercase hex.
func EncodeXText(raw []byte) XText {
	var b bytes.Buffer
	b.Grow(len(raw))

	for _, c := range raw {
		if syntax.IsXchar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('+')
		b.WriteByte(encodeHex(c >> 4))
		b.WriteByte(encodeHex(c & 0x0f))
	}
	return XText(b.String())
}

// parseXText validates input as xtext. A "+" must begin a full triplet
// with two hex digits, which may end exactly at the end of the input.
func parseXText(input []byte) (XText, error) {
	for i := 0; i < len(input); {
		if input[i] == '+' {
			if len(input) < i+3 ||
				!isHexDigit(input[i+1]) || !isHexDigit(input[i+2]) {
				return "", ErrInvalidSyntax
			}
			i += 3
			continue
		}
		if !syntax.IsXchar(input[i]) {
			return "", ErrInvalidSyntax
		}
		i++
	}
	return XText(input), nil
}

// Decode returns the raw bytes the xtext encodes, resolving "+HH"
// triplets.
func (x XText) Decode() []byte {
	var b bytes.Buffer
	x.DecodeTo(&b)
	return b.Bytes()
}

// DecodeTo appends the decoded bytes to buf.
func (x XText) DecodeTo(buf *bytes.Buffer) {
	s := string(x)
	for i := 0; i < len(s); {
		if s[i] == '+' && len(s) >= i+3 &&
			isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			buf.WriteByte(decodeHex(s[i+1])<<4 | decodeHex(s[i+2]))
			i += 3
			continue
		}
		buf.WriteByte(s[i])
		i++
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

func encodeHex(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'A' + (v - 10)
}

func decodeHex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
