// Package syntax implements the RFC 5321 token grammar as pure predicates
// over byte slices, plus the small slice helpers the parser is built on.
//
// All predicates are total: any input (including nil and empty slices)
// returns a bool. Mapping failures onto the error taxonomy is the caller's
// job.
package syntax

import "bytes"

// IsAtext checks for a non-empty run of atext bytes: ASCII alphanumerics
// and ! # $ % & ' * + - / = ? ^ _ ` { | }. Unlike RFC 5322 atext, '~' is
// not accepted.
func IsAtext(input []byte) bool {
	if len(input) == 0 {
		return false
	}

	for _, c := range input {
		if isAlphanumeric(c) {
			continue
		}
		switch {
		case c == '!',
			c >= '#' && c <= '\'', // # $ % & '
			c == '*', c == '+',
			c == '-', c == '/', c == '=', c == '?',
			c == '^', c == '_', c == '`',
			c >= '{' && c <= '}': // { | }
			continue
		}
		return false
	}
	return true
}

// IsDotString checks for one or more atext atoms joined by single dots.
// No leading, trailing, or consecutive dots.
func IsDotString(input []byte) bool {
	a, b, found := SplitOnce(input, '.')
	if !IsAtext(a) {
		return false
	}
	if !found {
		return true
	}

	for _, atom := range bytes.Split(b, []byte(".")) {
		if !IsAtext(atom) {
			return false
		}
	}
	return true
}

// IsQtext checks a single byte: printable ASCII except '"' and '\'.
func IsQtext(c byte) bool {
	return (c >= 0x20 && c <= 0x21) || (c >= 0x23 && c <= 0x5b) ||
		(c >= 0x5d && c <= 0x7e)
}

// IsQuotedPair checks a single byte: any printable ASCII, including '"'
// and '\' themselves.
func IsQuotedPair(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

// IsQuotedString checks a double-quoted string whose interior is qtext,
// with backslash escapes consuming exactly one quoted-pair byte.
func IsQuotedString(input []byte) bool {
	stripped, ok := StripQuotes(input)
	if !ok {
		return false
	}

	for i := 0; i < len(stripped); {
		if stripped[i] == '\\' {
			if i+1 < len(stripped) && IsQuotedPair(stripped[i+1]) {
				i += 2
				continue
			}
			return false
		}
		if !IsQtext(stripped[i]) {
			return false
		}
		i++
	}
	return true
}

// IsLocalPart checks the local part of a mailbox: Dot-string or
// Quoted-string.
func IsLocalPart(input []byte) bool {
	return IsDotString(input) || IsQuotedString(input)
}

// IsSubdomain checks one domain label: non-empty, alphanumeric or '-',
// with no leading or trailing '-'.
func IsSubdomain(input []byte) bool {
	if len(input) == 0 {
		return false
	}
	if input[0] == '-' || input[len(input)-1] == '-' {
		return false
	}

	for _, c := range input {
		if !isAlphanumeric(c) && c != '-' {
			return false
		}
	}
	return true
}

// IsDomain checks one or more subdomains joined by dots.
//
// The first label is split off and checked on its own; when nothing
// follows the first dot, the domain is accepted. This means a single
// label with a trailing dot ("example.") is valid, while an empty label
// anywhere else ("a..b", "a.b.") is not.
func IsDomain(input []byte) bool {
	a, b, found := SplitOnce(input, '.')
	if !IsSubdomain(a) {
		return false
	}
	if !found || len(b) == 0 {
		return true
	}

	for _, label := range bytes.Split(b, []byte(".")) {
		if !IsSubdomain(label) {
			return false
		}
	}
	return true
}

// IsXchar checks a single byte against the xtext alphabet of RFC 3461:
// printable ASCII minus space, '+', '=' and DEL.
func IsXchar(c byte) bool {
	return (c >= '!' && c <= '*') || (c >= ',' && c <= '<') ||
		(c >= '>' && c <= '~')
}

func isAlphanumeric(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// SplitOnce splits input at the first occurrence of delim. The delimiter
// itself is consumed. When delim is absent, it returns (input, nil, false).
func SplitOnce(input []byte, delim byte) (before, after []byte, found bool) {
	i := bytes.IndexByte(input, delim)
	if i < 0 {
		return input, nil, false
	}
	return input[:i], input[i+1:], true
}

// CutPrefixFold strips prefix from input, comparing ASCII
// case-insensitively. Returns (nil, false) if the prefix does not match.
func CutPrefixFold(input, prefix []byte) ([]byte, bool) {
	if len(input) < len(prefix) {
		return nil, false
	}
	for i := range prefix {
		if lower(input[i]) != lower(prefix[i]) {
			return nil, false
		}
	}
	return input[len(prefix):], true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// StripAngled removes one leading '<' and one trailing '>'.
func StripAngled(input []byte) ([]byte, bool) {
	return stripDelims(input, '<', '>')
}

// StripBrackets removes one leading '[' and one trailing ']'.
func StripBrackets(input []byte) ([]byte, bool) {
	return stripDelims(input, '[', ']')
}

// StripQuotes removes one leading and one trailing '"'.
func StripQuotes(input []byte) ([]byte, bool) {
	return stripDelims(input, '"', '"')
}

func stripDelims(input []byte, first, last byte) ([]byte, bool) {
	if len(input) < 2 || input[0] != first || input[len(input)-1] != last {
		return nil, false
	}
	return input[1 : len(input)-1], true
}
