package smtpwire

import (
	"bytes"
	"net"
	"strconv"
	"strings"

	"blitiri.com.ar/go/smtpwire/internal/syntax"
	"blitiri.com.ar/go/smtpwire/internal/tokens"
)

// ParseCommand parses one complete command line, with the trailing CRLF
// already stripped. Callers that do not frame lines themselves should use
// Parser instead.
//
// The returned Data and Bdat commands carry empty payloads: body bytes
// are framed by the stream, not the command line, and only the streaming
// parser can fill them in.
func ParseCommand(line []byte) (Command, error) {
	toks := tokens.New(line, ' ')

	verb, ok := toks.Next()
	if !ok {
		return nil, ErrEmptyCommand
	}

	switch strings.ToUpper(string(verb)) {
	case "HELO":
		return parseHelo(toks)
	case "EHLO":
		return parseEhlo(toks)
	case "MAIL":
		return parseMail(toks)
	case "RCPT":
		return parseRcpt(toks)
	case "DATA":
		return noArgs(toks, Data{})
	case "BDAT":
		return parseBdat(toks)
	case "RSET":
		return noArgs(toks, Rset{})
	case "VRFY":
		return noArgs(toks, Vrfy{})
	case "EXPN":
		return noArgs(toks, Expn{})
	case "HELP":
		return noArgs(toks, Help{})
	case "NOOP":
		return noArgs(toks, Noop{})
	case "QUIT":
		return noArgs(toks, Quit{})
	case "STARTTLS":
		return noArgs(toks, StartTLS{})
	case "AUTH":
		return parseAuth(toks)
	default:
		return nil, ErrCommandNotImplemented
	}
}

// noArgs returns c if the token iterator is exhausted.
func noArgs(toks *tokens.Tokens, c Command) (Command, error) {
	if _, ok := toks.Next(); ok {
		return nil, ErrUnexpectedParameter
	}
	return c, nil
}

func parseHelo(toks *tokens.Tokens) (Command, error) {
	arg, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	if _, ok := toks.Next(); ok {
		return nil, ErrUnexpectedParameter
	}

	d, err := parseDomain(arg)
	if err != nil {
		return nil, err
	}
	return Helo{Host: d}, nil
}

func parseEhlo(toks *tokens.Tokens) (Command, error) {
	arg, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	if _, ok := toks.Next(); ok {
		return nil, ErrUnexpectedParameter
	}

	h, err := parseHost(arg)
	if err != nil {
		return nil, err
	}
	return Ehlo{Host: h}, nil
}

func parseDomain(input []byte) (Domain, error) {
	if !syntax.IsDomain(input) {
		return "", ErrInvalidSyntax
	}
	return Domain(input), nil
}

// parseHost parses the EHLO argument: a bracketed IPv4 literal, an
// "[IPv6:...]" literal, a generic "[tag:content]" address literal, or a
// plain domain.
func parseHost(input []byte) (Host, error) {
	inner, ok := syntax.StripBrackets(input)
	if !ok {
		d, err := parseDomain(input)
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	tag, content, hasColon := syntax.SplitOnce(inner, ':')
	if !hasColon {
		// Only a dotted-quad IPv4 literal can be colon-free.
		if ip := net.ParseIP(string(inner)); ip != nil && ip.To4() != nil {
			return IP{Addr: ip}, nil
		}
		return nil, ErrInvalidSyntax
	}

	if len(tag) == 0 {
		return nil, ErrInvalidSyntax
	}

	// The IPv6 tag is matched exact-case; a tag that differs only in case
	// is a generic literal like any other.
	if string(tag) == "IPv6" {
		ip := net.ParseIP(string(content))
		if ip == nil || bytes.IndexByte(content, ':') < 0 {
			return nil, ErrInvalidSyntax
		}
		return IP{Addr: ip}, nil
	}

	return Address(input), nil
}

func parseEmail(input []byte) (Email, error) {
	// Split at the last '@': a quoted local part may contain one itself.
	i := bytes.LastIndexByte(input, '@')
	if i < 0 {
		return "", ErrInvalidSyntax
	}
	local, domain := input[:i], input[i+1:]

	if !syntax.IsLocalPart(local) || !syntax.IsDomain(domain) {
		return "", ErrInvalidSyntax
	}
	if len(local) > MaxLocalPart || len(domain) > MaxDomain ||
		len(input) > MaxEmail {
		return "", ErrInvalidSyntax
	}
	return Email(input), nil
}

func parseBdat(toks *tokens.Tokens) (Command, error) {
	sizeTok, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	size, err := parseSize(sizeTok)
	if err != nil {
		return nil, err
	}

	last := false
	if tok, ok := toks.Next(); ok {
		if !strings.EqualFold(string(tok), "LAST") {
			return nil, ErrUnexpectedParameter
		}
		last = true
		if _, ok := toks.Next(); ok {
			return nil, ErrUnexpectedParameter
		}
	}

	return Bdat{Size: size, Last: last}, nil
}

const maxInt = int(^uint(0) >> 1)

// parseSize parses the BDAT octet count. Overflow is reported as
// ErrTooLong: the announced chunk cannot fit in any buffer we would
// accept.
func parseSize(tok []byte) (int, error) {
	v, err := strconv.ParseUint(string(tok), 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, ErrTooLong
		}
		return 0, ErrInvalidSyntax
	}
	if v > uint64(maxInt) {
		return 0, ErrTooLong
	}
	return int(v), nil
}

func parseAuth(toks *tokens.Tokens) (Command, error) {
	mechTok, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	mech, err := parseMechanism(mechTok)
	if err != nil {
		return nil, err
	}

	a := Auth{Mechanism: mech}
	if tok, ok := toks.Next(); ok {
		if !isBase64(tok) {
			return nil, ErrInvalidSyntax
		}
		a.InitialResponse = Base64(tok)
		if _, ok := toks.Next(); ok {
			return nil, ErrUnexpectedParameter
		}
	}
	return a, nil
}

func parseMechanism(tok []byte) (Mechanism, error) {
	name := strings.ToUpper(string(tok))
	for m, n := range mechanismNames {
		if n == name {
			return m, nil
		}
	}
	return 0, ErrInvalidParameter
}

// isBase64 checks the token against the base64 alphabet (including
// padding). Non-empty only; bit-exactness is not our business.
func isBase64(tok []byte) bool {
	if len(tok) == 0 {
		return false
	}
	for _, c := range tok {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z',
			c >= '0' && c <= '9', c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	return true
}
