package smtpwire

import (
	"bytes"
	"strconv"
	"strings"

	"blitiri.com.ar/go/smtpwire/internal/syntax"
	"blitiri.com.ar/go/smtpwire/internal/tokens"
)

var nullPath = []byte("<>")

func parseMail(toks *tokens.Tokens) (Command, error) {
	tok, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	rp, ok := syntax.CutPrefixFold(tok, []byte("FROM:"))
	if !ok {
		return nil, ErrInvalidSyntax
	}

	m := Mail{}
	if !bytes.Equal(rp, nullPath) {
		inner, ok := syntax.StripAngled(rp)
		if !ok {
			return nil, ErrInvalidSyntax
		}
		email, err := parseEmail(inner)
		if err != nil {
			return nil, err
		}
		m.From = ReversePath{Email: email}
	}

	for {
		tok, ok := toks.Next()
		if !ok {
			break
		}
		if err := m.setParameter(tok); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// setParameter folds one NAME=VALUE token into the command. A repeated
// name overwrites the previous occurrence.
func (m *Mail) setParameter(tok []byte) error {
	name, value, hasValue := syntax.SplitOnce(tok, '=')
	if !hasValue {
		// Every MAIL parameter we recognize carries a value.
		return ErrInvalidParameter
	}

	switch strings.ToUpper(string(name)) {
	case "SIZE":
		n, err := strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			return ErrInvalidSyntax
		}
		m.Size = &n

	case "RET":
		switch {
		case strings.EqualFold(string(value), "FULL"):
			m.Ret = RetFull
		case strings.EqualFold(string(value), "HDRS"):
			m.Ret = RetHeaders
		default:
			return ErrInvalidSyntax
		}

	case "ENVID":
		x, err := parseXText(value)
		if err != nil {
			return err
		}
		m.EnvID = &x

	case "AUTH":
		if bytes.Equal(value, nullPath) {
			m.Auth = &MailAuth{Anonymous: true}
			break
		}
		x, err := parseXText(value)
		if err != nil {
			return err
		}
		m.Auth = &MailAuth{Identity: x}

	case "BODY":
		switch {
		case strings.EqualFold(string(value), "7BIT"):
			m.Body = Body7Bit
		case strings.EqualFold(string(value), "8BITMIME"):
			m.Body = Body8BitMime
		case strings.EqualFold(string(value), "BINARYMIME"):
			m.Body = BodyBinaryMime
		default:
			return ErrInvalidSyntax
		}

	default:
		return ErrInvalidParameter
	}
	return nil
}
