package smtpwire

import (
	"strings"

	"blitiri.com.ar/go/smtpwire/internal/syntax"
	"blitiri.com.ar/go/smtpwire/internal/tokens"
)

func parseRcpt(toks *tokens.Tokens) (Command, error) {
	tok, ok := toks.Next()
	if !ok {
		return nil, ErrMissingParameter
	}
	fp, ok := syntax.CutPrefixFold(tok, []byte("TO:"))
	if !ok {
		return nil, ErrInvalidSyntax
	}
	inner, ok := syntax.StripAngled(fp)
	if !ok {
		return nil, ErrInvalidSyntax
	}
	to, err := parseEmail(inner)
	if err != nil {
		return nil, err
	}

	r := Rcpt{To: to}
	for {
		tok, ok := toks.Next()
		if !ok {
			break
		}
		if err := r.setParameter(tok); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// setParameter folds one NAME=VALUE token into the command. A repeated
// name overwrites the previous occurrence.
func (r *Rcpt) setParameter(tok []byte) error {
	name, value, hasValue := syntax.SplitOnce(tok, '=')
	if !hasValue {
		return ErrInvalidParameter
	}

	switch strings.ToUpper(string(name)) {
	case "NOTIFY":
		n, err := parseNotify(value)
		if err != nil {
			return err
		}
		r.Notify = &n

	case "ORCPT":
		// Accept the address bare or angle-bracketed; we always encode
		// the bracketed form.
		if inner, ok := syntax.StripAngled(value); ok {
			value = inner
		}
		e, err := parseEmail(value)
		if err != nil {
			return err
		}
		r.ORcpt = e

	default:
		return ErrInvalidParameter
	}
	return nil
}

// parseNotify parses the NOTIFY value: the literal NEVER (the empty
// set), or a comma-separated list over DELAY, FAILURE, SUCCESS.
func parseNotify(value []byte) (Notify, error) {
	if strings.EqualFold(string(value), "NEVER") {
		return NotifyNever, nil
	}

	var flags Notify
	toks := tokens.New(value, ',')
	for {
		tok, ok := toks.Next()
		if !ok {
			break
		}
		switch strings.ToUpper(string(tok)) {
		case "DELAY":
			flags |= NotifyDelay
		case "FAILURE":
			flags |= NotifyFailure
		case "SUCCESS":
			flags |= NotifySuccess
		default:
			return 0, ErrInvalidSyntax
		}
	}
	return flags, nil
}
