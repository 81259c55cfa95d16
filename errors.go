package smtpwire

import "errors"

// Parse errors. This is a closed set: every failure from ParseCommand and
// Parser.Parse is exactly one of these values, comparable with ==.
var (
	// ErrInvalidCommand is reserved; the current grammar reports unknown
	// verbs as ErrCommandNotImplemented instead.
	ErrInvalidCommand = errors.New("command not recognized")

	// ErrCommandNotImplemented: the verb was syntactically fine but is not
	// one we handle.
	ErrCommandNotImplemented = errors.New("command not implemented")

	// ErrParameterNotImplemented is reserved and currently never produced.
	ErrParameterNotImplemented = errors.New("parameter not implemented")

	// ErrInvalidParameter: a MAIL/RCPT parameter name (or AUTH mechanism)
	// outside the recognized set.
	ErrInvalidParameter = errors.New("parameter not recognized")

	// ErrMissingParameter: a mandatory argument was absent (HELO/EHLO
	// host, MAIL FROM:, RCPT TO:, BDAT size, AUTH mechanism).
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrUnexpectedParameter: trailing tokens for a verb that takes none,
	// or after a complete BDAT size/LAST pair.
	ErrUnexpectedParameter = errors.New("unexpected trailing parameter")

	// ErrInvalidSyntax: any grammar failure not covered by a more
	// specific error.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrEmptyCommand: the command line held no tokens at all.
	ErrEmptyCommand = errors.New("empty command")

	// ErrTooLong: a command line over 510 bytes, a DATA line over 998
	// bytes, a BDAT chunk or the whole buffer over the parser's Max.
	ErrTooLong = errors.New("line too long")

	// ErrIncompleteInput is reserved for adapters that frame their own
	// input and run out of bytes mid-token.
	ErrIncompleteInput = errors.New("input ended unexpectedly")
)
