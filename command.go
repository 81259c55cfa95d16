// Package smtpwire decodes the wire syntax of SMTP commands (RFC 5321,
// plus the 8BITMIME, DSN, AUTH, STARTTLS and CHUNKING extensions) from
// caller-owned byte buffers into typed values, and encodes those values
// back into conforming wire bytes.
//
// The package performs no I/O of its own: bytes go in through a buffer the
// caller appends to, commands come out as values. See Parser for the
// streaming entry point, ParseCommand for single lines, and the codec
// package for an io.Reader/io.Writer adapter.
package smtpwire

import (
	"bytes"
	"net"
	"strings"
)

// Wire length ceilings, from RFC 5321 section 4.5.3 (command line and
// address elements) and RFC 5322 section 2.1.1 (text lines). The line
// ceilings exclude the trailing CRLF.
const (
	MaxCommandLine = 510
	MaxDataLine    = 998

	MaxLocalPart = 64
	MaxDomain    = 255
	MaxEmail     = 254
)

// Command is one parsed SMTP command.
//
// It is a sealed interface: the only implementations are the command
// types in this package (Helo, Ehlo, Mail, Rcpt, Data, Bdat, Rset, Vrfy,
// Expn, Help, Noop, Quit, StartTLS, Auth). Code switching over it should
// keep a default branch, as commands may be added over time.
type Command interface {
	// encodeTo appends the canonical wire form, with framing, to b.
	encodeTo(b *bytes.Buffer)
}

// Helo identifies the client to the server (RFC 5321 section 4.1.1.1).
// The parser only ever puts a Domain in Host.
type Helo struct {
	Host Host
}

// Ehlo identifies the client and requests extended SMTP
// (RFC 5321 section 4.1.1.1).
type Ehlo struct {
	Host Host
}

// Mail initiates a mail transaction (RFC 5321 section 4.1.1.2), carrying
// the reverse path and the ESMTP parameters we recognize. Optional
// parameters are nil (or the Unspecified enum value) when absent.
type Mail struct {
	From ReversePath

	Size  *uint64   // SIZE, RFC 1870
	Ret   Ret       // RET, RFC 3461
	EnvID *XText    // ENVID, RFC 3461
	Auth  *MailAuth // AUTH, RFC 4954 section 5
	Body  BodyType  // BODY, RFC 1652 / RFC 3030
}

// Rcpt identifies one recipient of the transaction
// (RFC 5321 section 4.1.1.3).
type Rcpt struct {
	To Email

	Notify *Notify // NOTIFY, RFC 3461; nil when absent
	ORcpt  Email   // ORCPT, RFC 3461; empty when absent
}

// Data carries a message body, as delivered between the DATA command and
// the "\r\n.\r\n" terminator. The payload is verbatim wire bytes:
// dot-stuffing transparency (RFC 5321 section 4.5.2) is the caller's to
// reverse (the codec package does it).
type Data struct {
	Payload []byte
}

// Bdat carries one binary data chunk (RFC 3030).
type Bdat struct {
	// Size is the announced octet count; Payload is exactly that long
	// once the streaming parser has filled it in.
	Size int

	// Last marks the final chunk of the transaction.
	Last bool

	Payload []byte
}

// Rset resets the current mail transaction.
type Rset struct{}

// Vrfy, Expn and Help are recognized but take no arguments here; servers
// wanting their string argument should treat them at a higher layer.
type Vrfy struct{}

// Expn expands a mailing list.
type Expn struct{}

// Help requests help from the server.
type Help struct{}

// Noop does nothing.
type Noop struct{}

// Quit terminates the session.
type Quit struct{}

// StartTLS initiates a TLS negotiation (RFC 3207). The negotiation
// itself is transport business, not ours.
type StartTLS struct{}

// Auth authenticates the client to the server (RFC 4954).
type Auth struct {
	Mechanism Mechanism

	// InitialResponse is the optional base64 initial response, opaque to
	// us; empty when absent.
	InitialResponse Base64
}

// ReversePath is the MAIL FROM origin: an email address, or the null
// path "<>" used by notification messages.
type ReversePath struct {
	// Email is the origin address; empty for the null reverse path.
	Email Email
}

// IsNull reports whether this is the null reverse path ("<>").
func (r ReversePath) IsNull() bool {
	return r.Email == ""
}

// Host is the argument of HELO/EHLO: a Domain, an IP literal, or a
// generic address literal. Sealed, like Command.
type Host interface {
	// String returns the wire form of the host.
	String() string

	isHost()
}

// Domain is a validated domain name: subdomains joined by dots, kept
// verbatim from the wire. Values normally come from the parser;
// converting an arbitrary string bypasses validation and makes the
// grammar the caller's responsibility.
type Domain string

func (d Domain) String() string { return string(d) }

func (Domain) isHost() {}

// IP is an IP address literal host ("[1.2.3.4]" or "[IPv6:...]").
type IP struct {
	Addr net.IP
}

func (ip IP) String() string {
	if v4 := ip.Addr.To4(); v4 != nil {
		return "[" + v4.String() + "]"
	}
	return "[IPv6:" + ip.Addr.String() + "]"
}

func (IP) isHost() {}

// Address is a generic address literal, retained verbatim in its
// bracketed form "[tag:content]". The tag is never "IPv6" (that parses
// as an IP) and never empty.
type Address string

func (a Address) String() string { return string(a) }

func (Address) isHost() {}

// Parts splits the literal into its tag and content. The parser
// guarantees the brackets and the colon are present.
func (a Address) Parts() (tag, content string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(string(a), "["), "]")
	i := strings.IndexByte(inner, ':')
	return inner[:i], inner[i+1:]
}

// Email is a validated mailbox, "local@domain", kept verbatim (without
// angle brackets). Constructed by the parser; see Domain about
// converting arbitrary strings.
type Email string

func (e Email) String() string { return string(e) }

// LocalPart returns the part before the last "@".
func (e Email) LocalPart() string {
	i := strings.LastIndexByte(string(e), '@')
	if i < 0 {
		return string(e)
	}
	return string(e)[:i]
}

// DomainPart returns the part after the last "@".
func (e Email) DomainPart() string {
	i := strings.LastIndexByte(string(e), '@')
	if i < 0 {
		return ""
	}
	return string(e)[i+1:]
}

// Base64 is an opaque base64-encoded string. The alphabet is checked at
// parse time; the padding and bit count are not.
type Base64 string

// MailAuth is the AUTH parameter of MAIL: the anonymous "<>" or an
// authenticated identity.
type MailAuth struct {
	Anonymous bool
	Identity  XText // valid only when !Anonymous
}

// Ret says how much of the message to return in a failure DSN
// (RFC 3461). The zero value means the parameter was not given.
type Ret int

// Ret values.
const (
	RetUnspecified Ret = iota
	RetHeaders
	RetFull
)

func (r Ret) String() string {
	switch r {
	case RetHeaders:
		return "HDRS"
	case RetFull:
		return "FULL"
	}
	return ""
}

// BodyType is the BODY parameter of MAIL (RFC 1652 / RFC 3030). The zero
// value means the parameter was not given.
type BodyType int

// BodyType values.
const (
	BodyUnspecified BodyType = iota
	Body7Bit
	Body8BitMime
	BodyBinaryMime
)

func (b BodyType) String() string {
	switch b {
	case Body7Bit:
		return "7BIT"
	case Body8BitMime:
		return "8BITMIME"
	case BodyBinaryMime:
		return "BINARYMIME"
	}
	return ""
}

// Notify is the NOTIFY parameter of RCPT (RFC 3461): a bitset over the
// DSN trigger conditions. The empty set is the explicit "NEVER".
type Notify uint8

// Notify flags.
const (
	NotifyNever   Notify = 0
	NotifyDelay   Notify = 1 << 0
	NotifyFailure Notify = 1 << 1
	NotifySuccess Notify = 1 << 2
)

// Never reports whether the set is empty (the explicit NEVER).
func (n Notify) Never() bool { return n == NotifyNever }

// Delay reports whether DELAY is set.
func (n Notify) Delay() bool { return n&NotifyDelay != 0 }

// Failure reports whether FAILURE is set.
func (n Notify) Failure() bool { return n&NotifyFailure != 0 }

// Success reports whether SUCCESS is set.
func (n Notify) Success() bool { return n&NotifySuccess != 0 }

// String returns the canonical value list ("NEVER", or names joined by
// commas in DELAY, FAILURE, SUCCESS order).
func (n Notify) String() string {
	if n.Never() {
		return "NEVER"
	}

	names := make([]string, 0, 3)
	if n.Delay() {
		names = append(names, "DELAY")
	}
	if n.Failure() {
		names = append(names, "FAILURE")
	}
	if n.Success() {
		names = append(names, "SUCCESS")
	}
	return strings.Join(names, ",")
}

// Mechanism is a SASL mechanism name from the closed set we recognize in
// AUTH commands.
type Mechanism int

// Mechanisms.
const (
	MechanismAnonymous Mechanism = iota
	MechanismCramMD5
	MechanismDigestMD5
	MechanismGssapi
	MechanismLogin
	MechanismNtlm
	MechanismOAuthBearer
	MechanismPlain
	MechanismScramSHA1
	MechanismScramSHA256
	MechanismXOAuth2
)

var mechanismNames = map[Mechanism]string{
	MechanismAnonymous:   "ANONYMOUS",
	MechanismCramMD5:     "CRAM-MD5",
	MechanismDigestMD5:   "DIGEST-MD5",
	MechanismGssapi:      "GSSAPI",
	MechanismLogin:       "LOGIN",
	MechanismNtlm:        "NTLM",
	MechanismOAuthBearer: "OAUTHBEARER",
	MechanismPlain:       "PLAIN",
	MechanismScramSHA1:   "SCRAM-SHA-1",
	MechanismScramSHA256: "SCRAM-SHA-256",
	MechanismXOAuth2:     "XOAUTH2",
}

func (m Mechanism) String() string {
	return mechanismNames[m]
}
