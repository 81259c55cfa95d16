package smtpwire

import (
	"bytes"
	"strconv"
)

// Encode returns the canonical wire form of a command, including its
// framing: a trailing CRLF for line commands, "DATA\r\n<body>\r\n.\r\n"
// for DATA, and "BDAT <n>[ LAST]\r\n<payload>" (no trailing CRLF) for
// BDAT.
//
// For any command built by the parser, re-parsing the encoded form
// yields an equal command. The bytes are canonical, not necessarily the
// ones originally parsed: verbs and parameter names are upper-cased and
// parameters come out in a fixed order.
func Encode(c Command) []byte {
	buf := &bytes.Buffer{}
	EncodeTo(buf, c)
	return buf.Bytes()
}

// EncodeTo appends the canonical wire form of a command to buf.
func EncodeTo(buf *bytes.Buffer, c Command) {
	c.encodeTo(buf)
}

func (c Helo) encodeTo(b *bytes.Buffer) {
	b.WriteString("HELO ")
	b.WriteString(c.Host.String())
	b.WriteString("\r\n")
}

func (c Ehlo) encodeTo(b *bytes.Buffer) {
	b.WriteString("EHLO ")
	b.WriteString(c.Host.String())
	b.WriteString("\r\n")
}

// MAIL parameters are emitted in a fixed order (SIZE, RET, ENVID, AUTH,
// BODY) so that encodings are stable.
func (m Mail) encodeTo(b *bytes.Buffer) {
	b.WriteString("MAIL FROM:<")
	b.WriteString(string(m.From.Email))
	b.WriteByte('>')

	if m.Size != nil {
		b.WriteString(" SIZE=")
		b.WriteString(strconv.FormatUint(*m.Size, 10))
	}
	if m.Ret != RetUnspecified {
		b.WriteString(" RET=")
		b.WriteString(m.Ret.String())
	}
	if m.EnvID != nil {
		b.WriteString(" ENVID=")
		b.WriteString(string(*m.EnvID))
	}
	if m.Auth != nil {
		b.WriteString(" AUTH=")
		if m.Auth.Anonymous {
			b.WriteString("<>")
		} else {
			b.WriteString(string(m.Auth.Identity))
		}
	}
	if m.Body != BodyUnspecified {
		b.WriteString(" BODY=")
		b.WriteString(m.Body.String())
	}
	b.WriteString("\r\n")
}

// RCPT parameters are emitted NOTIFY first, then ORCPT.
func (r Rcpt) encodeTo(b *bytes.Buffer) {
	b.WriteString("RCPT TO:<")
	b.WriteString(string(r.To))
	b.WriteByte('>')

	if r.Notify != nil {
		b.WriteString(" NOTIFY=")
		b.WriteString(r.Notify.String())
	}
	if r.ORcpt != "" {
		b.WriteString(" ORCPT=<")
		b.WriteString(string(r.ORcpt))
		b.WriteByte('>')
	}
	b.WriteString("\r\n")
}

func (d Data) encodeTo(b *bytes.Buffer) {
	b.WriteString("DATA\r\n")
	b.Write(d.Payload)
	b.WriteString("\r\n.\r\n")
}

func (d Bdat) encodeTo(b *bytes.Buffer) {
	b.WriteString("BDAT ")
	b.WriteString(strconv.Itoa(len(d.Payload)))
	if d.Last {
		b.WriteString(" LAST")
	}
	b.WriteString("\r\n")
	b.Write(d.Payload)
}

func (Rset) encodeTo(b *bytes.Buffer) { b.WriteString("RSET\r\n") }

func (Vrfy) encodeTo(b *bytes.Buffer) { b.WriteString("VRFY\r\n") }

func (Expn) encodeTo(b *bytes.Buffer) { b.WriteString("EXPN\r\n") }

func (Help) encodeTo(b *bytes.Buffer) { b.WriteString("HELP\r\n") }

func (Noop) encodeTo(b *bytes.Buffer) { b.WriteString("NOOP\r\n") }

func (Quit) encodeTo(b *bytes.Buffer) { b.WriteString("QUIT\r\n") }

func (StartTLS) encodeTo(b *bytes.Buffer) { b.WriteString("STARTTLS\r\n") }

func (a Auth) encodeTo(b *bytes.Buffer) {
	b.WriteString("AUTH ")
	b.WriteString(a.Mechanism.String())
	if a.InitialResponse != "" {
		b.WriteByte(' ')
		b.WriteString(string(a.InitialResponse))
	}
	b.WriteString("\r\n")
}
