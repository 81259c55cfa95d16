// Package codec adapts the sans-I/O smtpwire parser to byte streams.
//
// Decoder reads from an io.Reader, feeds the streaming parser, and hands
// out commands; Encoder writes commands to an io.Writer. This is the
// layer that applies the dot-stuffing transparency of RFC 5321 section
// 4.5.2, which the core deliberately leaves to its caller: decoded Data
// payloads come out un-stuffed, and the encoder stuffs them back.
package codec

import (
	"bytes"
	"io"

	"blitiri.com.ar/go/smtpwire"
	"blitiri.com.ar/go/smtpwire/internal/tokens"
	"blitiri.com.ar/go/smtpwire/internal/trace"
)

// Decoder reads SMTP commands off a byte stream.
type Decoder struct {
	src    io.Reader
	parser *smtpwire.Parser
	buf    bytes.Buffer
	chunk  []byte
	tr     *trace.Trace
}

// NewDecoder returns a Decoder reading from src. The name labels the
// stream in traces (for a connection, the remote address is a good
// choice). Close the decoder when done with it.
func NewDecoder(src io.Reader, name string) *Decoder {
	return &Decoder{
		src:    src,
		parser: smtpwire.NewParser(),
		chunk:  make([]byte, 4096),
		tr:     trace.New("codec.Decoder", name),
	}
}

// Next returns the next command on the stream.
//
// Parse errors are recoverable: the stream stays synchronized and Next
// can be called again. It returns io.EOF at a clean end of stream, and
// smtpwire.ErrIncompleteInput if the stream ends in the middle of a
// frame.
func (d *Decoder) Next() (smtpwire.Command, error) {
	for {
		cmd, err := d.parser.Parse(&d.buf)
		if err != nil {
			d.tr.Error(err)
			return nil, err
		}
		if cmd != nil {
			if data, ok := cmd.(smtpwire.Data); ok {
				data.Payload = Unstuff(data.Payload)
				cmd = data
			}
			d.tr.Debugf("-> %T", cmd)
			return cmd, nil
		}

		n, err := d.src.Read(d.chunk)
		if n > 0 {
			d.buf.Write(d.chunk[:n])
			continue
		}
		if err == io.EOF {
			if d.buf.Len() > 0 {
				d.tr.Error(smtpwire.ErrIncompleteInput)
				return nil, smtpwire.ErrIncompleteInput
			}
			return nil, io.EOF
		}
		if err != nil {
			d.tr.Error(err)
			return nil, err
		}
	}
}

// Close finishes the decoder's trace. It does not close the underlying
// reader, which the decoder never owned.
func (d *Decoder) Close() {
	d.tr.Finish()
}

// Encoder writes SMTP commands onto a byte stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the canonical wire form of the command, dot-stuffing
// Data payloads on the way out.
func (e *Encoder) Encode(c smtpwire.Command) error {
	if data, ok := c.(smtpwire.Data); ok {
		data.Payload = Stuff(data.Payload)
		c = data
	}
	_, err := e.w.Write(smtpwire.Encode(c))
	return err
}

// Stuff applies dot-stuffing transparency to a message body: every line
// that begins with '.' gets one more '.' prepended.
func Stuff(body []byte) []byte {
	return mapLines(body, func(line []byte, out *bytes.Buffer) {
		if len(line) > 0 && line[0] == '.' {
			out.WriteByte('.')
		}
		out.Write(line)
	})
}

// Unstuff reverses dot-stuffing transparency: every line that begins
// with '.' loses its first byte.
func Unstuff(body []byte) []byte {
	return mapLines(body, func(line []byte, out *bytes.Buffer) {
		if len(line) > 0 && line[0] == '.' {
			line = line[1:]
		}
		out.Write(line)
	})
}

// mapLines rewrites body line by line, preserving the CRLF structure
// (including a missing final terminator).
func mapLines(body []byte, f func(line []byte, out *bytes.Buffer)) []byte {
	var out bytes.Buffer
	out.Grow(len(body) + 16)

	lines := tokens.NewLines(body)
	first := true
	emit := func(line []byte) {
		if !first {
			out.WriteString("\r\n")
		}
		first = false
		f(line, &out)
	}

	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		emit(line)
	}
	emit(lines.Rest())

	return out.Bytes()
}
