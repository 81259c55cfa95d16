package smtpwire

import (
	"bytes"

	"blitiri.com.ar/go/smtpwire/internal/tokens"
)

// DefaultMax is the default whole-stream buffer ceiling: 25 MiB.
const DefaultMax = 25 * 1024 * 1024

// parser states: between commands, inside a DATA body, inside a BDAT
// chunk.
type state int

const (
	awaitingCommand state = iota
	inData
	inBdat
)

// Parser is the streaming command parser. The caller appends incoming
// bytes to a buffer it owns; Parse consumes complete frames from the
// front of it and returns commands, keeping whatever partial frame
// remains for the next call.
//
// A Parser must not be shared between goroutines; independent instances
// need no coordination. The zero value is ready to use.
type Parser struct {
	// Max is the whole-stream buffer ceiling in bytes. Zero means
	// DefaultMax. Growing the buffer past it makes Parse drop the whole
	// buffer and fail with ErrTooLong.
	Max int

	state    state
	bdatSize int
	bdatLast bool
}

// NewParser returns a streaming parser with the default buffer ceiling.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) max() int {
	if p.Max > 0 {
		return p.Max
	}
	return DefaultMax
}

var (
	crlf    = []byte("\r\n")
	dataEnd = []byte("\r\n.\r\n")
)

// Parse consumes bytes from the front of buf and returns the next
// command.
//
// It returns (nil, nil) when buf does not yet hold a complete frame: the
// caller should append more bytes and call again. On an error the
// offending bytes have been consumed (or, past the Max ceiling, the
// buffer dropped) and the parser is ready to resume on the same buffer.
//
// The payload slices of returned Data and Bdat commands are copies; the
// caller may keep them and reuse or grow buf freely.
func (p *Parser) Parse(buf *bytes.Buffer) (Command, error) {
	for {
		if buf.Len() > p.max() {
			buf.Reset()
			p.state = awaitingCommand
			return nil, ErrTooLong
		}

		switch p.state {
		case awaitingCommand:
			pos := bytes.Index(buf.Bytes(), crlf)
			if pos < 0 {
				return nil, nil
			}
			if pos > MaxCommandLine {
				// Skip the over-long line but keep its CRLF, so the next
				// call resynchronizes on a line boundary.
				buf.Next(pos)
				return nil, ErrTooLong
			}

			line := buf.Next(pos + 2)[:pos]
			cmd, err := ParseCommand(line)
			if err != nil {
				return nil, err
			}

			switch c := cmd.(type) {
			case Data:
				p.state = inData
			case Bdat:
				p.state = inBdat
				p.bdatSize = c.Size
				p.bdatLast = c.Last
			default:
				return cmd, nil
			}

		case inData:
			pos := bytes.Index(buf.Bytes(), dataEnd)
			if pos < 0 {
				return nil, nil
			}

			payload := make([]byte, pos)
			copy(payload, buf.Next(pos+len(dataEnd)))
			p.state = awaitingCommand

			if overlongDataLine(payload) {
				return nil, ErrTooLong
			}
			return Data{Payload: payload}, nil

		case inBdat:
			if p.bdatSize > p.max() {
				// Skip as much of the chunk as we have; the payload is
				// not worth buffering if we are going to refuse it.
				n := p.bdatSize
				if buf.Len() < n {
					n = buf.Len()
				}
				buf.Next(n)
				p.state = awaitingCommand
				return nil, ErrTooLong
			}
			if buf.Len() < p.bdatSize {
				return nil, nil
			}

			payload := make([]byte, p.bdatSize)
			copy(payload, buf.Next(p.bdatSize))
			p.state = awaitingCommand
			return Bdat{Size: p.bdatSize, Last: p.bdatLast, Payload: payload}, nil
		}
	}
}

// overlongDataLine reports whether any line of the body, including the
// un-terminated tail, exceeds MaxDataLine.
func overlongDataLine(payload []byte) bool {
	lines := tokens.NewLines(payload)
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		if len(line) > MaxDataLine {
			return true
		}
	}
	return len(lines.Rest()) > MaxDataLine
}
