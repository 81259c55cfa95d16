// Fuzz testing for the streaming parser.

// +build gofuzz

package smtpwire

import "bytes"

func Fuzz(data []byte) int {
	interesting := 0

	// Whole buffer at once.
	p := NewParser()
	buf := bytes.NewBuffer(append([]byte(nil), data...))
	for i := 0; i < 1000; i++ {
		cmd, err := p.Parse(buf)
		if cmd != nil {
			interesting = 1
		}
		if cmd == nil && err == nil {
			break
		}
	}

	// Byte at a time, exercising the partial-input paths.
	p = NewParser()
	buf = &bytes.Buffer{}
	for _, b := range data {
		buf.WriteByte(b)
		for i := 0; i < 1000; i++ {
			cmd, err := p.Parse(buf)
			if cmd == nil && err == nil {
				break
			}
		}
	}

	// And the single-shot command parser on the raw input.
	if cmd, err := ParseCommand(data); cmd != nil && err == nil {
		interesting = 1
	}

	return interesting
}
