// smtpwire-util is a command-line utility for inspecting SMTP wire
// syntax: it decodes session transcripts with the smtpwire parser, and
// re-encodes them canonically.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"blitiri.com.ar/go/log"
	"blitiri.com.ar/go/smtpwire"
	"blitiri.com.ar/go/smtpwire/codec"
	"github.com/docopt/docopt-go"
)

const usage = `smtpwire-util decodes and re-encodes SMTP session transcripts.

Usage:
  smtpwire-util parse [<file>]
  smtpwire-util canon [<file>]
  smtpwire-util xtext-encode <text>
  smtpwire-util xtext-decode <xtext>

Commands:
  parse         Decode a transcript (default: stdin), one line per command.
  canon         Decode a transcript and write it back in canonical form.
  xtext-encode  Encode the given text as xtext.
  xtext-decode  Decode the given xtext string.
`

func main() {
	args, err := docopt.Parse(usage, nil, true, "", false)
	if err != nil {
		fatalf("Error parsing arguments: %v", err)
	}

	switch {
	case args["parse"].(bool):
		parseCmd(args, false)
	case args["canon"].(bool):
		parseCmd(args, true)
	case args["xtext-encode"].(bool):
		fmt.Println(string(smtpwire.EncodeXText([]byte(args["<text>"].(string)))))
	case args["xtext-decode"].(bool):
		x := smtpwire.XText(args["<xtext>"].(string))
		os.Stdout.Write(x.Decode())
		fmt.Println()
	}
}

func parseCmd(args map[string]interface{}, canonical bool) {
	input := io.Reader(os.Stdin)
	name := "stdin"
	if f, ok := args["<file>"].(string); ok && f != "" {
		file, err := os.Open(f)
		if err != nil {
			fatalf("Error opening %q: %v", f, err)
		}
		defer file.Close()
		input, name = file, f
	}

	dec := codec.NewDecoder(input, name)
	defer dec.Close()

	enc := codec.NewEncoder(os.Stdout)
	errs := 0
	for {
		cmd, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err == smtpwire.ErrIncompleteInput {
			fatalf("Transcript ended mid-frame")
		}
		if err != nil {
			log.Errorf("parse error: %v", err)
			errs++
			continue
		}

		if canonical {
			if err := enc.Encode(cmd); err != nil {
				fatalf("Error writing: %v", err)
			}
			continue
		}
		fmt.Println(describe(cmd))
	}

	if errs > 0 {
		os.Exit(1)
	}
}

// describe renders a command as one display line; bodies are summarized
// rather than dumped.
func describe(cmd smtpwire.Command) string {
	switch c := cmd.(type) {
	case smtpwire.Data:
		return fmt.Sprintf("DATA (%d bytes)", len(c.Payload))
	case smtpwire.Bdat:
		last := ""
		if c.Last {
			last = " LAST"
		}
		return fmt.Sprintf("BDAT %d%s (%d bytes)", c.Size, last, len(c.Payload))
	default:
		return string(bytes.TrimSuffix(smtpwire.Encode(cmd), []byte("\r\n")))
	}
}

func fatalf(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
	os.Exit(1)
}
