// Package trace provides the tracing facade for the parser's stream
// adapters (the codec package), on top of golang.org/x/net/trace.
//
// A nil *Trace is valid and silent, so code can carry one
// unconditionally and pay nothing when tracing is not wanted.
package trace

import (
	"fmt"
	"strconv"

	"blitiri.com.ar/go/log"

	nettrace "golang.org/x/net/trace"
)

// A Trace represents one traced stream of activity (for the codec, one
// connection's worth of commands).
type Trace struct {
	family string
	title  string
	t      nettrace.Trace
}

// New trace. The caller must Finish it when done with it.
func New(family, title string) *Trace {
	t := &Trace{family, title, nettrace.New(family, title)}

	// The default of 10 events cuts off a normal SMTP exchange; 30 keeps
	// most sessions whole.
	t.t.SetMaxEvents(30)
	return t
}

// Printf adds this message to the trace's log.
func (t *Trace) Printf(format string, a ...interface{}) {
	if t == nil {
		return
	}
	t.t.LazyPrintf(format, a...)

	log.Log(log.Info, 1, "%s %s: %s", t.family, t.title,
		quote(fmt.Sprintf(format, a...)))
}

// Debugf adds this message to the trace's log, with a debugging level.
func (t *Trace) Debugf(format string, a ...interface{}) {
	if t == nil {
		return
	}
	t.t.LazyPrintf(format, a...)

	log.Log(log.Debug, 1, "%s %s: %s", t.family, t.title,
		quote(fmt.Sprintf(format, a...)))
}

// Errorf adds this message to the trace's log, marks the trace as errored,
// and returns the message as an error.
func (t *Trace) Errorf(format string, a ...interface{}) error {
	err := fmt.Errorf(format, a...)
	if t == nil {
		return err
	}
	t.t.SetError()
	t.t.LazyPrintf("error: %v", err)

	log.Log(log.Info, 1, "%s %s: error: %s", t.family, t.title,
		quote(err.Error()))
	return err
}

// Error marks the trace as having seen an error, and logs it.
func (t *Trace) Error(err error) error {
	if t == nil {
		return err
	}
	t.t.SetError()
	t.t.LazyPrintf("error: %v", err)

	log.Log(log.Info, 1, "%s %s: error: %s", t.family, t.title,
		quote(err.Error()))
	return err
}

// Finish the trace. It should not be used after this is called.
func (t *Trace) Finish() {
	if t == nil {
		return
	}
	t.t.Finish()
}

func quote(s string) string {
	qs := strconv.Quote(s)
	return qs[1 : len(qs)-1]
}
