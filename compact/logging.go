package compact

import (
	"io"
	"log"
)

// Logger is the diagnostic hook Writer and Reader accept, playing the
// same role a *log.Logger injected per connection would in a network
// service -- but as an interface, since this package has no connection
// to attach one to and a caller embedding it in a larger service will
// usually already have its own logger to satisfy it with.
type Logger interface {
	Printf(format string, args ...any)
}

// NoopLogger discards everything. It is the default for both Writer and
// Reader, since logging is not a feature this package requires of its
// callers.
var NoopLogger Logger = noopLogger{}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// stdLogger adapts a *log.Logger to Logger.
type stdLogger struct{ l *log.Logger }

func (s stdLogger) Printf(format string, args ...any) { s.l.Printf(format, args...) }

// NewStdLogger returns a Logger backed by the standard library's
// log.Logger, writing to w with a fixed prefix and the standard date/time
// flags.
func NewStdLogger(w io.Writer) Logger {
	return stdLogger{l: log.New(w, "pathtrie: ", log.LstdFlags)}
}
