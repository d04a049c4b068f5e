// Package logger builds the structured JSON logger shared by the HTTP layer,
// migrations, tracing setup and maintenance jobs.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to stdout with timestamps rendered in loc.
// Unknown levels fall back to info.
func New(level string, loc *time.Location) *logrus.Logger {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter is New with an explicit destination, mainly for tests.
func NewWithWriter(w io.Writer, level string, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&locationFormatter{
		loc: loc,
		next: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// locationFormatter shifts entry timestamps into a fixed location before formatting.
type locationFormatter struct {
	loc  *time.Location
	next logrus.Formatter
}

func (f *locationFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.next.Format(e)
}
