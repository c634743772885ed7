package normalize

import (
	"fmt"
	"io"
)

// Reporter is told about every width mismatch found during a run.
type Reporter interface {
	Report(Mismatch) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Mismatch) error

// Report calls fn(m).
func (fn ReporterFunc) Report(m Mismatch) error {
	return fn(m)
}

type lineReporter struct {
	w io.Writer
}

// NewLineReporter returns a Reporter writing the old width of each mismatch
// to w, as a decimal integer on a line of its own.
func NewLineReporter(w io.Writer) Reporter {
	return lineReporter{w: w}
}

func (r lineReporter) Report(m Mismatch) error {
	_, err := fmt.Fprintln(r.w, m.Width)
	return err
}

// discard is used if a run is started without a reporter.
var discard = ReporterFunc(func(Mismatch) error { return nil })
