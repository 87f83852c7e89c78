package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a single write out to all of its writers.
// A failing writer does not stop the others; errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		written int
		errs    error
	)
	for _, w := range cw.Writers {
		n, err := w.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written = n
	}
	return written, errs
}
