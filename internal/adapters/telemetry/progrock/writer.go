package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

// LogWriter is a progrock writer that prints one line per finished vertex.
// Progress displays for a tool like this one are line-oriented, not a full
// terminal UI; running vertices stay silent.
type LogWriter struct {
	out io.Writer

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewLogWriter creates a LogWriter printing to out.
func NewLogWriter(out io.Writer) *LogWriter {
	return &LogWriter{
		out:  out,
		seen: make(map[string]struct{}),
	}
}

// WriteStatus prints the vertices that reached a terminal state in this
// update. Each vertex is reported once, whichever update completes it.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, ok := w.seen[v.Id]; ok {
			continue
		}
		w.seen[v.Id] = struct{}{}

		switch {
		case v.Error != nil:
			fmt.Fprintf(w.out, "✗ %s: %s\n", v.Name, v.GetError())
		case v.Cached:
			fmt.Fprintf(w.out, "• %s (cached)\n", v.Name)
		default:
			fmt.Fprintf(w.out, "✓ %s\n", v.Name)
		}
	}
	return nil
}

// Close implements the optional closer progrock recorders look for.
func (w *LogWriter) Close() error { return nil }
