package output

import (
	"fmt"
	"io"
	"sort"

	"traingame/internal/solver"
)

// WriterFunc writes one report.
type WriterFunc func(w io.Writer, rep solver.Report) error

// Writers maps a format name to its writer. Register in init blocks.
var Writers = map[string]WriterFunc{}

// Register adds or replaces the writer for format.
func Register(format string, fn WriterFunc) { Writers[format] = fn }

// Write dispatches rep to the writer registered for format.
func Write(format string, w io.Writer, rep solver.Report) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	if err := fn(w, rep); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}

// Formats lists registered format names.
func Formats() []string {
	out := make([]string, 0, len(Writers))
	for k := range Writers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
