package output

import (
	"bufio"
	"fmt"
	"io"

	"traingame/internal/solver"
)

// NoSolutions is printed when a search finds nothing.
const NoSolutions = "No solutions found :("

func init() {
	Register("text", writeText)
}

func writeText(w io.Writer, rep solver.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Results for %s\n", rep.Operands)
	if len(rep.Solutions) == 0 {
		fmt.Fprintln(bw, NoSolutions)
	}
	for _, s := range rep.Solutions {
		fmt.Fprintln(bw, s.Expr)
	}
	return bw.Flush()
}
