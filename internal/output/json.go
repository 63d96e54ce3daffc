package output

import (
	"encoding/json"
	"io"

	"traingame/internal/solver"
)

// Line is one JSON Lines record.
type Line struct {
	Operands solver.Operands `json:"operands"`
	Expr     string          `json:"expr"`
	Shape    string          `json:"shape"`
	Negated  bool            `json:"negated,omitempty"`
}

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
}

func writeJSON(w io.Writer, rep solver.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rep)
}

// writeJSONL emits one line per solution and nothing for an empty report.
func writeJSONL(w io.Writer, rep solver.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, s := range rep.Solutions {
		if err := enc.Encode(Line{Operands: rep.Operands, Expr: s.Expr, Shape: s.Shape, Negated: s.Negated}); err != nil {
			return err
		}
	}
	return nil
}
