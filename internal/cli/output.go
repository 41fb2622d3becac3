// Package cli provides output formatting for the kotae command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kotae/internal/models"
)

// OutputFormat selects how an answer is rendered.
type OutputFormat string

const (
	// OutputText renders the answer and numbered source previews as text.
	OutputText OutputFormat = "text"
	// OutputJSON renders the raw answer payload as indented JSON.
	OutputJSON OutputFormat = "json"
)

// WriteAnswer renders ans to w in the requested format.
func WriteAnswer(w io.Writer, ans *models.Answer, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	case OutputText, "":
		if _, err := fmt.Fprintln(w, ans.Answer); err != nil {
			return err
		}
		if len(ans.Sources) == 0 {
			return nil
		}
		if _, err := fmt.Fprintln(w, "\n참고 문서:"); err != nil {
			return err
		}
		for i, src := range ans.Sources {
			if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, src); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
