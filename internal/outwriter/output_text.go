package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
)

// TextDocument is a named block of generated prose, such as a prompt or advice.
type TextDocument struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// WriteTextDocuments prints prose blocks. JSON wraps them with their names and every
// other format prints them as plain text.
func WriteTextDocuments(docs []TextDocument, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, docs)
		}, "Wrote JSON")
	}
	if cfg.Output == schema.ParquetOut {
		return ErrParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		for i, doc := range docs {
			if len(docs) > 1 {
				sep := "\n"
				if i == 0 {
					sep = ""
				}
				if _, err := fmt.Fprintf(w, "%s### %s\n", sep, doc.Name); err != nil {
					return err
				}
			}
			text := doc.Text
			if text == "" {
				text = "(no gap analysis for this candidate)"
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote text")
}
