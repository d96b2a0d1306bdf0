package commands

import (
	"fmt"
	"io"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/store"
)

// Archive imports img into st and attaches report to it when non-nil.
func Archive(st *store.Store, w io.Writer, img registers.Image, tables *registers.Tables, src store.Source, report *m18.HealthReport) (string, error) {
	hash, isNew, err := st.Import(img, tables, src)
	if err != nil {
		return "", fmt.Errorf("failed to store dump: %w", err)
	}
	if report != nil {
		if err := st.AttachReport(hash, report); err != nil {
			return "", fmt.Errorf("failed to store report: %w", err)
		}
	}
	if isNew {
		fmt.Fprintf(w, "Saved dump %s\n", store.ShortHash(hash))
	} else {
		fmt.Fprintf(w, "Dump %s already stored, source recorded\n", store.ShortHash(hash))
	}
	return hash, nil
}
