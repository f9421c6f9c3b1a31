package csvio

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteTable writes a table to path with every field quoted, creating parent
// directories as needed. The file is fully written to a temp file in the
// destination directory and then renamed over the target, so a crash mid-run
// leaves the previous output untouched. The header row is always written,
// even for an empty table: a header-only file correctly represents "nothing
// to merge". Write failures propagate; data integrity requires the caller
// know the merge did not complete.
func WriteTable(path string, t *Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "csvio: mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "csvio: create temp for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	if err := writeQuotedRow(w, t.Columns); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "csvio: write header %s", path)
	}
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			cells[i] = row[col]
		}
		if err := writeQuotedRow(w, cells); err != nil {
			tmp.Close()
			return eris.Wrapf(err, "csvio: write row %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "csvio: flush %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "csvio: close temp %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrapf(err, "csvio: rename into place %s", path)
	}
	return nil
}

// writeQuotedRow emits one CSV record with every field quoted. The produced
// files quote unconditionally (the legacy readers expect it), which
// encoding/csv's writer cannot be made to do.
func writeQuotedRow(w *bufio.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := w.WriteString(strings.ReplaceAll(cell, `"`, `""`)); err != nil {
			return err
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
