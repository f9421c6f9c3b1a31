package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadTable reads a CSV file into a Table, mapping cells by header name.
// A missing file is not an error: it reads as an empty table, so a merge run
// proceeds with whatever sources exist. Legacy files written with a UTF-8
// byte-order mark are tolerated. Rows with fewer cells than the header leave
// the missing columns empty; extra cells are dropped.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Table{}, nil
		}
		return nil, eris.Wrapf(err, "csvio: open %s", path)
	}
	defer f.Close()

	return readTable(f, path)
}

func readTable(r io.Reader, path string) (*Table, error) {
	// The BOM-policy decoder strips a leading UTF-8 BOM and passes BOM-less
	// input through untouched.
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		// An unreadable header means the file contributes nothing to the
		// union; the merge proceeds without it.
		zap.L().Warn("csvio: unparseable header, treating file as empty",
			zap.String("path", path), zap.Error(err))
		return &Table{}, nil
	}

	t := NewTable(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				zap.L().Warn("csvio: skipping malformed row",
					zap.String("path", path), zap.Error(err))
				continue
			}
			return nil, eris.Wrapf(err, "csvio: read row %s", path)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		t.Append(row)
	}
	return t, nil
}
