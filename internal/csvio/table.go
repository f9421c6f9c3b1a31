// Package csvio reads and writes the pipeline's CSV files. Tables keep their
// column order explicit so header unions across differently-shaped sources
// stay deterministic.
package csvio

// Row maps column name to cell value. Missing columns read as "".
type Row map[string]string

// Table is an in-memory CSV file: ordered columns plus rows keyed by column
// name.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// AddColumn appends a column unless it is already present. First-seen order
// is preserved, which makes header unions reproducible.
func (t *Table) AddColumn(name string) {
	for _, c := range t.Columns {
		if c == name {
			return
		}
	}
	t.Columns = append(t.Columns, name)
}

// AddColumns appends every column not already present, in the given order.
func (t *Table) AddColumns(names []string) {
	for _, n := range names {
		t.AddColumn(n)
	}
}

// Append adds a row. The row may carry columns the table does not declare;
// such cells are kept and become visible once the column is added.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}
