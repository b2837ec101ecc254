package health

// Table is an in-memory tabular dataset: an ordered list of column names
// and rows of string cells. Cells are kept as raw text; numeric and time
// interpretation happens in the steps that need it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) Table {
	return Table{Columns: columns}
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Get returns the cell value for a row and column name. Rows shorter than
// the header contribute an empty value for trailing columns.
func (t Table) Get(row int, name string) (string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	if idx >= len(t.Rows[row]) {
		return "", true
	}
	return t.Rows[row][idx], true
}

// Set writes a cell value. It is a no-op when the column is absent.
func (t *Table) Set(row int, name, value string) {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	for len(t.Rows[row]) <= idx {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][idx] = value
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, padRow(row, len(t.Columns)))
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Filter returns a table with the same columns containing only the rows
// for which keep returns true, in their original order.
func (t Table) Filter(keep func(row []string) bool) Table {
	out := Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func padRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
