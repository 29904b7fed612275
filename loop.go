package star

import "fmt"

// Row is one row of loop data, keyed by column name. Column order lives
// on the owning Loop.
type Row map[string]any

// Loop is a loop_ construct: an ordered list of columns over a list of
// rows. After parsing, the loop name equals its first column name, and
// the parent container holds the loop once under every column name.
type Loop struct {
	name    string
	columns []string

	// Rows holds the loop data in order. Rows may be appended or edited
	// directly; NewRow keeps rows aligned with the columns.
	Rows []Row

	// TagPrefix, when set, is prepended to column names on writing.
	TagPrefix string
}

// NewLoop returns a loop with the given columns and no rows.
func NewLoop(name string, columns ...string) *Loop {
	l := &Loop{name: name}
	if len(columns) > 0 {
		l.columns = append(l.columns, columns...)
	}
	return l
}

// Name returns the loop name.
func (l *Loop) Name() string { return l.name }

// SetName renames the loop. The keys it is registered under in its
// parent do not change.
func (l *Loop) SetName(name string) { l.name = name }

// Columns returns the column names in order.
func (l *Loop) Columns() []string {
	columns := make([]string, len(l.columns))
	copy(columns, l.columns)
	return columns
}

func (l *Loop) hasColumn(name string) bool {
	for _, col := range l.columns {
		if col == name {
			return true
		}
	}
	return false
}

// NewRow appends a row built from values, in column order. Missing
// trailing values are nil; passing more values than columns is an error.
func (l *Loop) NewRow(values []any) (Row, error) {
	if len(values) > len(l.columns) {
		return nil, fmt.Errorf("loop %s: row passed %d values for %d columns", l.name, len(values), len(l.columns))
	}
	row := make(Row, len(l.columns))
	for i, col := range l.columns {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = nil
		}
	}
	l.Rows = append(l.Rows, row)
	return row, nil
}

// NewRowFromMap appends a row initialised from values. Keys that are not
// columns are an error; missing columns are nil.
func (l *Loop) NewRowFromMap(values map[string]any) (Row, error) {
	for key := range values {
		if !l.hasColumn(key) {
			return nil, fmt.Errorf("loop %s: illegal field in row input: %s", l.name, key)
		}
	}
	row := make(Row, len(l.columns))
	for _, col := range l.columns {
		row[col] = values[col]
	}
	l.Rows = append(l.Rows, row)
	return row, nil
}

// AddColumn appends a column. The loop must not contain rows yet; use
// AddColumnWithValue to add a column to a populated loop.
func (l *Loop) AddColumn(name string) error {
	if l.hasColumn(name) {
		return fmt.Errorf("loop %s: duplicate column name: %s", l.name, name)
	}
	if len(l.Rows) > 0 {
		return fmt.Errorf("loop %s: cannot add column %s when loop contains data", l.name, name)
	}
	l.columns = append(l.columns, name)
	return nil
}

// AddColumnWithValue appends a column and sets every existing row to the
// padding value.
func (l *Loop) AddColumnWithValue(name string, padding any) error {
	if l.hasColumn(name) {
		return fmt.Errorf("loop %s: duplicate column name: %s", l.name, name)
	}
	l.columns = append(l.columns, name)
	for _, row := range l.Rows {
		row[name] = padding
	}
	return nil
}

// RemoveColumn removes a column. When the loop contains rows, removeData
// must be set, and the column's values are dropped from every row.
func (l *Loop) RemoveColumn(name string, removeData bool) error {
	if !l.hasColumn(name) {
		return fmt.Errorf("loop %s: column named %s does not exist", l.name, name)
	}
	if len(l.Rows) > 0 && !removeData {
		return fmt.Errorf("loop %s: cannot remove column %s when loop contains data", l.name, name)
	}
	for _, row := range l.Rows {
		delete(row, name)
	}
	for i, col := range l.columns {
		if col == name {
			l.columns = append(l.columns[:i], l.columns[i+1:]...)
			break
		}
	}
	return nil
}
