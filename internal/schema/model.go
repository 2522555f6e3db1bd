package schema

// Table is a read-only descriptor of one database table: its qualified name
// plus the ordered (column, declared type) pairs a connector reported for it.
// Descriptors are always produced by a connector, never built by comparators.
type Table struct {
	Name    string
	Columns []Column
}

type Column struct {
	Name     string
	DataType string // normalized by the owning dialect
}

// Column returns the descriptor for the named column, if present.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Empty reports whether the connector found no columns, which callers treat
// as "table not found" rather than an error.
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0
}
