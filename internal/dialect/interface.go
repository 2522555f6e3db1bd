package dialect

// Dialect abstracts database-specific SQL used by validation connectors.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	// ColumnsQuery binds (schema, table) and yields (column_name, data_type)
	// rows in ordinal order.
	ColumnsQuery() string
	DefaultSchema() string

	// Query Generation
	CountQuery(table string, where string) string
	RowsQuery(table string, keyColumn string, columns []string, where string, limit int) string
	InsertQuery(table string, cols []string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1 etc.

	// Helpers
	NormalizeType(sqlType string) string
	TypeName(kind string) string // DDL type for "integer", "real", "text", "timestamp"
}
