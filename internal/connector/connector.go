package connector

import (
	"database/sql"
	"fmt"
	"strings"

	"db-verify/internal/compare"
	"db-verify/internal/dialect"
	"db-verify/internal/schema"
)

// Connector is the capability contract the validation engine consumes. The
// engine never opens connections or builds SQL itself; concrete connectors
// own dialects, pooling and timeouts.
type Connector interface {
	// TableSchema returns the table's descriptor. An unknown table yields an
	// empty descriptor, not an error.
	TableSchema(table string) (*schema.Table, error)
	RowCount(table, where string) (int64, error)
	// FetchRows materializes (key, cells) rows ordered by the key column.
	// limit <= 0 fetches everything.
	FetchRows(table, keyColumn string, columns []string, where string, limit int) ([]compare.Row, error)
	Close() error
}

// SQL is the database/sql-backed connector. One instance wraps one endpoint.
type SQL struct {
	db         *sql.DB
	d          dialect.Dialect
	schemaName string
}

var _ Connector = (*SQL)(nil)

// Open connects to an endpoint and resolves its default schema. The schema
// argument overrides the dialect default; for MySQL and Oracle, where the
// default is session-scoped, it is read from the live connection.
func Open(driver, dsn, schemaName string) (*SQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	d := dialect.GetDialect(driver)
	if schemaName == "" {
		schemaName = d.DefaultSchema()
	}
	if schemaName == "" {
		switch driver {
		case "oracle":
			err = db.QueryRow("SELECT USER FROM DUAL").Scan(&schemaName)
		default: // mysql
			err = db.QueryRow("SELECT DATABASE()").Scan(&schemaName)
		}
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to resolve default schema: %w", err)
		}
	}
	return &SQL{db: db, d: d, schemaName: schemaName}, nil
}

// DB exposes the underlying handle for write-side tooling (seeding).
func (c *SQL) DB() *sql.DB { return c.db }

// Dialect exposes the endpoint's dialect for write-side tooling.
func (c *SQL) Dialect() dialect.Dialect { return c.d }

func (c *SQL) Close() error { return c.db.Close() }

// splitQualified separates "public.orders" into schema and table, falling
// back to the connector's default schema for bare names.
func (c *SQL) splitQualified(table string) (string, string) {
	if schemaName, name, ok := strings.Cut(table, "."); ok {
		return schemaName, name
	}
	return c.schemaName, table
}

func (c *SQL) TableSchema(table string) (*schema.Table, error) {
	schemaName, name := c.splitQualified(table)
	rows, err := c.db.Query(c.d.ColumnsQuery(), schemaName, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	desc := &schema.Table{Name: table}
	for rows.Next() {
		var colName, dataType string
		if err := rows.Scan(&colName, &dataType); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		desc.Columns = append(desc.Columns, schema.Column{
			Name:     colName,
			DataType: c.d.NormalizeType(dataType),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns of %s: %w", table, err)
	}
	return desc, nil
}

func (c *SQL) RowCount(table, where string) (int64, error) {
	var n int64
	if err := c.db.QueryRow(c.d.CountQuery(table, where)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return n, nil
}

func (c *SQL) FetchRows(table, keyColumn string, columns []string, where string, limit int) ([]compare.Row, error) {
	query := c.d.RowsQuery(table, keyColumn, columns, where, limit)
	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows of %s: %w", table, err)
	}
	defer rows.Close()

	var out []compare.Row
	for rows.Next() {
		raw := make([]interface{}, len(columns)+1)
		ptrs := make([]interface{}, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		r := compare.Row{
			Key:   compare.FromAny(raw[0]),
			Cells: make(map[string]compare.Value, len(columns)),
		}
		for i, col := range columns {
			r.Cells[col] = compare.FromAny(raw[i+1])
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}
	return out, nil
}
