package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) ColumnsQuery() string {
	return `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`
}

func (d *PostgresDialect) DefaultSchema() string {
	return "public"
}

func (d *PostgresDialect) CountQuery(table, where string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, whereClause(where))
}

func (d *PostgresDialect) RowsQuery(table, keyColumn string, columns []string, where string, limit int) string {
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		selectList(keyColumn, columns), table, whereClause(where), keyColumn)
	if limit > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, limit)
	}
	return q
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	switch t {
	case "int2", "int4", "smallint", "integer", "serial":
		return "integer"
	case "int8", "bigint", "bigserial":
		return "bigint"
	case "float4", "float8", "real", "double precision":
		return "real"
	case "numeric", "decimal", "money":
		return "decimal"
	case "character varying", "varchar":
		return "varchar"
	case "bpchar", "character", "char":
		return "char"
	case "bool", "boolean":
		return "boolean"
	case "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return "timestamp"
	case "bytea":
		return "binary"
	default:
		return t
	}
}

func (d *PostgresDialect) TypeName(kind string) string {
	switch kind {
	case "integer":
		return "integer"
	case "real":
		return "double precision"
	case "timestamp":
		return "timestamp"
	default:
		return "text"
	}
}
