package dialect

import (
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`
}

func (d *MysqlDialect) DefaultSchema() string {
	// Current database comes from the DSN; the connector resolves it.
	return ""
}

func (d *MysqlDialect) CountQuery(table, where string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, whereClause(where))
}

func (d *MysqlDialect) RowsQuery(table, keyColumn string, columns []string, where string, limit int) string {
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		selectList(keyColumn, columns), table, whereClause(where), keyColumn)
	if limit > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, limit)
	}
	return q
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch t {
	case "tinyint", "smallint", "mediumint", "int":
		return "integer"
	case "float", "double":
		return "real"
	case "numeric":
		return "decimal"
	case "tinytext", "mediumtext", "longtext":
		return "text"
	case "datetime":
		return "timestamp"
	case "bit":
		return "boolean"
	case "blob", "tinyblob", "mediumblob", "longblob", "varbinary":
		return "binary"
	default:
		return t
	}
}

func (d *MysqlDialect) TypeName(kind string) string {
	switch kind {
	case "integer":
		return "int"
	case "real":
		return "double"
	case "timestamp":
		return "datetime"
	default:
		return "varchar(255)"
	}
}
