package dialect

import (
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?
// especially when prepared statements are involved or simple Exec.

func (d *MSSQLDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
ORDER BY ORDINAL_POSITION`
}

func (d *MSSQLDialect) DefaultSchema() string {
	return "dbo"
}

func (d *MSSQLDialect) CountQuery(table, where string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, whereClause(where))
}

func (d *MSSQLDialect) RowsQuery(table, keyColumn string, columns []string, where string, limit int) string {
	// TOP goes before the select list, unlike LIMIT.
	top := ""
	if limit > 0 {
		top = fmt.Sprintf("TOP (%d) ", limit)
	}
	return fmt.Sprintf("SELECT %s%s FROM %s%s ORDER BY %s",
		top, selectList(keyColumn, columns), table, whereClause(where), keyColumn)
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch t {
	case "tinyint", "smallint", "int":
		return "integer"
	case "float", "real":
		return "real"
	case "numeric", "decimal", "money", "smallmoney":
		return "decimal"
	case "nvarchar", "varchar":
		return "varchar"
	case "nchar", "char":
		return "char"
	case "ntext", "text":
		return "text"
	case "bit":
		return "boolean"
	case "datetime", "datetime2", "smalldatetime", "datetimeoffset":
		return "timestamp"
	case "varbinary", "image":
		return "binary"
	default:
		return t
	}
}

func (d *MSSQLDialect) TypeName(kind string) string {
	switch kind {
	case "integer":
		return "int"
	case "real":
		return "float"
	case "timestamp":
		return "datetime2"
	default:
		return "nvarchar(255)"
	}
}
