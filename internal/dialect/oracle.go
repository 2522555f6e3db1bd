package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) ColumnsQuery() string {
	// NUMBER splits into INTEGER/DECIMAL by scale so cross-database schema
	// comparison sees the same canonical names the other dialects produce.
	return `SELECT COLUMN_NAME,
    CASE
        WHEN DATA_TYPE = 'NUMBER' AND COALESCE(DATA_SCALE, 0) > 0 THEN 'DECIMAL'
        WHEN DATA_TYPE = 'NUMBER' THEN 'INTEGER'
        ELSE DATA_TYPE
    END
FROM ALL_TAB_COLUMNS
WHERE OWNER = UPPER(:1) AND TABLE_NAME = UPPER(:2)
ORDER BY COLUMN_ID`
}

func (d *OracleDialect) DefaultSchema() string {
	// Current user's own tables; the connector resolves the session user.
	return ""
}

func (d *OracleDialect) CountQuery(table, where string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, whereClause(where))
}

func (d *OracleDialect) RowsQuery(table, keyColumn string, columns []string, where string, limit int) string {
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		selectList(keyColumn, columns), table, whereClause(where), keyColumn)
	if limit > 0 {
		q = fmt.Sprintf("%s FETCH FIRST %d ROWS ONLY", q, limit)
	}
	return q
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch {
	case t == "integer":
		return "integer"
	case t == "decimal":
		return "decimal"
	case t == "binary_float" || t == "binary_double" || t == "float":
		return "real"
	case t == "varchar2" || t == "nvarchar2":
		return "varchar"
	case t == "char" || t == "nchar":
		return "char"
	case t == "clob" || t == "nclob" || t == "long":
		return "text"
	case strings.HasPrefix(t, "timestamp"):
		return "timestamp"
	case t == "blob" || t == "raw" || t == "long raw":
		return "binary"
	default:
		return t
	}
}

func (d *OracleDialect) TypeName(kind string) string {
	switch kind {
	case "integer":
		return "number(10)"
	case "real":
		return "binary_double"
	case "timestamp":
		return "timestamp"
	default:
		return "varchar2(255)"
	}
}
