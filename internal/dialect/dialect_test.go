package dialect_test

import (
	"testing"

	"db-verify/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	cases := []struct {
		driver string
		schema string
	}{
		{"postgres", "public"},
		{"sqlserver", "dbo"},
		{"mssql", "dbo"},
		{"oracle", ""},
		{"mysql", ""},
		{"", ""}, // unknown drivers fall back to mysql
	}
	for _, tc := range cases {
		d := dialect.GetDialect(tc.driver)
		if d == nil {
			t.Fatalf("GetDialect(%q) returned nil", tc.driver)
		}
		if got := d.DefaultSchema(); got != tc.schema {
			t.Errorf("GetDialect(%q).DefaultSchema() = %q, expected %q", tc.driver, got, tc.schema)
		}
	}
}

func TestRowsQuery(t *testing.T) {
	cols := []string{"total", "status"}
	cases := []struct {
		driver string
		want   string
	}{
		{"postgres", "SELECT order_id, total, status FROM orders WHERE status <> 'draft' ORDER BY order_id LIMIT 50"},
		{"mysql", "SELECT order_id, total, status FROM orders WHERE status <> 'draft' ORDER BY order_id LIMIT 50"},
		{"sqlserver", "SELECT TOP (50) order_id, total, status FROM orders WHERE status <> 'draft' ORDER BY order_id"},
		{"oracle", "SELECT order_id, total, status FROM orders WHERE status <> 'draft' ORDER BY order_id FETCH FIRST 50 ROWS ONLY"},
	}
	for _, tc := range cases {
		d := dialect.GetDialect(tc.driver)
		got := d.RowsQuery("orders", "order_id", cols, "status <> 'draft'", 50)
		if got != tc.want {
			t.Errorf("%s RowsQuery:\n got %q\nwant %q", tc.driver, got, tc.want)
		}
	}
}

func TestRowsQuery_NoLimitNoWhere(t *testing.T) {
	d := dialect.GetDialect("postgres")
	got := d.RowsQuery("orders", "order_id", []string{"total"}, "", 0)
	want := "SELECT order_id, total FROM orders ORDER BY order_id"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCountQuery_WhereKeywordTolerated(t *testing.T) {
	d := dialect.GetDialect("mysql")
	want := "SELECT COUNT(*) FROM orders WHERE status = 'open'"

	if got := d.CountQuery("orders", "status = 'open'"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := d.CountQuery("orders", "WHERE status = 'open'"); got != want {
		t.Errorf("Expected the WHERE keyword tolerated, got %q", got)
	}
	if got := d.CountQuery("orders", ""); got != "SELECT COUNT(*) FROM orders" {
		t.Errorf("Expected no WHERE clause, got %q", got)
	}
}

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		driver  string
		sqlType string
		want    string
	}{
		{"postgres", "character varying", "varchar"},
		{"postgres", "double precision", "real"},
		{"postgres", "timestamp without time zone", "timestamp"},
		{"mysql", "INT", "integer"},
		{"mysql", "datetime", "timestamp"},
		{"sqlserver", "nvarchar", "varchar"},
		{"sqlserver", "bit", "boolean"},
		{"oracle", "VARCHAR2", "varchar"},
		{"oracle", "BINARY_DOUBLE", "real"},
		{"oracle", "TIMESTAMP(6)", "timestamp"},
	}
	for _, tc := range cases {
		d := dialect.GetDialect(tc.driver)
		if got := d.NormalizeType(tc.sqlType); got != tc.want {
			t.Errorf("%s NormalizeType(%q) = %q, expected %q", tc.driver, tc.sqlType, got, tc.want)
		}
	}
}

func TestInsertQuery_Placeholders(t *testing.T) {
	cases := []struct {
		driver string
		want   string
	}{
		{"postgres", "INSERT INTO products (id, name) VALUES ($1, $2)"},
		{"mysql", "INSERT INTO products (id, name) VALUES (?, ?)"},
		{"sqlserver", "INSERT INTO products (id, name) VALUES (@p1, @p2)"},
		{"oracle", "INSERT INTO products (id, name) VALUES (:1, :2)"},
	}
	for _, tc := range cases {
		d := dialect.GetDialect(tc.driver)
		if got := d.InsertQuery("products", []string{"id", "name"}); got != tc.want {
			t.Errorf("%s InsertQuery = %q, expected %q", tc.driver, got, tc.want)
		}
	}
}
