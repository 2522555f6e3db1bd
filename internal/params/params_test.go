package params_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"db-verify/internal/params"
)

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"SCHEMA_VALIDATION", "schema_validation", " Schema_Validation "} {
		c, err := params.ParseCategory(raw)
		if err != nil {
			t.Errorf("ParseCategory(%q) returned error: %v", raw, err)
		}
		if c != params.CategorySchema {
			t.Errorf("Expected %s, got %s", params.CategorySchema, c)
		}
	}

	if _, err := params.ParseCategory("PK_VALIDATION"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestParse_SemicolonSeparated(t *testing.T) {
	raw := "source_table=public.orders;target_table=private.orders;key_column=order_id;" +
		"compare_columns=total,status;column_mappings=order_total=total;exclude_columns=updated_at;" +
		"tolerance=5.0;tolerance_type=percentage;validation_type=soft;" +
		"float_tolerance=0.01;string_tolerance=case_insensitive;date_tolerance=1 day;" +
		"decimal_precision=2;sample_size=100;source_where=status <> 'draft'"

	cfg, err := params.Parse(raw, params.CategoryColumns)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if cfg.SourceTable != "public.orders" || cfg.TargetTable != "private.orders" {
		t.Errorf("Unexpected tables: %q / %q", cfg.SourceTable, cfg.TargetTable)
	}
	if cfg.KeyColumn != "order_id" {
		t.Errorf("Expected key_column order_id, got %q", cfg.KeyColumn)
	}
	if !reflect.DeepEqual(cfg.CompareColumns, []string{"total", "status"}) {
		t.Errorf("Unexpected compare columns: %v", cfg.CompareColumns)
	}
	if cfg.ColumnMappings["order_total"] != "total" {
		t.Errorf("Unexpected mappings: %v", cfg.ColumnMappings)
	}
	if !cfg.ExcludeColumns["updated_at"] {
		t.Errorf("Expected updated_at excluded, got %v", cfg.ExcludeColumns)
	}
	if cfg.Tolerance != 5.0 || cfg.ToleranceType != "percentage" {
		t.Errorf("Unexpected tolerance: %v %s", cfg.Tolerance, cfg.ToleranceType)
	}
	if !cfg.Soft() {
		t.Error("Expected soft validation")
	}
	if cfg.FloatTolerance != 0.01 {
		t.Errorf("Expected float tolerance 0.01, got %v", cfg.FloatTolerance)
	}
	if cfg.StringTolerance != "case_insensitive" {
		t.Errorf("Unexpected string tolerance: %q", cfg.StringTolerance)
	}
	if cfg.DateTolerance != 24*time.Hour {
		t.Errorf("Expected 24h date tolerance, got %v", cfg.DateTolerance)
	}
	if cfg.DecimalPrecision != 2 {
		t.Errorf("Expected decimal precision 2, got %d", cfg.DecimalPrecision)
	}
	if cfg.SampleSize != 100 {
		t.Errorf("Expected sample size 100, got %d", cfg.SampleSize)
	}
	if cfg.SourceWhere != "status <> 'draft'" {
		t.Errorf("Unexpected source_where: %q", cfg.SourceWhere)
	}
}

func TestParse_LegacyCommaSeparated(t *testing.T) {
	// Without ';' the comma is both field and list separator. A segment whose
	// key is not recognized must extend the preceding list-valued field.
	raw := "source_table=products,target_table=products_copy,key_column=product_id," +
		"column_mappings=cost_price=price,product_description=product_name," +
		"exclude_columns=created_at,updated_at,tolerance=2"

	cfg, err := params.Parse(raw, params.CategoryColumns)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := map[string]string{
		"cost_price":          "price",
		"product_description": "product_name",
	}
	if !reflect.DeepEqual(cfg.ColumnMappings, want) {
		t.Errorf("Expected mappings %v, got %v", want, cfg.ColumnMappings)
	}
	if !cfg.ExcludeColumns["created_at"] || !cfg.ExcludeColumns["updated_at"] {
		t.Errorf("Expected both exclusions, got %v", cfg.ExcludeColumns)
	}
	if cfg.Tolerance != 2 {
		t.Errorf("Expected tolerance 2, got %v", cfg.Tolerance)
	}
}

func TestParse_Deterministic(t *testing.T) {
	raw := "source_table=a;target_table=b;key_column=id;exclude_columns=x,y;column_mappings=m=n;sample_size=10"
	first, err := params.Parse(raw, params.CategoryColumns)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := params.Parse(raw, params.CategoryColumns)
		if err != nil {
			t.Fatalf("Parse returned error on repeat: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Parse is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestParse_UnknownKeysOverflow(t *testing.T) {
	cfg, err := params.Parse("source_table=a;target_table=b;retry_count=3", params.CategorySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Extra["retry_count"] != "3" {
		t.Errorf("Expected unknown key preserved, got %v", cfg.Extra)
	}
}

func TestParse_FloatTolerancePercent(t *testing.T) {
	cfg, err := params.Parse("source_table=a;target_table=b;float_tolerance=5%", params.CategorySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.FloatTolerance != 5 || !cfg.FloatIsPercent {
		t.Errorf("Expected a 5%% relative tolerance, got %v percent=%v", cfg.FloatTolerance, cfg.FloatIsPercent)
	}

	cfg, err = params.Parse("source_table=a;target_table=b;float_tolerance=5", params.CategorySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.FloatIsPercent {
		t.Error("Expected a bare number to stay absolute")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		category params.Category
	}{
		{"bad tolerance", "source_table=a;target_table=b;tolerance=lots", params.CategorySchema},
		{"bad tolerance type", "source_table=a;target_table=b;tolerance_type=relative", params.CategorySchema},
		{"bad validation type", "source_table=a;target_table=b;validation_type=medium", params.CategorySchema},
		{"bad sample size", "source_table=a;target_table=b;sample_size=-5", params.CategorySchema},
		{"bad date window", "source_table=a;target_table=b;date_tolerance=one day", params.CategorySchema},
		{"missing source", "target_table=b", params.CategorySchema},
		{"missing target", "source_table=a", params.CategorySchema},
		{"missing key for columns", "source_table=a;target_table=b", params.CategoryColumns},
		{"bare token", "source_table=a;target_table=b;oops", params.CategorySchema},
	}
	for _, tc := range cases {
		_, err := params.Parse(tc.raw, tc.category)
		var pe *params.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected ParseError, got %v", tc.name, err)
		}
	}
}

func TestParse_KeyColumnExcluded(t *testing.T) {
	_, err := params.Parse("source_table=a;target_table=b;key_column=id;exclude_columns=id", params.CategoryColumns)
	var ce *params.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
}

func TestParse_DateWindows(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"1 day", 24 * time.Hour},
		{"2 days", 48 * time.Hour},
		{"12 hours", 12 * time.Hour},
		{"30 minutes", 30 * time.Minute},
		{"45 seconds", 45 * time.Second},
		{"90m", 90 * time.Minute},
	}
	for _, tc := range cases {
		cfg, err := params.Parse("source_table=a;target_table=b;date_tolerance="+tc.raw, params.CategorySchema)
		if err != nil {
			t.Errorf("date_tolerance=%q: %v", tc.raw, err)
			continue
		}
		if cfg.DateTolerance != tc.want {
			t.Errorf("date_tolerance=%q: expected %v, got %v", tc.raw, tc.want, cfg.DateTolerance)
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := params.Parse("source_table=a;target_table=b", params.CategoryRowCount)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.ToleranceType != "percentage" {
		t.Errorf("Expected percentage default, got %q", cfg.ToleranceType)
	}
	if cfg.Soft() {
		t.Error("Expected hard validation by default")
	}
	if cfg.DecimalPrecision != -1 {
		t.Errorf("Expected exact decimal precision by default, got %d", cfg.DecimalPrecision)
	}
}
