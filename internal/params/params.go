package params

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category selects which comparisons a test case runs.
type Category string

const (
	CategorySchema   Category = "SCHEMA_VALIDATION"
	CategoryRowCount Category = "ROW_COUNT_VALIDATION"
	CategoryColumns  Category = "COL_COL_VALIDATION"
)

// ParseCategory maps the raw category string to a Category.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(raw))) {
	case CategorySchema:
		return CategorySchema, nil
	case CategoryRowCount:
		return CategoryRowCount, nil
	case CategoryColumns:
		return CategoryColumns, nil
	default:
		return "", &ParseError{Field: "category", Value: raw, Msg: "unknown test category"}
	}
}

// ParseError reports a malformed parameter string or a missing required field.
type ParseError struct {
	Field string
	Value string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("parse %s=%q: %s", e.Field, e.Value, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s", e.Field, e.Msg)
}

// ConfigError reports an internally inconsistent configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "invalid test configuration: " + e.Msg
}

// Config is the immutable, typed result of parsing one parameter string.
//
// ColumnMappings direction is fixed by convention: the map key is the TARGET
// column name, the value is the SOURCE column name it corresponds to
// (column_mappings=cost_price=price compares target cost_price against
// source price). ExcludeColumns is applied after mappings.
type Config struct {
	SourceTable string
	TargetTable string

	KeyColumn      string
	CompareColumns []string
	ColumnMappings map[string]string
	ExcludeColumns map[string]bool

	Tolerance        float64
	ToleranceType    string // "percentage" or "absolute"
	ValidationType   string // "hard" or "soft"
	FloatTolerance   float64
	FloatIsPercent   bool // float_tolerance carried a '%' suffix
	StringTolerance  string // "", "case_insensitive", "trim_whitespace"
	DateTolerance    time.Duration
	DecimalPrecision int // -1 = exact

	SampleSize  int
	SourceWhere string
	TargetWhere string

	// Unknown keys are preserved rather than rejected so newer test
	// definitions still parse against older binaries.
	Extra map[string]string
}

// Soft reports whether tolerance violations downgrade to warnings.
func (c *Config) Soft() bool {
	return c.ValidationType == "soft"
}

// Field keys the parser understands. Anything else lands in Extra.
var knownKeys = map[string]bool{
	"source_table":      true,
	"target_table":      true,
	"key_column":        true,
	"compare_columns":   true,
	"column_mappings":   true,
	"exclude_columns":   true,
	"tolerance":         true,
	"tolerance_type":    true,
	"validation_type":   true,
	"float_tolerance":   true,
	"string_tolerance":  true,
	"date_tolerance":    true,
	"decimal_precision": true,
	"sample_size":       true,
	"source_where":      true,
	"target_where":      true,
}

// List-valued fields whose values may themselves contain commas.
var listKeys = map[string]bool{
	"compare_columns": true,
	"column_mappings": true,
	"exclude_columns": true,
}

// Parse turns a raw parameter string into a Config and validates it for the
// given category. The grammar accepts both separator conventions found in
// historical test definitions: when the string contains any ';' it is the
// field separator and ',' only separates list elements; otherwise fields are
// split on top-level ',', where a comma-segment without a recognized key
// continues the preceding list-valued field.
func Parse(raw string, category Category) (*Config, error) {
	cfg := &Config{
		ColumnMappings:   map[string]string{},
		ExcludeColumns:   map[string]bool{},
		ToleranceType:    "percentage",
		ValidationType:   "hard",
		DecimalPrecision: -1,
		Extra:            map[string]string{},
	}

	fields, err := splitFields(raw)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if err := cfg.assign(f.key, f.value); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(category); err != nil {
		return nil, err
	}
	return cfg, nil
}

type field struct {
	key   string
	value string
}

func splitFields(raw string) ([]field, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.Contains(raw, ";") {
		var fields []field
		for _, part := range strings.Split(raw, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key, value, ok := strings.Cut(part, "=")
			if !ok {
				return nil, &ParseError{Field: part, Msg: "expected key=value"}
			}
			fields = append(fields, field{strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)})
		}
		return fields, nil
	}

	// Legacy comma-separated form. A segment starts a new field only when its
	// key part is recognized; otherwise it extends the previous field's list
	// value (column_mappings=a=b,c=d must not split into bogus fields).
	var fields []field
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if ok && (knownKeys[key] || len(fields) == 0 || !listKeys[fields[len(fields)-1].key]) {
			fields = append(fields, field{key, strings.TrimSpace(value)})
			continue
		}
		if len(fields) > 0 && listKeys[fields[len(fields)-1].key] {
			last := &fields[len(fields)-1]
			last.value += "," + part
			continue
		}
		return nil, &ParseError{Field: part, Msg: "expected key=value"}
	}
	return fields, nil
}

func (c *Config) assign(key, value string) error {
	switch key {
	case "source_table":
		c.SourceTable = value
	case "target_table":
		c.TargetTable = value
	case "key_column":
		c.KeyColumn = value
	case "compare_columns":
		c.CompareColumns = splitList(value)
	case "exclude_columns":
		for _, name := range splitList(value) {
			c.ExcludeColumns[name] = true
		}
	case "column_mappings":
		for _, pair := range splitList(value) {
			target, source, ok := strings.Cut(pair, "=")
			if !ok {
				return &ParseError{Field: key, Value: pair, Msg: "expected target=source"}
			}
			c.ColumnMappings[strings.TrimSpace(target)] = strings.TrimSpace(source)
		}
	case "tolerance":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &ParseError{Field: key, Value: value, Msg: "not a number"}
		}
		c.Tolerance = v
	case "tolerance_type":
		v := strings.ToLower(value)
		if v != "percentage" && v != "absolute" {
			return &ParseError{Field: key, Value: value, Msg: "must be percentage or absolute"}
		}
		c.ToleranceType = v
	case "validation_type":
		v := strings.ToLower(value)
		if v != "hard" && v != "soft" {
			return &ParseError{Field: key, Value: value, Msg: "must be hard or soft"}
		}
		c.ValidationType = v
	case "float_tolerance":
		raw := value
		if strings.HasSuffix(raw, "%") {
			c.FloatIsPercent = true
			raw = strings.TrimSuffix(raw, "%")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return &ParseError{Field: key, Value: value, Msg: "not a number"}
		}
		c.FloatTolerance = v
	case "string_tolerance":
		v := strings.ToLower(value)
		if v != "exact" && v != "case_insensitive" && v != "trim_whitespace" {
			return &ParseError{Field: key, Value: value, Msg: "unknown string tolerance"}
		}
		if v == "exact" {
			v = ""
		}
		c.StringTolerance = v
	case "date_tolerance":
		d, err := parseWindow(value)
		if err != nil {
			return &ParseError{Field: key, Value: value, Msg: err.Error()}
		}
		c.DateTolerance = d
	case "decimal_precision":
		if strings.EqualFold(value, "exact") {
			c.DecimalPrecision = -1
			return nil
		}
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return &ParseError{Field: key, Value: value, Msg: "not a non-negative integer"}
		}
		c.DecimalPrecision = v
	case "sample_size":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return &ParseError{Field: key, Value: value, Msg: "not a non-negative integer"}
		}
		c.SampleSize = v
	case "source_where":
		c.SourceWhere = value
	case "target_where":
		c.TargetWhere = value
	default:
		c.Extra[key] = value
	}
	return nil
}

func (c *Config) validate(category Category) error {
	if c.SourceTable == "" {
		return &ParseError{Field: "source_table", Msg: "required"}
	}
	if c.TargetTable == "" {
		return &ParseError{Field: "target_table", Msg: "required"}
	}
	if category == CategoryColumns && c.KeyColumn == "" {
		return &ParseError{Field: "key_column", Msg: "required for " + string(CategoryColumns)}
	}
	if c.KeyColumn != "" && c.ExcludeColumns[c.KeyColumn] {
		return &ConfigError{Msg: fmt.Sprintf("key_column %q is listed in exclude_columns", c.KeyColumn)}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseWindow accepts "1 day", "2 hours", "30 minutes", "45 seconds" and
// plain Go durations ("90m").
func parseWindow(value string) (time.Duration, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	parts := strings.Fields(v)
	if len(parts) == 2 {
		n, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %s", parts[0])
		}
		var unit time.Duration
		switch strings.TrimSuffix(parts[1], "s") {
		case "day":
			unit = 24 * time.Hour
		case "hour":
			unit = time.Hour
		case "minute", "min":
			unit = time.Minute
		case "second", "sec":
			unit = time.Second
		default:
			return 0, fmt.Errorf("unknown unit: %s", parts[1])
		}
		return time.Duration(n * float64(unit)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("not a duration: %s", value)
	}
	return d, nil
}
