package compare

import (
	"fmt"

	"db-verify/internal/params"
	"db-verify/internal/schema"
	"db-verify/internal/validate"
)

// Schema compares two table descriptors. Target column names are first
// renamed to their source-equivalent names via the config's column mappings,
// excluded names are then dropped from both sides, and the surviving name
// sets and declared types are diffed. Result order follows the source
// table's column order, with target-only extras appended.
//
// Schema mismatches are always hard failures; soft validation never
// downgrades them.
func Schema(source, target *schema.Table, cfg *params.Config) []validate.Result {
	if r, missing := MissingTables(source, target, cfg); missing {
		return r
	}

	// Rename target columns into the source namespace.
	type targetCol struct {
		origin   string // name as declared on the target
		dataType string
	}
	targetByName := make(map[string]targetCol, len(target.Columns))
	targetOrder := make([]string, 0, len(target.Columns))
	for _, c := range target.Columns {
		name := c.Name
		if mapped, ok := cfg.ColumnMappings[c.Name]; ok {
			name = mapped
		}
		targetByName[name] = targetCol{origin: c.Name, dataType: c.DataType}
		targetOrder = append(targetOrder, name)
	}

	var results []validate.Result
	seen := make(map[string]bool, len(source.Columns))
	for _, c := range source.Columns {
		if cfg.ExcludeColumns[c.Name] {
			continue
		}
		seen[c.Name] = true
		tc, ok := targetByName[c.Name]
		if !ok {
			results = append(results, validate.Failed(c.Name, "missing_in_target"))
			continue
		}
		if tc.dataType != c.DataType {
			r := validate.Failed(c.Name, "type_mismatch")
			r.Expected = c.DataType
			r.Observed = tc.dataType
			results = append(results, r)
			continue
		}
		results = append(results, validate.Passed(c.Name, ""))
	}

	for _, name := range targetOrder {
		if seen[name] || cfg.ExcludeColumns[name] {
			continue
		}
		r := validate.Failed(name, "missing_in_source")
		if origin := targetByName[name].origin; origin != name {
			r.Reason = fmt.Sprintf("missing_in_source (target column %s)", origin)
		}
		results = append(results, r)
	}
	return results
}

// MissingTables turns empty descriptors into hard table_not_found failures.
// An unknown table is a legitimate comparison outcome, not an error.
func MissingTables(source, target *schema.Table, cfg *params.Config) ([]validate.Result, bool) {
	var results []validate.Result
	if source.Empty() {
		results = append(results, validate.Failed(cfg.SourceTable, "table_not_found in source"))
	}
	if target.Empty() {
		results = append(results, validate.Failed(cfg.TargetTable, "table_not_found in target"))
	}
	return results, len(results) > 0
}

// AppliedMappings counts the column mappings that actually bound to a target
// column, for the outcome's diagnostics.
func AppliedMappings(cfg *params.Config, target *schema.Table) int {
	if target == nil {
		return 0
	}
	n := 0
	for targetName := range cfg.ColumnMappings {
		if _, ok := target.Column(targetName); ok {
			n++
		}
	}
	return n
}
