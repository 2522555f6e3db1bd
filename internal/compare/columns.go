package compare

import (
	"fmt"
	"strings"

	"db-verify/internal/params"
	"db-verify/internal/schema"
	"db-verify/internal/tolerance"
	"db-verify/internal/validate"
)

// maxExamples bounds how many failing row examples a reason string carries.
const maxExamples = 3

// Row is one materialized table row: the key column value plus the compared
// cells keyed by the column names of the table it came from. Rows are
// borrowed from the connector and never mutated here.
type Row struct {
	Key   Value
	Cells map[string]Value
}

// ColumnPair binds one compared source column to its target counterpart
// after mapping, with the declared value kinds on both sides.
type ColumnPair struct {
	Source     string
	Target     string
	SourceKind ValueKind
	TargetKind ValueKind
}

// PlanColumns derives the compared column pairs from the config and the two
// descriptors: explicit compare_columns when given, otherwise every source
// column except the key, minus exclusions, all post-mapping. Structural
// problems (a compared column missing on either side) come back as FAILED
// results rather than errors so the rest of the comparison still runs.
func PlanColumns(cfg *params.Config, source, target *schema.Table) ([]ColumnPair, []validate.Result) {
	// Invert target->source mappings to find each source column's target name.
	toTarget := make(map[string]string, len(cfg.ColumnMappings))
	for targetName, sourceName := range cfg.ColumnMappings {
		toTarget[sourceName] = targetName
	}

	names := cfg.CompareColumns
	if len(names) == 0 {
		for _, c := range source.Columns {
			if c.Name != cfg.KeyColumn {
				names = append(names, c.Name)
			}
		}
	}

	var pairs []ColumnPair
	var problems []validate.Result
	for _, name := range names {
		if cfg.ExcludeColumns[name] {
			continue
		}
		sc, ok := source.Column(name)
		if !ok {
			problems = append(problems, validate.Failed(name, "missing_in_source"))
			continue
		}
		targetName := name
		if mapped, ok := toTarget[name]; ok {
			targetName = mapped
		}
		if cfg.ExcludeColumns[targetName] {
			continue
		}
		tc, ok := target.Column(targetName)
		if !ok {
			problems = append(problems, validate.Failed(name, "missing_in_target"))
			continue
		}
		pairs = append(pairs, ColumnPair{
			Source:     name,
			Target:     targetName,
			SourceKind: KindForType(sc.DataType),
			TargetKind: KindForType(tc.DataType),
		})
	}
	return pairs, problems
}

// Columns compares the matched row pairs column by column. Rows are paired
// by key (inner join); both sides' keys are coerced to the key column's
// declared kind before indexing, so drivers that deliver the same key as
// int64 and as decimal text still join. Keys present on only one side are
// reported once as a single unmatched_keys result and never abort the
// matched comparison. sampleSize, when positive, caps the examined pairs in
// source row order — a deterministic truncation, not a statistical sample.
func Columns(sourceRows, targetRows []Row, pairs []ColumnPair, keyKind ValueKind, pol *tolerance.Policy, sampleSize int) []validate.Result {
	targetByKey := make(map[string]Row, len(targetRows))
	for _, r := range targetRows {
		key := Coerce(r.Key, keyKind).String()
		if _, dup := targetByKey[key]; !dup {
			targetByKey[key] = r
		}
	}

	var joined []matchedPair
	sourceKeys := make(map[string]bool, len(sourceRows))
	var sourceOnly []string
	for _, r := range sourceRows {
		key := Coerce(r.Key, keyKind).String()
		sourceKeys[key] = true
		t, ok := targetByKey[key]
		if !ok {
			sourceOnly = append(sourceOnly, key)
			continue
		}
		joined = append(joined, matchedPair{key: key, source: r, target: t})
	}
	var targetOnly []string
	for _, r := range targetRows {
		key := Coerce(r.Key, keyKind).String()
		if !sourceKeys[key] {
			targetOnly = append(targetOnly, key)
		}
	}
	if sampleSize > 0 && len(joined) > sampleSize {
		joined = joined[:sampleSize]
	}

	var results []validate.Result
	for _, pair := range pairs {
		results = append(results, compareColumn(pair, joined, pol))
	}

	if len(sourceOnly)+len(targetOnly) > 0 {
		reason := fmt.Sprintf(
			"%d key(s) only in source, %d only in target (e.g. %s)",
			len(sourceOnly), len(targetOnly),
			strings.Join(firstN(append(sourceOnly, targetOnly...), maxExamples), ", "))
		if sampleSize > 0 {
			reason += "; counts reflect the sampled window only"
		}
		r := validate.Failed("unmatched_keys", reason)
		results = append(results, validate.Downgrade(r, pol.Soft))
	}
	return results
}

type matchedPair struct {
	key    string
	source Row
	target Row
}

// numericFamily reports whether a kind family takes part in mixed integer
// and real comparison; equal widens integers so the pairing is comparable.
func numericFamily(f string) bool {
	return f == "integer" || f == "real"
}

func compareColumn(pair ColumnPair, joined []matchedPair, pol *tolerance.Policy) validate.Result {
	sf, tf := pair.SourceKind.Family(), pair.TargetKind.Family()
	if sf != tf && !(numericFamily(sf) && numericFamily(tf)) {
		r := validate.Failed(pair.Source, fmt.Sprintf(
			"type_mismatch: cannot compare %s against %s", sf, tf))
		return r // incompatible declared kinds never downgrade silently
	}

	spec := pol.ForColumn(pair.Source, sf)
	failures := 0
	var examples []string
	for _, m := range joined {
		a := Coerce(m.source.Cells[pair.Source], pair.SourceKind)
		b := Coerce(m.target.Cells[pair.Target], pair.TargetKind)
		ok, comparable := equal(a, b, spec)
		if comparable && ok {
			continue
		}
		failures++
		if len(examples) < maxExamples {
			if !comparable {
				examples = append(examples, fmt.Sprintf("key=%s: incompatible values %s / %s", m.key, a, b))
			} else {
				examples = append(examples, fmt.Sprintf("key=%s: %s != %s", m.key, a, b))
			}
		}
	}

	if failures == 0 {
		return validate.Passed(pair.Source, fmt.Sprintf("%d row pair(s) matched", len(joined)))
	}
	r := validate.Failed(pair.Source, fmt.Sprintf(
		"%d of %d row pair(s) differ (%s)", failures, len(joined), strings.Join(examples, "; ")))
	return validate.Downgrade(r, pol.Soft)
}

// TargetColumn resolves the target-side name of a source column under the
// config's mappings (identity when no mapping names it).
func TargetColumn(cfg *params.Config, source string) string {
	for targetName, sourceName := range cfg.ColumnMappings {
		if sourceName == source {
			return targetName
		}
	}
	return source
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
