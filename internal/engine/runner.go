package engine

import (
	"fmt"
	"strings"
	"time"

	"db-verify/internal/compare"
	"db-verify/internal/connector"
	"db-verify/internal/params"
	"db-verify/internal/tolerance"
	"db-verify/internal/validate"
)

// TestCase is one declarative comparison between a source and a target
// table, as loaded from the suite config.
type TestCase struct {
	ID             string `mapstructure:"id"`
	Name           string `mapstructure:"name"`
	Category       string `mapstructure:"category"`
	ExpectedResult string `mapstructure:"expected_result"` // PASS (default) or FAIL
	Parameters     string `mapstructure:"parameters"`
	Skip           bool   `mapstructure:"skip"`
}

// CaseResult carries one executed test case's verdict and diagnostics.
type CaseResult struct {
	Case    TestCase
	Status  string // PASSED / FAILED / SKIPPED
	Message string
	Outcome *validate.Outcome
	Elapsed time.Duration
}

// Runner executes test cases against a fixed source/target connector pair.
// Each execution is a pure function of the case and connector data, so
// distinct runners may run concurrently; one execution is strictly
// sequential.
type Runner struct {
	Source connector.Connector
	Target connector.Connector
}

// Execute runs one test case end to end: parse, resolve tolerance, compare,
// aggregate. Data-time problems land in the outcome as FAILED results; only
// parse/config problems and connector failures short-circuit.
func (r *Runner) Execute(tc TestCase) CaseResult {
	start := time.Now()
	res := CaseResult{Case: tc, Status: validate.StatusFailed}
	defer func() { res.Elapsed = time.Since(start) }()

	if tc.Skip {
		res.Status = "SKIPPED"
		return res
	}

	category, err := params.ParseCategory(tc.Category)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	cfg, err := params.Parse(tc.Parameters, category)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	pol := tolerance.Resolve(cfg)

	var results []validate.Result
	mappings := 0
	switch category {
	case params.CategorySchema:
		results, mappings, err = r.runSchema(cfg)
	case params.CategoryRowCount:
		results, err = r.runRowCount(cfg, pol)
	case params.CategoryColumns:
		results, mappings, err = r.runColumns(cfg, pol)
	}
	if err != nil {
		res.Message = err.Error()
		return res
	}

	res.Outcome = validate.Aggregate(results, mappings)

	// Negative test cases: a case expected to FAIL passes when the
	// validation fails.
	expectPass := !strings.EqualFold(tc.ExpectedResult, "FAIL")
	if res.Outcome.Passed == expectPass {
		res.Status = validate.StatusPassed
	}
	res.Message = fmt.Sprintf("%d/%d item(s) passed, %d warned",
		res.Outcome.PassedItems, res.Outcome.TotalItems, res.Outcome.WarnedItems)
	return res
}

func (r *Runner) runSchema(cfg *params.Config) ([]validate.Result, int, error) {
	source, err := r.Source.TableSchema(cfg.SourceTable)
	if err != nil {
		return nil, 0, fmt.Errorf("source schema: %w", err)
	}
	target, err := r.Target.TableSchema(cfg.TargetTable)
	if err != nil {
		return nil, 0, fmt.Errorf("target schema: %w", err)
	}
	return compare.Schema(source, target, cfg), compare.AppliedMappings(cfg, target), nil
}

func (r *Runner) runRowCount(cfg *params.Config, pol *tolerance.Policy) ([]validate.Result, error) {
	sourceCount, err := r.Source.RowCount(cfg.SourceTable, cfg.SourceWhere)
	if err != nil {
		return nil, fmt.Errorf("source row count: %w", err)
	}
	targetCount, err := r.Target.RowCount(cfg.TargetTable, cfg.TargetWhere)
	if err != nil {
		return nil, fmt.Errorf("target row count: %w", err)
	}
	return []validate.Result{compare.RowCounts(sourceCount, targetCount, pol.RowCount, pol.Soft)}, nil
}

func (r *Runner) runColumns(cfg *params.Config, pol *tolerance.Policy) ([]validate.Result, int, error) {
	source, err := r.Source.TableSchema(cfg.SourceTable)
	if err != nil {
		return nil, 0, fmt.Errorf("source schema: %w", err)
	}
	target, err := r.Target.TableSchema(cfg.TargetTable)
	if err != nil {
		return nil, 0, fmt.Errorf("target schema: %w", err)
	}
	if missing, bad := compare.MissingTables(source, target, cfg); bad {
		return missing, 0, nil
	}

	pairs, problems := compare.PlanColumns(cfg, source, target)
	results := problems
	mappings := compare.AppliedMappings(cfg, target)
	if len(pairs) == 0 {
		return results, mappings, nil
	}

	sourceCols := make([]string, len(pairs))
	targetCols := make([]string, len(pairs))
	for i, p := range pairs {
		sourceCols[i] = p.Source
		targetCols[i] = p.Target
	}

	sourceRows, err := r.Source.FetchRows(cfg.SourceTable, cfg.KeyColumn, sourceCols, cfg.SourceWhere, cfg.SampleSize)
	if err != nil {
		return nil, 0, fmt.Errorf("source rows: %w", err)
	}
	targetKey := compare.TargetColumn(cfg, cfg.KeyColumn)
	targetRows, err := r.Target.FetchRows(cfg.TargetTable, targetKey, targetCols, cfg.TargetWhere, cfg.SampleSize)
	if err != nil {
		return nil, 0, fmt.Errorf("target rows: %w", err)
	}

	keyKind := compare.KindText
	if kc, ok := source.Column(cfg.KeyColumn); ok {
		keyKind = compare.KindForType(kc.DataType)
	}
	results = append(results, compare.Columns(sourceRows, targetRows, pairs, keyKind, pol, cfg.SampleSize)...)
	return results, mappings, nil
}
