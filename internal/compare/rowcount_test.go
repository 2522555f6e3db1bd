package compare_test

import (
	"testing"

	"db-verify/internal/compare"
	"db-verify/internal/tolerance"
	"db-verify/internal/validate"
)

func TestRowCounts_PercentageBoundary(t *testing.T) {
	spec := tolerance.Spec{Kind: tolerance.RowCountPercentage, Epsilon: 5.0, Precision: -1}

	r := compare.RowCounts(1000, 1050, spec, false)
	if r.Status != validate.StatusPassed {
		t.Errorf("Expected 1000 vs 1050 to pass at 5.0%%: %+v", r)
	}
	if r.Expected != "1000" || r.Observed != "1050" {
		t.Errorf("Expected counts carried through, got %q/%q", r.Expected, r.Observed)
	}

	r = compare.RowCounts(1000, 1051, spec, false)
	if r.Status != validate.StatusFailed {
		t.Errorf("Expected 1000 vs 1051 to fail at 5.0%%: %+v", r)
	}
}

func TestRowCounts_AbsoluteBoundary(t *testing.T) {
	spec := tolerance.Spec{Kind: tolerance.RowCountAbsolute, Epsilon: 500, Precision: -1}

	if r := compare.RowCounts(10000, 9500, spec, false); r.Status != validate.StatusPassed {
		t.Errorf("Expected delta 500 to pass: %+v", r)
	}
	if r := compare.RowCounts(10000, 9499, spec, false); r.Status != validate.StatusFailed {
		t.Errorf("Expected delta 501 to fail: %+v", r)
	}
}

func TestRowCounts_SoftDowngrade(t *testing.T) {
	spec := tolerance.Spec{Kind: tolerance.Exact, Precision: -1}

	r := compare.RowCounts(100, 101, spec, true)
	if r.Status != validate.StatusWarned {
		t.Errorf("Expected soft validation to downgrade the mismatch, got %s", r.Status)
	}

	r = compare.RowCounts(100, 100, spec, true)
	if r.Status != validate.StatusPassed {
		t.Errorf("Expected a match to stay PASSED under soft validation, got %s", r.Status)
	}
}
