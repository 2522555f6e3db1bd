package compare

import (
	"strconv"

	"db-verify/internal/tolerance"
	"db-verify/internal/validate"
)

// RowCounts applies the resolved row-count tolerance to one count pair.
// Soft validation downgrades a failing verdict to WARNED.
func RowCounts(sourceCount, targetCount int64, spec tolerance.Spec, soft bool) validate.Result {
	ok, detail := spec.AcceptCounts(sourceCount, targetCount)
	r := validate.Result{
		Item:     "row_count",
		Status:   validate.StatusPassed,
		Reason:   detail,
		Observed: strconv.FormatInt(targetCount, 10),
		Expected: strconv.FormatInt(sourceCount, 10),
	}
	if !ok {
		r.Status = validate.StatusFailed
	}
	return validate.Downgrade(r, soft)
}
