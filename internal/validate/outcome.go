package validate

// Status of a single comparison item.
const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
	StatusWarned = "WARNED"
)

// Result is the verdict for one compared column or aggregate check.
type Result struct {
	Item     string `json:"item"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Observed string `json:"observed,omitempty"`
	Expected string `json:"expected,omitempty"`
}

func Passed(item, reason string) Result {
	return Result{Item: item, Status: StatusPassed, Reason: reason}
}

func Failed(item, reason string) Result {
	return Result{Item: item, Status: StatusFailed, Reason: reason}
}

// Downgrade turns a FAILED result into WARNED when soft validation applies.
// Passing results are returned unchanged.
func Downgrade(r Result, soft bool) Result {
	if soft && r.Status == StatusFailed {
		r.Status = StatusWarned
	}
	return r
}

// Outcome is the aggregate verdict of one test-case execution. It is built
// fresh per execution and never mutated after Aggregate returns.
type Outcome struct {
	Passed          bool     `json:"passed"`
	TotalItems      int      `json:"total_items"`
	PassedItems     int      `json:"passed_items"`
	FailedItems     int      `json:"failed_items"`
	WarnedItems     int      `json:"warned_items"`
	MappingsApplied int      `json:"mappings_applied"`
	Results         []Result `json:"results"`
}

// Aggregate folds per-item results into one verdict. The outcome passes iff
// no item FAILED; warnings count separately and never fail the case.
func Aggregate(results []Result, mappingsApplied int) *Outcome {
	out := &Outcome{
		Passed:          true,
		TotalItems:      len(results),
		MappingsApplied: mappingsApplied,
		Results:         results,
	}
	for _, r := range results {
		switch r.Status {
		case StatusFailed:
			out.FailedItems++
			out.Passed = false
		case StatusWarned:
			out.WarnedItems++
		default:
			out.PassedItems++
		}
	}
	return out
}
