package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"db-verify/internal/engine"
	"db-verify/internal/validate"
)

// maxDetailResults caps the per-item results carried into the JSON report.
const maxDetailResults = 10

// Summary prints the human-readable run report.
func Summary(w io.Writer, results []engine.CaseResult) {
	fmt.Fprintln(w, "\n📊 Validation Report:")

	passed, failed, skipped := 0, 0, 0
	for i, r := range results {
		icon := "✓"
		switch r.Status {
		case validate.StatusPassed:
			passed++
		case "SKIPPED":
			skipped++
			icon = "-"
		default:
			failed++
			icon = "!"
		}

		name := r.Case.Name
		if name == "" {
			name = r.Case.ID
		}
		fmt.Fprintf(w, "[%s] [%02d/%02d] %-30s : %s (%s)\n",
			icon, i+1, len(results), name, r.Status, r.Elapsed.Round(time.Millisecond))
		if r.Message != "" {
			fmt.Fprintf(w, "    └ %s\n", r.Message)
		}
		if r.Outcome == nil {
			continue
		}
		for _, item := range r.Outcome.Results {
			if item.Status == validate.StatusPassed {
				continue
			}
			fmt.Fprintf(w, "    └ [%s] %s: %s\n", item.Status, item.Item, item.Reason)
		}
	}

	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total: %d  Passed: %d  Failed: %d  Skipped: %d\n",
		len(results), passed, failed, skipped)
}

type caseRecord struct {
	ID        string            `json:"id,omitempty"`
	Name      string            `json:"name,omitempty"`
	Category  string            `json:"category"`
	Status    string            `json:"status"`
	Message   string            `json:"message,omitempty"`
	ElapsedMs int64             `json:"elapsed_ms"`
	Outcome   *validate.Outcome `json:"outcome,omitempty"`
}

// WriteJSON writes the machine-readable run report. Per-item results are
// truncated to the first few entries per case; the counters stay complete.
func WriteJSON(path string, results []engine.CaseResult) error {
	records := make([]caseRecord, 0, len(results))
	for _, r := range results {
		rec := caseRecord{
			ID:        r.Case.ID,
			Name:      r.Case.Name,
			Category:  r.Case.Category,
			Status:    r.Status,
			Message:   r.Message,
			ElapsedMs: r.Elapsed.Milliseconds(),
		}
		if r.Outcome != nil {
			out := *r.Outcome
			if len(out.Results) > maxDetailResults {
				out.Results = out.Results[:maxDetailResults]
			}
			rec.Outcome = &out
		}
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
