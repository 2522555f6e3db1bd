package tolerance

import (
	"fmt"
	"math"
	"time"

	"db-verify/internal/params"
)

// Kind tags the comparison rule a Spec carries.
type Kind int

const (
	Exact Kind = iota
	NumericAbsolute
	NumericRelative
	StringCaseFold
	StringTrim
	DateWindow
	RowCountAbsolute
	RowCountPercentage
)

// Spec is one resolved tolerance rule. Epsilon is meaningful for the numeric
// and row-count kinds, Window for DateWindow, Precision for decimal rounding
// (-1 = compare full precision).
type Spec struct {
	Kind      Kind
	Epsilon   float64
	Window    time.Duration
	Precision int
}

// AcceptCounts applies a row-count Spec to a source/target count pair and
// reports the verdict plus a human-readable explanation of the delta.
func (s Spec) AcceptCounts(source, target int64) (bool, string) {
	delta := source - target
	if delta < 0 {
		delta = -delta
	}
	switch s.Kind {
	case RowCountPercentage:
		base := source
		if base < 1 {
			base = 1
		}
		pct := float64(delta) / float64(base) * 100
		return pct <= s.Epsilon, fmt.Sprintf("row count delta %.2f%% (allowed %.2f%%)", pct, s.Epsilon)
	case RowCountAbsolute:
		return float64(delta) <= s.Epsilon, fmt.Sprintf("row count delta %d (allowed %.0f)", delta, s.Epsilon)
	default:
		return delta == 0, fmt.Sprintf("row count delta %d (exact match required)", delta)
	}
}

// AcceptReals applies numeric tolerance, honoring decimal precision rounding
// before the epsilon check. NumericRelative reads Epsilon as a percentage of
// the larger magnitude.
func (s Spec) AcceptReals(a, b float64) bool {
	if s.Precision >= 0 {
		scale := math.Pow(10, float64(s.Precision))
		a = math.Round(a*scale) / scale
		b = math.Round(b*scale) / scale
	}
	diff := math.Abs(a - b)
	switch s.Kind {
	case NumericAbsolute:
		return diff <= s.Epsilon
	case NumericRelative:
		base := math.Max(math.Abs(a), math.Abs(b))
		return diff <= s.Epsilon/100*base
	default:
		return diff == 0
	}
}

// Policy is the full set of rules resolved for one test-case execution. It is
// passed down the call chain explicitly; comparators never consult ambient
// defaults.
type Policy struct {
	RowCount Spec
	Numeric  Spec
	String   Spec
	Date     Spec
	Soft     bool
}

// ForColumn picks the Spec for a compared column. Today specs key off the
// column's value kind; the column name is accepted so per-column overrides
// can slot in without touching comparator call sites.
func (p *Policy) ForColumn(name string, kind string) Spec {
	switch kind {
	case "integer", "real":
		return p.Numeric
	case "text":
		return p.String
	case "time":
		return p.Date
	default:
		return Spec{Kind: Exact, Precision: -1}
	}
}

// Resolve derives the concrete per-scope tolerance rules from a parsed
// config. Absent fields resolve to exact equality.
func Resolve(cfg *params.Config) *Policy {
	p := &Policy{
		RowCount: Spec{Kind: Exact, Precision: -1},
		Numeric:  Spec{Kind: Exact, Precision: cfg.DecimalPrecision},
		String:   Spec{Kind: Exact, Precision: -1},
		Date:     Spec{Kind: Exact, Precision: -1},
		Soft:     cfg.Soft(),
	}

	if cfg.Tolerance > 0 {
		switch cfg.ToleranceType {
		case "absolute":
			p.RowCount = Spec{Kind: RowCountAbsolute, Epsilon: cfg.Tolerance, Precision: -1}
		default:
			p.RowCount = Spec{Kind: RowCountPercentage, Epsilon: cfg.Tolerance, Precision: -1}
		}
	}
	if cfg.FloatTolerance > 0 {
		kind := NumericAbsolute
		if cfg.FloatIsPercent {
			kind = NumericRelative
		}
		p.Numeric = Spec{Kind: kind, Epsilon: cfg.FloatTolerance, Precision: cfg.DecimalPrecision}
	}
	switch cfg.StringTolerance {
	case "case_insensitive":
		p.String = Spec{Kind: StringCaseFold, Precision: -1}
	case "trim_whitespace":
		p.String = Spec{Kind: StringTrim, Precision: -1}
	}
	if cfg.DateTolerance > 0 {
		p.Date = Spec{Kind: DateWindow, Window: cfg.DateTolerance, Precision: -1}
	}
	return p
}
