package compare

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"db-verify/internal/tolerance"
)

// ValueKind tags the variant carried by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindTime
)

// Family groups kinds the way tolerance rules are keyed: integers and reals
// share the numeric rules.
func (k ValueKind) Family() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Value is a typed cell value. Comparators match on the kind tag instead of
// duck-typing raw driver values.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	t    time.Time
}

func Null() Value              { return Value{kind: KindNull} }
func Int(v int64) Value        { return Value{kind: KindInteger, i: v} }
func Real(v float64) Value     { return Value{kind: KindReal, f: v} }
func Text(v string) Value      { return Value{kind: KindText, s: v} }
func Time(v time.Time) Value   { return Value{kind: KindTime, t: v} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// FromAny converts a database/sql scan result into a Value. Unknown driver
// types degrade to their text rendering.
func FromAny(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case int64:
		return Int(v)
	case int:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case float64:
		return Real(v)
	case float32:
		return Real(float64(v))
	case bool:
		if v {
			return Int(1)
		}
		return Int(0)
	case []byte:
		return Text(string(v))
	case string:
		return Text(v)
	case time.Time:
		return Time(v)
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

// Coerce nudges a scanned value toward the column's declared kind. Drivers
// disagree on wire shapes (DECIMAL as text, DATETIME as bytes), and the
// declared type wins when the text parses cleanly.
func Coerce(v Value, declared ValueKind) Value {
	if v.kind == declared || v.IsNull() {
		return v
	}
	s, ok := v.AsText()
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	switch declared {
	case KindInteger:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
		// Integer columns can arrive as decimal-shaped text ("1.00") when
		// the driver sends numerics over the wire as strings.
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			return Int(int64(f))
		}
	case KindReal:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Real(f)
		}
	case KindTime:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return Time(t)
			}
		}
	}
	return v
}

// AsReal widens integers so the numeric family compares uniformly.
func (v Value) AsReal() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindReal:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) AsText() (string, bool) {
	if v.kind == KindText {
		return v.s, true
	}
	return "", false
}

func (v Value) AsTime() (time.Time, bool) {
	if v.kind == KindTime {
		return v.t, true
	}
	return time.Time{}, false
}

// String renders the value for diagnostics and join keys.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return v.s
	}
}

// KindForType maps a dialect-normalized declared type to the value kind
// comparators should expect for that column.
func KindForType(normalized string) ValueKind {
	switch normalized {
	case "integer", "bigint", "boolean":
		return KindInteger
	case "real", "decimal":
		return KindReal
	case "date", "timestamp", "time":
		return KindTime
	default:
		return KindText
	}
}

// equal applies one tolerance spec to a matched value pair. The second return
// is false when the two values are of incompatible kinds and no comparison
// was possible.
func equal(a, b Value, spec tolerance.Spec) (bool, bool) {
	if a.IsNull() || b.IsNull() {
		// Null representations were normalized at scan time; two nulls are
		// equal regardless of tolerance.
		return a.IsNull() && b.IsNull(), true
	}

	if af, ok := a.AsReal(); ok {
		bf, ok := b.AsReal()
		if !ok {
			return false, false
		}
		return spec.AcceptReals(af, bf), true
	}

	if at, ok := a.AsTime(); ok {
		bt, ok := b.AsTime()
		if !ok {
			return false, false
		}
		if spec.Kind == tolerance.DateWindow {
			d := at.Sub(bt)
			if d < 0 {
				d = -d
			}
			return d <= spec.Window, true
		}
		return at.Equal(bt), true
	}

	as, ok := a.AsText()
	if !ok {
		return false, false
	}
	bs, ok := b.AsText()
	if !ok {
		return false, false
	}
	switch spec.Kind {
	case tolerance.StringCaseFold:
		return strings.EqualFold(as, bs), true
	case tolerance.StringTrim:
		return strings.TrimSpace(as) == strings.TrimSpace(bs), true
	default:
		return as == bs, true
	}
}
