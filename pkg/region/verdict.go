package region

import (
	"cmp"
	"fmt"
)

// Verdict classifies how one span relates to another on a single axis.
type Verdict int

const (
	Disjoint     Verdict = iota // no common point
	PartialLeft                 // starts before other, ends inside it
	PartialRight                // starts inside other, ends after it
	Contains                    // encloses other, at least one edge strictly
	IsContained                 // lies inside other, at least one edge strictly
	Equal                       // identical bounds
)

func (v Verdict) String() string {
	switch v {
	case Disjoint:
		return "disjoint"
	case PartialLeft:
		return "partial-left"
	case PartialRight:
		return "partial-right"
	case Contains:
		return "contains"
	case IsContained:
		return "is-contained"
	case Equal:
		return "equal"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// covered reports whether the span is entirely inside the other span.
func (v Verdict) covered() bool {
	return v == IsContained || v == Equal
}

// classifySpan folds the nine (lo, hi) comparison outcomes into a Verdict.
func classifySpan(s, o Span) Verdict {
	lo, hi := cmp.Compare(s.Lo, o.Lo), cmp.Compare(s.Hi, o.Hi)
	switch {
	case lo < 0 && hi < 0:
		if s.Hi < o.Lo {
			return Disjoint
		}
		return PartialLeft
	case lo > 0 && hi > 0:
		if s.Lo > o.Hi {
			return Disjoint
		}
		return PartialRight
	case lo == 0 && hi == 0:
		return Equal
	case lo <= 0 && hi >= 0:
		return Contains
	default:
		return IsContained
	}
}

// Classify returns the per-axis verdicts of c against o. The second result
// is false when some axis is Disjoint, in which case the cuboids share no
// point and the verdicts are meaningless.
func (c Cuboid) Classify(o Cuboid) ([3]Verdict, bool) {
	var v [3]Verdict
	for _, a := range Axes {
		v[a] = classifySpan(c[a], o[a])
		if v[a] == Disjoint {
			return [3]Verdict{}, false
		}
	}
	return v, true
}

// Overlaps reports whether c and o share at least one lattice point.
func (c Cuboid) Overlaps(o Cuboid) bool {
	_, ok := c.Classify(o)
	return ok
}
