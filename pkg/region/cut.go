package region

import "fmt"

// Cut holds the slicing coordinates for one axis of a cuboid. A left cut at
// c splits off [lo, c-1]; a right cut at c splits off [c+1, hi]. Whatever
// remains between the cuts lies inside the other cuboid on that axis.
type Cut struct {
	Left     int64
	Right    int64
	HasLeft  bool
	HasRight bool
}

func deriveCut(s, o Span, v Verdict) Cut {
	switch v {
	case IsContained, Equal:
		return Cut{}
	case PartialLeft:
		return Cut{Left: o.Lo, HasLeft: true}
	case PartialRight:
		return Cut{Right: o.Hi, HasRight: true}
	case Contains:
		var cut Cut
		// Cutting on our own boundary would produce an empty slab.
		if o.Lo != s.Lo {
			cut.Left, cut.HasLeft = o.Lo, true
		}
		if o.Hi != s.Hi {
			cut.Right, cut.HasRight = o.Hi, true
		}
		return cut
	}
	panic(fmt.Sprintf("region: no cut for verdict %s", v))
}

// Cuts derives the per-axis cut points separating the part of c inside o
// from the part outside it. v must be the result of c.Classify(o).
func (c Cuboid) Cuts(o Cuboid, v [3]Verdict) [3]Cut {
	var cuts [3]Cut
	for _, a := range Axes {
		cuts[a] = deriveCut(c[a], o[a], v[a])
	}
	return cuts
}
