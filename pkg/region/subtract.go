package region

import "fmt"

// Subtract returns disjoint cuboids that exactly tile c minus o. Every
// fragment is strictly smaller than c. A cuboid inside or equal to o leaves
// nothing and yields an empty result.
//
// c and o must overlap; Subtract panics otherwise. Callers test with
// Classify or Overlaps first.
func (c Cuboid) Subtract(o Cuboid) []Cuboid {
	v, ok := c.Classify(o)
	if !ok {
		panic(fmt.Sprintf("region: subtract of disjoint cuboids %s and %s", c, o))
	}
	if v[AxisX].covered() && v[AxisY].covered() && v[AxisZ].covered() {
		return nil
	}

	cuts := c.Cuts(o, v)

	// narrowed starts as c. Once an axis has been cut, its entry shrinks to
	// c ∩ o so later slabs never reach into slabs already emitted.
	narrowed := c
	frags := make([]Cuboid, 0, 6)
	for _, a := range Axes {
		cut := cuts[a]
		if cut.HasLeft {
			f := narrowed
			f[a] = Span{Lo: c[a].Lo, Hi: cut.Left - 1}
			frags = append(frags, f)
		}
		if cut.HasRight {
			f := narrowed
			f[a] = Span{Lo: cut.Right + 1, Hi: c[a].Hi}
			frags = append(frags, f)
		}
		narrowed[a], _ = c[a].Intersect(o[a])
	}
	return frags
}
