package region

import "fmt"

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the axes in the order Subtract walks them.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Span is an inclusive integer range. A Span built by NewSpan always has
// Lo <= Hi; Lo == Hi is a valid one-wide span.
type Span struct {
	Lo int64 `json:"lo"`
	Hi int64 `json:"hi"`
}

// NewSpan returns the span covering a and b, whichever order they come in.
func NewSpan(a, b int64) Span {
	if a > b {
		a, b = b, a
	}
	return Span{Lo: a, Hi: b}
}

// Len returns the number of lattice points in the span. The arithmetic is
// done in uint64 so spans wider than MaxInt64 are counted correctly; the
// full int64 range wraps to 0.
func (s Span) Len() uint64 {
	return uint64(s.Hi) - uint64(s.Lo) + 1
}

// Contains reports whether v lies within the span.
func (s Span) Contains(v int64) bool {
	return s.Lo <= v && v <= s.Hi
}

// Intersect returns the overlap of two spans and whether it is non-empty.
func (s Span) Intersect(o Span) (Span, bool) {
	r := Span{Lo: max(s.Lo, o.Lo), Hi: min(s.Hi, o.Hi)}
	if r.Lo > r.Hi {
		return Span{}, false
	}
	return r, true
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
}

// Cuboid is an axis-aligned box of lattice points, one inclusive Span per
// axis, indexed by Axis. Cuboids are plain values; == compares all six
// bounds.
type Cuboid [3]Span

// New builds a cuboid from per-axis endpoints given in any order.
func New(x0, x1, y0, y1, z0, z1 int64) Cuboid {
	return Cuboid{NewSpan(x0, x1), NewSpan(y0, y1), NewSpan(z0, z1)}
}

// FromSpans builds a cuboid from three spans, normalizing each.
func FromSpans(x, y, z Span) Cuboid {
	return Cuboid{NewSpan(x.Lo, x.Hi), NewSpan(y.Lo, y.Hi), NewSpan(z.Lo, z.Hi)}
}

// Volume returns the number of lattice points inside the cuboid.
func (c Cuboid) Volume() uint64 {
	return c[AxisX].Len() * c[AxisY].Len() * c[AxisZ].Len()
}

// Intersect returns the common part of two cuboids and whether it exists.
func (c Cuboid) Intersect(o Cuboid) (Cuboid, bool) {
	var r Cuboid
	for _, a := range Axes {
		s, ok := c[a].Intersect(o[a])
		if !ok {
			return Cuboid{}, false
		}
		r[a] = s
	}
	return r, true
}

// Hull returns the smallest cuboid enclosing both c and o.
func (c Cuboid) Hull(o Cuboid) Cuboid {
	for _, a := range Axes {
		c[a] = Span{Lo: min(c[a].Lo, o[a].Lo), Hi: max(c[a].Hi, o[a].Hi)}
	}
	return c
}

// ContainsPoint reports whether the lattice point (x, y, z) is inside c.
func (c Cuboid) ContainsPoint(x, y, z int64) bool {
	return c[AxisX].Contains(x) && c[AxisY].Contains(y) && c[AxisZ].Contains(z)
}

// String formats the cuboid the way commands spell it: x=a..b,y=c..d,z=e..f.
func (c Cuboid) String() string {
	return fmt.Sprintf("x=%s,y=%s,z=%s", c[AxisX], c[AxisY], c[AxisZ])
}
