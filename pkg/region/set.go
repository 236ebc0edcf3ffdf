package region

import (
	"slices"

	"github.com/samber/lo"
)

// Set is a collection of pairwise disjoint cuboids describing the lattice
// points currently switched on. The zero value is an empty set.
//
// A Set is not safe for concurrent mutation. Commands must be applied in
// input order; on and off do not commute.
type Set struct {
	cuboids []Cuboid

	// split, when set, sees every pending cuboid ApplyOn cuts against a
	// member along with the fragments it requeues.
	split func(parent Cuboid, frags []Cuboid)
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Apply switches every point of c on or off.
func (s *Set) Apply(on bool, c Cuboid) {
	if on {
		s.ApplyOn(c)
	} else {
		s.ApplyOff(c)
	}
}

// pending is a fragment of an on-cuboid still waiting for insertion. Members
// before index from are already known not to overlap it.
type pending struct {
	c    Cuboid
	from int
}

// ApplyOn switches every point of c on. Parts of c already covered by a
// member are cut away; the remaining fragments are inserted as new members.
func (s *Set) ApplyOn(c Cuboid) {
	work := []pending{{c: c}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		i := s.firstOverlap(p.c, p.from)
		if i < 0 {
			s.cuboids = append(s.cuboids, p.c)
			continue
		}
		// Fragments of p miss everything p missed, so their scan resumes
		// after member i. Members are only ever appended, so indexes hold.
		frags := p.c.Subtract(s.cuboids[i])
		if s.split != nil {
			s.split(p.c, frags)
		}
		for _, f := range frags {
			work = append(work, pending{c: f, from: i + 1})
		}
	}
}

func (s *Set) firstOverlap(c Cuboid, from int) int {
	for i := from; i < len(s.cuboids); i++ {
		if c.Overlaps(s.cuboids[i]) {
			return i
		}
	}
	return -1
}

// ApplyOff switches every point of c off. Members overlapping c are
// replaced by their parts outside c; members inside c disappear.
func (s *Set) ApplyOff(c Cuboid) {
	next := make([]Cuboid, 0, len(s.cuboids))
	for _, m := range s.cuboids {
		if !m.Overlaps(c) {
			next = append(next, m)
			continue
		}
		next = append(next, m.Subtract(c)...)
	}
	s.cuboids = next
}

// TotalVolume returns the number of points switched on. Members are
// disjoint, so summing their volumes counts every point once.
func (s *Set) TotalVolume() uint64 {
	return lo.SumBy(s.cuboids, Cuboid.Volume)
}

// Len returns the number of member cuboids.
func (s *Set) Len() int {
	return len(s.cuboids)
}

// Cuboids returns a copy of the members in insertion order.
func (s *Set) Cuboids() []Cuboid {
	return slices.Clone(s.cuboids)
}

// Contains reports whether the point (x, y, z) is switched on.
func (s *Set) Contains(x, y, z int64) bool {
	return lo.ContainsBy(s.cuboids, func(c Cuboid) bool {
		return c.ContainsPoint(x, y, z)
	})
}

// Bounds returns the smallest cuboid enclosing every member. It returns
// false for an empty set.
func (s *Set) Bounds() (Cuboid, bool) {
	if len(s.cuboids) == 0 {
		return Cuboid{}, false
	}
	return lo.Reduce(s.cuboids[1:], func(b Cuboid, c Cuboid, _ int) Cuboid {
		return b.Hull(c)
	}, s.cuboids[0]), true
}
