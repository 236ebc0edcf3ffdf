package region

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type step struct {
	on bool
	c  Cuboid
}

func applyAll(s *Set, steps []step) {
	for _, st := range steps {
		s.Apply(st.on, st.c)
	}
}

// checkDisjoint fails the test if any two members share a point or a member
// is degenerate.
func checkDisjoint(t *testing.T, s *Set) {
	t.Helper()
	members := s.Cuboids()
	for i, a := range members {
		for _, a2 := range Axes {
			if a[a2].Lo > a[a2].Hi {
				t.Errorf("member %v is degenerate on %s", a, a2)
			}
		}
		for _, b := range members[i+1:] {
			if a.Overlaps(b) {
				t.Errorf("members %v and %v overlap", a, b)
			}
		}
	}
}

func TestSetEmpty(t *testing.T) {
	var s Set
	if s.TotalVolume() != 0 {
		t.Errorf("zero Set volume = %d, want 0", s.TotalVolume())
	}
	if _, ok := s.Bounds(); ok {
		t.Error("empty set should have no bounds")
	}
	s.ApplyOff(New(0, 10, 0, 10, 0, 10))
	if s.Len() != 0 {
		t.Errorf("off on empty set left %d members", s.Len())
	}
}

func TestSetSmallExample(t *testing.T) {
	s := NewSet()
	steps := []step{
		{true, New(10, 12, 10, 12, 10, 12)},
		{true, New(11, 13, 11, 13, 11, 13)},
		{false, New(9, 11, 9, 11, 9, 11)},
		{true, New(10, 10, 10, 10, 10, 10)},
	}
	wantAfter := []uint64{27, 46, 38, 39}
	for i, st := range steps {
		s.Apply(st.on, st.c)
		checkDisjoint(t, s)
		if got := s.TotalVolume(); got != wantAfter[i] {
			t.Errorf("after step %d: volume = %d, want %d", i+1, got, wantAfter[i])
		}
	}
}

func TestSetOnInsideExistingAddsNothing(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(0, 9, 0, 9, 0, 9))
	s.ApplyOn(New(2, 3, 2, 3, 2, 3))
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if s.TotalVolume() != 1000 {
		t.Errorf("volume = %d, want 1000", s.TotalVolume())
	}
}

func TestSetOnEnclosingExisting(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(2, 3, 2, 3, 2, 3))
	s.ApplyOn(New(0, 9, 0, 9, 0, 9))
	checkDisjoint(t, s)
	if s.TotalVolume() != 1000 {
		t.Errorf("volume = %d, want 1000", s.TotalVolume())
	}
}

func TestSetOffRemovesContainedMembers(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(0, 1, 0, 1, 0, 1))
	s.ApplyOn(New(5, 6, 5, 6, 5, 6))
	s.ApplyOn(New(20, 21, 20, 21, 20, 21))
	s.ApplyOff(New(-1, 10, -1, 10, -1, 10))

	want := []Cuboid{New(20, 21, 20, 21, 20, 21)}
	if diff := cmp.Diff(want, s.Cuboids()); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestSetOffIdempotent(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(-10, 10, -10, 10, -10, 10))
	s.ApplyOn(New(5, 15, 5, 15, 5, 15))
	off := New(0, 7, -3, 12, 2, 20)

	s.ApplyOff(off)
	once := s.Cuboids()
	s.ApplyOff(off)
	if diff := cmp.Diff(once, s.Cuboids()); diff != "" {
		t.Errorf("second off changed the set (-once +twice):\n%s", diff)
	}
}

func TestSetCuboidsIsCopy(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(0, 1, 0, 1, 0, 1))
	members := s.Cuboids()
	members[0] = New(5, 5, 5, 5, 5, 5)
	if !s.Contains(0, 0, 0) {
		t.Error("mutating the returned slice changed the set")
	}
}

func TestSetBounds(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(-5, 0, 3, 4, 0, 0))
	s.ApplyOn(New(2, 8, -7, -6, 10, 12))
	got, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if want := New(-5, 8, -7, 4, 0, 12); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestSetLargeVolume(t *testing.T) {
	s := NewSet()
	s.ApplyOn(New(-100000, 100000, -100000, 100000, -100000, 100000))
	s.ApplyOn(New(0, 199999, 0, 199999, 0, 199999))
	s.ApplyOff(New(-100000, 100000, -100000, 100000, -100000, 100000))
	checkDisjoint(t, s)
	var want uint64 = 200000*200000*200000 - 100001*100001*100001
	if got := s.TotalVolume(); got != want {
		t.Errorf("volume = %d, want %d", got, want)
	}
}

// TestSetMatchesBruteForce replays random command streams against an
// explicit point set and compares after every command.
func TestSetMatchesBruteForce(t *testing.T) {
	const lim = 5
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 40; round++ {
		s := NewSet()
		points := make(map[[3]int64]bool)
		for i := 0; i < 25; i++ {
			st := step{on: r.Intn(3) > 0, c: randomCuboid(r, -lim, lim)}
			s.Apply(st.on, st.c)
			for x := st.c[AxisX].Lo; x <= st.c[AxisX].Hi; x++ {
				for y := st.c[AxisY].Lo; y <= st.c[AxisY].Hi; y++ {
					for z := st.c[AxisZ].Lo; z <= st.c[AxisZ].Hi; z++ {
						if st.on {
							points[[3]int64{x, y, z}] = true
						} else {
							delete(points, [3]int64{x, y, z})
						}
					}
				}
			}

			checkDisjoint(t, s)
			if got, want := s.TotalVolume(), uint64(len(points)); got != want {
				t.Fatalf("round %d step %d (%v): volume = %d, want %d", round, i, st, got, want)
			}
		}
		for x := int64(-lim); x <= lim; x++ {
			for y := int64(-lim); y <= lim; y++ {
				for z := int64(-lim); z <= lim; z++ {
					if got, want := s.Contains(x, y, z), points[[3]int64{x, y, z}]; got != want {
						t.Fatalf("round %d: Contains(%d,%d,%d) = %v, want %v", round, x, y, z, got, want)
					}
				}
			}
		}
	}
}

// TestSetOrderMatters checks that the same commands in a different order
// give a different result, so callers must preserve input order.
func TestSetOrderMatters(t *testing.T) {
	steps := []step{
		{true, New(0, 4, 0, 4, 0, 4)},
		{false, New(2, 6, 2, 6, 2, 6)},
	}
	forward := NewSet()
	applyAll(forward, steps)

	reversed := slices.Clone(steps)
	slices.Reverse(reversed)
	backward := NewSet()
	applyAll(backward, reversed)

	if forward.TotalVolume() == backward.TotalVolume() {
		t.Errorf("expected order-dependent volumes, both %d", forward.TotalVolume())
	}
}

func TestSetApplyOnRequeuesSmallerFragments(t *testing.T) {
	tests := []struct {
		name   string
		before []step
		on     Cuboid
		splits bool
	}{
		{
			name:   "partial overlap",
			before: []step{{true, New(10, 12, 10, 12, 10, 12)}},
			on:     New(11, 13, 11, 13, 11, 13),
			splits: true,
		},
		{
			name:   "nested inside member",
			before: []step{{true, New(0, 9, 0, 9, 0, 9)}},
			on:     New(2, 4, 2, 4, 2, 4),
			splits: true,
		},
		{
			name:   "enclosing member",
			before: []step{{true, New(2, 4, 2, 4, 2, 4)}},
			on:     New(0, 9, 0, 9, 0, 9),
			splits: true,
		},
		{
			name: "enclosing several members",
			before: []step{
				{true, New(0, 1, 0, 1, 0, 1)},
				{true, New(5, 6, 5, 6, 5, 6)},
				{true, New(-3, -2, 4, 8, 0, 0)},
			},
			on:     New(-5, 10, -5, 10, -5, 10),
			splits: true,
		},
		{
			name:   "disjoint",
			before: []step{{true, New(0, 1, 0, 1, 0, 1)}},
			on:     New(5, 6, 5, 6, 5, 6),
			splits: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			applyAll(s, tt.before)

			calls := 0
			s.split = func(parent Cuboid, frags []Cuboid) {
				calls++
				for _, f := range frags {
					if f.Volume() >= parent.Volume() {
						t.Errorf("fragment %v (volume %d) not smaller than parent %v (volume %d)",
							f, f.Volume(), parent, parent.Volume())
					}
				}
			}
			s.ApplyOn(tt.on)

			if got := calls > 0; got != tt.splits {
				t.Errorf("split called %d times, want splits = %v", calls, tt.splits)
			}
			checkDisjoint(t, s)
		})
	}
}
