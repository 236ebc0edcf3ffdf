package region

import (
	"math"
	"testing"
)

func TestNewSpanNormalizes(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want Span
	}{
		{"ordered", 1, 5, Span{1, 5}},
		{"reversed", 5, 1, Span{1, 5}},
		{"negative reversed", -3, -9, Span{-9, -3}},
		{"single point", 7, 7, Span{7, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSpan(tt.a, tt.b); got != tt.want {
				t.Errorf("NewSpan(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		name string
		s    Span
		want uint64
	}{
		{"single point", Span{4, 4}, 1},
		{"crosses zero", Span{-10, 10}, 21},
		{"wider than int32", Span{-100000, 100000}, 200001},
		{"wider than MaxInt64", Span{math.MinInt64 + 1, math.MaxInt64}, math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Len(); got != tt.want {
				t.Errorf("%v.Len() = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestCuboidVolume(t *testing.T) {
	tests := []struct {
		name string
		c    Cuboid
		want uint64
	}{
		{"unit", New(0, 0, 0, 0, 0, 0), 1},
		{"3x3x3", New(10, 12, 10, 12, 10, 12), 27},
		{"reversed endpoints", New(12, 10, 12, 10, 12, 10), 27},
		{"flat slab", New(34, 34, 24, 24, 16, 17), 2},
		// 200001^3 does not fit in 32 bits.
		{"large", New(-100000, 100000, -100000, 100000, -100000, 100000), 200001 * 200001 * 200001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Volume(); got != tt.want {
				t.Errorf("%v.Volume() = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestCuboidIntersect(t *testing.T) {
	a := New(10, 12, 10, 12, 10, 12)

	got, ok := a.Intersect(New(11, 13, 11, 13, 11, 13))
	if !ok {
		t.Fatal("expected overlapping cuboids to intersect")
	}
	if want := New(11, 12, 11, 12, 11, 12); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	if _, ok := a.Intersect(New(13, 20, 10, 12, 10, 12)); ok {
		t.Error("expected cuboids separated on x not to intersect")
	}
}

func TestCuboidString(t *testing.T) {
	c := New(-20, 26, -36, 17, -47, 7)
	if got, want := c.String(), "x=-20..26,y=-36..17,z=-47..7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCuboidEquality(t *testing.T) {
	if New(1, 2, 3, 4, 5, 6) != New(2, 1, 4, 3, 6, 5) {
		t.Error("cuboids built from swapped endpoints should be equal")
	}
	if New(1, 2, 3, 4, 5, 6) == New(1, 2, 3, 4, 5, 7) {
		t.Error("cuboids differing in one bound should not be equal")
	}
}

func TestAxisString(t *testing.T) {
	for a, want := range map[Axis]string{AxisX: "x", AxisY: "y", AxisZ: "z", Axis(7): "Axis(7)"} {
		if got := a.String(); got != want {
			t.Errorf("Axis(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}

func TestCuboidHull(t *testing.T) {
	got := New(0, 1, 5, 6, -3, -3).Hull(New(-2, 0, 9, 9, 4, 8))
	if want := New(-2, 1, 5, 9, -3, 8); got != want {
		t.Errorf("Hull = %v, want %v", got, want)
	}
}
