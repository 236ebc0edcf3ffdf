// Package tessellate turns a lit region into geometry using a geometry
// kernel. Tessellate produces one mesh per disjoint cuboid; Solid and
// Replay build a single solid for export, and Compare checks a solid
// against a region at lattice points.
package tessellate

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/reactor/pkg/command"
	"github.com/chazu/reactor/pkg/kernel"
	"github.com/chazu/reactor/pkg/region"
)

// Tessellate produces one triangle mesh per member of set, in the order
// Set.Cuboids returns them. Members are disjoint, so they are meshed
// concurrently. The set is only read.
func Tessellate(ctx context.Context, set *region.Set, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if set == nil {
		return nil, nil
	}

	cuboids := set.Cuboids()
	meshes := make([]*kernel.Mesh, len(cuboids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cuboids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, err := k.ToMesh(k.Box(c))
			if err != nil {
				return fmt.Errorf("tessellate: ToMesh failed for cuboid %s: %w", c, err)
			}
			mesh.PartName = c.String()
			meshes[i] = mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// Solid unions the voxel boxes of every member of set. It reports false for
// an empty set, which has no solid.
func Solid(set *region.Set, k kernel.Kernel) (kernel.Solid, bool) {
	if set == nil || set.Len() == 0 {
		return nil, false
	}
	var s kernel.Solid
	for _, c := range set.Cuboids() {
		if s == nil {
			s = k.Box(c)
			continue
		}
		s = k.Union(s, k.Box(c))
	}
	return s, true
}

// Replay builds a solid straight from a command sequence with kernel
// booleans: on is a union and off a difference. Offs that precede every on
// have nothing to cut and are skipped. The result covers the same voxels as
// Solid(seq.Run(), k), which makes it a geometric cross-check of the region
// algebra (see Compare). It reports false only when the sequence has no on
// command; a solid whose every voxel was switched off again is returned
// with true and simply contains no lattice points.
func Replay(seq *command.Sequence, k kernel.Kernel) (kernel.Solid, bool) {
	if seq == nil {
		return nil, false
	}
	var s kernel.Solid
	for _, cmd := range seq.Commands {
		box := k.Box(cmd.Cuboid)
		switch {
		case cmd.On && s == nil:
			s = box
		case cmd.On:
			s = k.Union(s, box)
		case s != nil:
			s = k.Difference(s, box)
		}
	}
	return s, s != nil
}

// Mismatch is a lattice point where a solid and a region disagree.
type Mismatch struct {
	X, Y, Z  int64
	InRegion bool // the region has the point on; the solid does not
}

// Compare checks s against set at lattice points of bound: an evenly
// strided grid of at most samples points per axis, plus both corners of
// every member of set. A nil s is an empty solid. It returns the number of
// points checked and the ones where s and set disagree.
//
// Coordinates are converted to float64, so bounds beyond ±2^53 are not
// checked exactly.
func Compare(s kernel.Solid, set *region.Set, bound region.Cuboid, samples int) (int, []Mismatch) {
	if samples < 1 {
		samples = 1
	}
	// Strides are unsigned so that spans wider than int64 still step.
	var stride [3]uint64
	for _, a := range region.Axes {
		n, k := bound[a].Len(), uint64(samples)
		switch {
		case n == 0: // all 2^64 values
			stride[a] = math.MaxUint64/k + 1
			if stride[a] == 0 {
				stride[a] = math.MaxUint64
			}
		case n%k == 0:
			stride[a] = n / k
		default:
			stride[a] = n/k + 1
		}
	}

	checked := 0
	var mismatches []Mismatch
	check := func(x, y, z int64) {
		checked++
		want := set.Contains(x, y, z)
		got := s != nil && s.Contains(float64(x), float64(y), float64(z))
		if got != want {
			mismatches = append(mismatches, Mismatch{X: x, Y: y, Z: z, InRegion: want})
		}
	}

	next := func(v int64, a region.Axis) (int64, bool) {
		if uint64(bound[a].Hi)-uint64(v) < stride[a] {
			return 0, false
		}
		return int64(uint64(v) + stride[a]), true
	}
	for x, ok := bound[0].Lo, true; ok; x, ok = next(x, region.AxisX) {
		for y, ok := bound[1].Lo, true; ok; y, ok = next(y, region.AxisY) {
			for z, ok := bound[2].Lo, true; ok; z, ok = next(z, region.AxisZ) {
				check(x, y, z)
			}
		}
	}
	for _, c := range set.Cuboids() {
		check(c[0].Lo, c[1].Lo, c[2].Lo)
		check(c[0].Hi, c[1].Hi, c[2].Hi)
	}
	return checked, mismatches
}

// Clip intersects s with the voxel box of bound.
func Clip(s kernel.Solid, bound region.Cuboid, k kernel.Kernel) kernel.Solid {
	return k.Intersection(s, k.Box(bound))
}

// ExportSTL writes the union of every member of set to path.
func ExportSTL(set *region.Set, k kernel.Kernel, path string) error {
	s, ok := Solid(set, k)
	if !ok {
		return fmt.Errorf("tessellate: nothing to export to %s: region is empty", path)
	}
	return k.WriteSTL(s, path)
}
