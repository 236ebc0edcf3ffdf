// Package kernel defines the abstract geometry kernel interface.
// Implementations provide solid modeling, boolean operations and mesh
// output behind this interface, so a lit region can be rendered or
// exported without the region algebra knowing about geometry backends.
package kernel

import "github.com/chazu/reactor/pkg/region"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)

	// Contains reports whether the point lies strictly inside the solid.
	Contains(x, y, z float64) bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box returns the solid covered by the lattice points of c. Each point
	// owns the unit voxel centred on it, so the solid spans lo-0.5..hi+0.5
	// on every axis.
	Box(c region.Cuboid) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Output
	ToMesh(s Solid) (*Mesh, error)
	WriteSTL(s Solid, path string) error
}

// VoxelBounds returns the float bounds of the voxels covering c.
func VoxelBounds(c region.Cuboid) (min, max [3]float64) {
	for _, a := range region.Axes {
		min[a] = float64(c[a].Lo) - 0.5
		max[a] = float64(c[a].Hi) + 0.5
	}
	return min, max
}
