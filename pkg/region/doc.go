// Package region maintains sets of disjoint axis-aligned integer cuboids.
// A Set represents exactly the lattice points switched on by a stream of
// on/off commands, and reports their count without enumerating points.
package region
