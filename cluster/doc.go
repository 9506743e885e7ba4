// Package cluster implements anti-kt sequential recombination jet clustering
// and the assembly of jet constituents into a particle-slot permutation.
//
// Clustering runs per event over a pool of cluster candidates addressed by
// stable integer handles. It repeatedly selects the global minimum over all
// pairwise distances
//
//	d(i,j) = min(kt_i⁻², kt_j⁻²) · ΔR(i,j)² / R²
//
// and beam distances d_iB = kt_i⁻². A pairwise minimum merges the two
// candidates; a beam minimum finalizes one as a Jet. Every particle slot ends
// up in exactly one jet.
//
// Padding slots (pt == 0) have an infinite kt⁻², so they never win a pairwise
// minimum against a physical particle and are finalized only after all
// physical candidates are resolved, lowest handle first.
//
// Distance recomputation is exhaustive, O(n³) per event. Particle counts are
// small fixed values (tens), so the constant-factor simplicity wins over a
// lazily invalidated heap; all scratch storage is pooled and reused across
// events.
package cluster
