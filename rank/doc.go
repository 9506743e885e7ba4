// Package rank computes per-particle scalar sort keys and descending-order
// permutations for events.
//
// Five scalar modes are supported (pt, eta, phi, deltaR, kt) plus the
// SortByCluster mode, which is handled by the clustering path rather than by
// a Ranker. Scalar sorts are stable: particles with equal keys keep their
// original relative order, so the produced permutation is deterministic.
package rank
