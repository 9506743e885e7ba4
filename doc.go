// Package jetflow reorders the particle sequences of collider events before
// they are fed to a sequence model.
//
// Jetflow takes a fixed-shape event array (numEvents, numParticles,
// featureDim) whose first three feature slots are (pt, eta, phi) and produces
// an array of identical shape with each event's particle rows permuted:
//
//   - Scalar modes: stable descending sort on a per-particle key
//     (pt, eta, phi, deltaR, kt)
//   - Cluster mode: anti-kt sequential recombination groups particles into
//     jets; jets are ordered by transverse momentum and constituents keep
//     their join order
//
// Processing is chunked to bound peak memory and may run events on parallel
// workers; chunked, unchunked, sequential and parallel runs all produce
// bit-identical output.
//
// # Quick Start
//
//	eng, err := jetflow.Cluster(0.4). // anti-kt with R = 0.4
//	    Particles(64).                // slots per event
//	    ChunkSize(1024).              // events per chunk
//	    Workers(4).                   // parallel workers per chunk
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := eng.Reorder(ctx, ds)
//
// Scalar sorts use the same builder:
//
//	eng, err := jetflow.SortBy(rank.SortByPt).Particles(64).Build()
//
// Configuration problems (unknown mode, non-positive radius or chunk size,
// missing particle count) fail at Build, before any data is touched. Shape
// problems and internal-consistency violations fail the whole run; no partial
// output is returned.
package jetflow
