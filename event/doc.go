// Package event defines the fixed-shape particle arrays the ordering engine
// operates on.
//
// A Dataset is a batch of events backed by one flat float32 buffer of shape
// (numEvents, numParticles, featureDim). The first three feature slots of
// every particle row are (pt, eta, phi); any further slots are opaque payload
// that reordering carries through unchanged. Particles with pt == 0 are
// padding: they occupy a slot but carry no physical meaning.
//
// Event values are lightweight views into the dataset buffer; they are cheap
// to copy and share the underlying storage.
package event
