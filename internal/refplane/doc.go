// Package refplane owns reference-plane lookup and derivation.
//
// Ownership boundary:
// - the fixed plane-resolution fallback chain (exact name, helper
//   alias/prefix, first plane in the document)
// - post-extrude helper-plane derivation, branching on cylindrical faces
//
// The chain's try-order is load-bearing: on ambiguous documents it decides
// which plane gets picked, so steps must not be reordered.
package refplane
