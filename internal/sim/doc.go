// Package sim owns an in-memory kernel stand-in.
//
// Ownership boundary:
// - kernel.Session/Document contracts over axis-aligned solids
// - thickened-ray casting and coordinate picking against derived faces
// - feature list with geometric undo for delete/rollback flows
// - fault injection mirroring observed kernel misbehavior (lying mate
//   status, silently dropped rectangle commands)
//
// Geometry is deliberately simplified: components translate only, sketch
// planes parallel a base datum, and mate placement follows a fixed rule
// (aligned puts the second body on the outward side of the first face,
// anti-aligned on the inward side). The automation layer never depends on
// which rule a kernel applies; it verifies outcomes and rolls back.
package sim
