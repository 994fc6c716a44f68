// Package kernel owns the CAD-kernel collaborator boundary.
//
// Ownership boundary:
// - document/selection/feature/sketch interface contracts
// - entity-kind, surface, mate, and relation vocabularies
// - selection mark conventions
//
// Every coordinate crossing this boundary is expressed in the kernel's base
// length unit; callers convert from millimeters at each call site with the
// fixed geom.BaseUnitsPerMM factor.
package kernel
