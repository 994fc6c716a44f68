// Package selector owns semantic face resolution.
//
// Ownership boundary:
// - FaceSelector sum type (named direction, part-local point)
// - thickened-ray probing of named directions
// - point picks through the component transform
// - planarity verification of resolved faces
//
// Resolution never panics on unreachable geometry; it returns explicit
// failures so batch callers can tally and continue.
package selector
