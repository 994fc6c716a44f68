// Package geom owns coordinate primitives shared by the automation layer.
//
// Ownership boundary:
// - vectors, axis-aligned boxes, affine transforms
// - named face directions and their axis mapping
// - millimeter<->kernel-base-unit conversion
package geom
