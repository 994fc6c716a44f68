// Package sketch owns incremental 2D construction.
//
// Ownership boundary:
// - the Closed/Open session state machine gating every command
// - sketch targets (named planes via the resolution chain, picked faces
//   behind a planarity check)
// - entity creation in millimeter sketch space, including the rectangle
//   self-check that rebuilds silently dropped rectangles as four lines
// - relation application over re-selected entity references
// - extrude with implicit sketch close and helper-plane derivation
//
// All coordinates entering the kernel convert from millimeters at the call
// site; entity references keep millimeter pick points so they stay
// meaningful to callers.
package sketch
