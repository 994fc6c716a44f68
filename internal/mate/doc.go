// Package mate owns assembly constraint execution.
//
// Ownership boundary:
// - selection batches committed as one pick transaction
// - coincident mate commands with feature-delta success detection
// - post-mate bounding-box interference checks and rollback
// - batch orchestration with per-pair failure isolation
//
// The kernel's own mate status codes are observed to lie; the only trusted
// success signal is a new terminal feature in the tree. Interference uses
// axis-aligned boxes as a deliberately cheap proxy: it exists to auto-reject
// a wrong alignment choice, not to prove solid contact.
package mate
