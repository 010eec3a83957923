// Package aggregates defines domain-facing aggregate contracts and the error taxonomy
// shared by the write path, the read services and the HTTP edge.
//
// Contracts avoid persistence details and mark the boundaries where invariants must be
// enforced atomically.
package aggregates
