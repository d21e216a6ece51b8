// Package services defines the error taxonomy shared by the sync engine and
// the external collaborator clients.
//
// Structured error markers plus the Wrap helper: ErrRateLimited is the one
// structured abort-and-resume signal in the system; everything else is
// either fatal configuration or a per-item transient failure.
package services
