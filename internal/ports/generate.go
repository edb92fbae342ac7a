// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters. Test doubles are hand-written
// testify mocks in internal/mocks; they are not generated, so a changed
// interface must be mirrored there by hand.
package ports
