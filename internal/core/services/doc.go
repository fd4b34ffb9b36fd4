// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Stores persist through driven.Storage with a read-modify-write on every
// mutation. When storage fails the change is kept in memory, a warning is
// logged and the returned error wraps domain.ErrStorageUnavailable.
//
// Services depend only on domain, the ports and the logger.
package services
