// Package service contains the Marketplace, the single entry point for every
// operation on the services marketplace.
//
// The Marketplace owns all collections in memory and the current session.
// Each mutating operation validates its input on copies, applies the change,
// rewrites the affected collection through a store.Backend, and then emits
// one change event through an events.EventEmitter. Reads never touch
// storage and always return copies.
//
// Key components:
//
// 1. Session:
//   - Register, Login, Logout, account verification and password changes
//   - The session is the id of the logged-in user, or none
//
// 2. Collections:
//   - Services are delegated to catalog.Catalog
//   - Requests, reviews, subscriptions, favorites, profiles, users and
//     messages are held as slices and replaced copy-on-write
//
// 3. Error Handling:
//   - Sentinel errors from errors.go, wrapped with detail via fmt.Errorf
//   - Persistence failures restore the previous in-memory state
package service
