// Package service contains the application use cases for users and payment
// cards. It coordinates the store (defined in internal/store) and the cache
// (internal/cache) so that cached entries never outlive the rows they mirror.
//
// Cache ordering rules:
//
//   - create, update and status changes write the store first and then put the
//     fresh single-entity entry
//   - deletes evict every affected entry before the row is removed
//   - per-user card lists are only ever evicted, never written by a mutation
//   - filtered listings are never cached
//
// Services return sentinel errors from internal/store and this package wrapped
// in a *ServiceError, which carries a client-safe message for the API layer.
package service
