// Package server provides HTTP routing, middleware, and the entity JSON API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] is wrapped in reverse order, so the first one added executes first, following the standard Go pattern.
//
// The [BasicRouter] implementation uses chi internally for path parameters and method filtering.
//
// # Entity Resources
//
// [NewAPI] exposes the persisted entities:
//   - GET /api/users, GET /api/users/{id}
//   - GET /api/entries, GET /api/entries/{id}
//   - POST /api/entries
//
// A POST body carrying an id is rejected with 400: ids are only ever assigned by the database.
// Sentinel errors from internal/shared map to 404 (not found) and 400 (validation, bad input).
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
