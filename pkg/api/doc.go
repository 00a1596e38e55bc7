// Package api provides the HTTP surface of the platform.
//
// # Overview
//
// The Server wires the auth service, the user store, and the object store
// into a gorilla/mux router. Handlers translate between the wire contract
// and the domain packages; they hold no business logic of their own.
//
// # Routes
//
// Public:
//
//	GET  /                        API index
//	GET  /health                  Readiness over all dependencies
//	GET  /health/live             Liveness probe
//	GET  /metrics                 Prometheus metrics
//	POST /api/auth/signup         Register a new account
//	POST /api/auth/login          Form-encoded credentials, sets token cookies
//	POST /api/auth/refresh-token  Rotates tokens from the refresh cookie
//	POST /api/auth/logout         Clears token cookies
//
// Protected (valid access token required):
//
//	GET  /api/auth/me             Current account
//	GET  /profile                 Profile details
//	GET  /materials               Course materials with download URLs
//
// Admin only:
//
//	GET   /api/users              List accounts with pagination
//	PATCH /api/users/{id}/active  Activate or deactivate an account
//
// # Wire Contract
//
// Success bodies are operation-specific JSON. Every error body is
// {"detail": "<message>"}. Tokens travel both in the JSON login response
// (for API clients) and in HttpOnly cookies (for browsers).
//
// # Related Packages
//
//   - pkg/auth: Signup, login, refresh, and the authorization gate
//   - pkg/storage: Listing and URL signing for course materials
//   - pkg/middleware: Route protection
package api
