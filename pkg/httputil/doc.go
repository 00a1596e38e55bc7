// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error responses,
// parameter parsing, and common HTTP middleware patterns. Error responses carry a
// single "detail" field, which is the wire contract every handler in pkg/api
// follows.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, data)
//	httputil.WriteCreated(w, resource)
//	httputil.WriteMessage(w, "Successfully logged out")
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteUnauthorized(w, "Could not validate credentials")
//	httputil.WriteForbidden(w, "Insufficient permissions")
//	httputil.WriteServiceUnavailable(w, "Storage service not available")
//
// # Request Parsing
//
// JSON parsing:
//
//	var req SignupRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Form parsing (the login endpoint accepts form-encoded credentials):
//
//	username, password, ok := httputil.ParseCredentialsForm(w, r)
//
// Path and query parameters:
//
//	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
//	page, err := httputil.ParseQueryInt(r, "page", 1)
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.CORSMiddleware(origins),
//		httputil.MaxBytesMiddleware(1<<20),
//	)
//
// # Related Packages
//
//   - pkg/middleware: Authentication and authorization middleware
//   - pkg/observability: Structured logging used by the middleware here
package httputil
