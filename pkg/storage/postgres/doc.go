// Package postgres provides relational persistence for user accounts.
//
// # Overview
//
// UserStore implements the auth.UserStore contract over database/sql. The
// postgres driver is the production backend; sqlite3 serves local development
// and CI where standing up PostgreSQL is not worth it. Both share the same
// query shapes, so the store binds parameters with $N placeholders and relies
// on the sqlite3 driver accepting them.
//
// # Contract
//
// Lookups return (nil, nil) when no row matches; callers decide whether a
// missing user is an error. CreateUser maps unique-constraint violations to
// auth.ErrEmailTaken so handlers can answer 400 without inspecting driver
// error codes.
//
// # Schema
//
// EnsureSchema creates the users table when it does not exist. There is no
// migration framework; the schema is a single table and additive changes
// ship as ALTER statements inside EnsureSchema.
//
// # Related Packages
//
//   - pkg/auth: Consumes UserStore through the auth.UserStore interface
package postgres
