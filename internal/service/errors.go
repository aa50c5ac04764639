// Package service provides application-level services for managing
// verbs, nouns, study groups, student links, and users. Services
// validate input, consult the authorization policy, and delegate
// persistence to the stores.
package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Expected failure conditions surface as sentinels so
// callers can check them with errors.Is(); unexpected errors are wrapped
// with %w and context. The API layer maps these to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. API layer maps this to 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates an unknown username or a password
	// mismatch during login. API layer maps this to 401 Unauthorized.
	// Deliberately identical for both cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive indicates a login attempt on a deactivated account.
	// API layer maps this to 403 Forbidden.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrNotAStudent indicates a link operation targeted a user whose
	// role is not student. API layer maps this to 400 Bad Request.
	ErrNotAStudent = errors.New("target user is not a student")

	// ErrNotLinked indicates a student-scoped operation on a student who
	// is not linked to the requesting teacher. API layer maps this to
	// 404 Not Found.
	ErrNotLinked = errors.New("student is not linked to this teacher")
)
