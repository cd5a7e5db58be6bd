// Package sec provides the authentication and password primitives for the
// HTTP API.
//
// # Authentication
//
// Authentication uses HTTP Basic Auth: the credential pair is the user's
// email address and password, validated on every protected request against
// the bcrypt hash stored for that user. No session or token is issued.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in
// transit.
//
// # Components
//
//   - [Authenticate]: Validates Basic Auth credentials against the user store
//   - [Middleware]: Echo middleware that authenticates protected routes
//   - [CurrentUser], [WithUser]: Context accessors for the authenticated user
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec
