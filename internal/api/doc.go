// Package api provides an HTTP client for the storefront backend.
//
// # Overview
//
// The client covers the handful of routes the storefront store depends on:
//
//   - GET  /api/products: catalog load (bare array or {"products": [...]})
//   - POST /api/products/create: admin product creation, bearer token required
//   - POST /api/auth/login: credentials for an opaque token
//   - POST /api/auth/signup: registration, returns a token
//   - POST /api/transactions: checkout, bearer token required
//
// # Error Handling
//
// Transport failures are wrapped with fmt.Errorf. Non-2xx responses become a
// *StatusError; when the body is {"message": "..."} the message is kept so the
// caller can surface it verbatim (ServerMessage).
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api /api/auth/signup returned status 409: username already taken"
//   - "decode response: unexpected end of JSON input"
//
// # Tokens
//
// The auth routes are lenient about their payload shape. A JSON string, an
// object with a "token" field and a plain-text body are all accepted. Anything
// else decodes to the empty token, which callers treat as a failed exchange.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// There are no retries; timeouts belong to the http.Client.
package api
