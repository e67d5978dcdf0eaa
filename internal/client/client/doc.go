// Package client is the transport layer of the YuuSell client.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a JSON/REST wrapper around net/http that resolves paths
//     against the configured base URL (APIURL + "/api/v1"), attaches
//     "Authorization: Bearer <access>" from a TokenStore, tags each request
//     with an X-Request-Id, and decodes 2xx bodies into typed values.
//  2. Transparent session renewal: a 401 triggers one refresh through
//     POST /auth/token/refresh/ followed by one retry of the original call.
//     Tokens whose exp claim has already passed are refreshed before sending.
//     Concurrent refreshes collapse into a single round trip.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite session database and applies the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx replies become *APIError carrying the status code and the decoded
// payload, so callers can branch on server-declared shapes such as
// requires_verification or DRF field lists. Transport failures never leak
// raw: they map to ErrUnavailable, ErrTimeout or ErrCanceled. A rejected
// refresh clears the stored tokens and yields ErrSessionExpired.
//
// Nothing is retried apart from the single post-refresh retry.
package client
