// Package client talks to the video-processor backend over HTTP/JSON.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     files, folders, processing jobs, projects and the auth probes.
//  2. A concrete implementation (see HTTPClient) that attaches a bearer token
//     from an oauth2.TokenSource, tags every request with an X-Request-ID,
//     streams multipart uploads with byte-level progress and normalizes error
//     bodies into *APIError.
//
// # Error Handling
//
// A missing or expired token fails before anything is sent
// (ErrNotAuthenticated, ErrTokenExpired). Non-2xx responses are *APIError and
// match ErrUnauthorized, ErrNotFound or ErrServer with errors.Is. Transport
// failures wrap ErrUnavailable; undecodable 2xx bodies wrap
// ErrMalformedResponse. Context cancellation is returned as ctx.Err().
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
