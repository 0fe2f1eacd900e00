// Package client contains the HTTP client used by the gophfeed CLI.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a thin wrapper over net/http that speaks the gophfeed JSON
//     API: Register, Login, CreatePost, AddComment and Feed.
//  2. FileTokenStore, which keeps the access token returned by Login in a
//     file readable only by the owner.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the status code, the
// server's message and any per-field validation errors. Transport failures
// wrap ErrUnavailable and 401 responses also match ErrUnauthorized, so
// callers can use errors.Is.
package client
