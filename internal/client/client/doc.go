// Package client talks to the listing server over HTTP.
//
// # Overview
//
// RESTClient implements catalog.Collection against the server's collection
// API (/rest/v1/properties) so a catalog.Store and catalog.Gateway can run
// in the CLI exactly as they do on the server. Every request carries the
// API key; writes also carry the admin session token obtained by Login.
//
// # Error Handling
//
// Response statuses are mapped back to the shared sentinel errors
// (common.ErrorValidation, common.ErrorUnauthorized, common.ErrorNotFound,
// ...) so callers can match them with errors.Is. Transport failures are
// reported as ErrUnavailable.
//
// The client is safe for concurrent use.
package client
