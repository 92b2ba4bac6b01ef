// Package client talks to the notely HTTP API.
//
// Client is the transport contract used by the terminal client; HTTPClient
// implements it over JSON/HTTP with a bearer token. Error statuses come back
// as *APIError values that match the sentinel errors of package common under
// errors.Is (401 ErrUnauthorized, 403 ErrForbidden, 404 ErrNotFound,
// 409 ErrConflict, 422 ErrValidation). A server that cannot be reached yields
// ErrUnavailable.
package client
