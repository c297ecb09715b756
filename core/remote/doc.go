// Package remote implements the HTTP client for the remote campaign service,
// the external system of record the world store is reconciled against.
//
// The service exposes list/create/update/delete operations per entity kind
// (characters, items, locations, factions, sessions) plus a link resource for
// relationships. All payload fields are plain strings or URLs.
//
// # Error Semantics
//
// Description fields have a hard maximum length (MaxDescriptionLength). The
// client enforces the limit before sending and also maps the service's 422
// response to ErrDescriptionTooLong, so the caller always sees the same
// distinct error condition. Other non-2xx responses surface as *APIError.
//
// The client never retries; retry policy belongs to the caller, and the sync
// executor deliberately has none (a re-run of remaining failed jobs is the
// documented recovery path).
package remote
