// Package storage provides the object storage client used for optional
// image mirroring.
//
// When mirroring is enabled, images referenced by imported remote entities
// are copied into a local bucket so the world store never depends on
// remote-hosted URLs. Object names are derived from the source URL, making
// repeated mirroring idempotent.
//
// The Client interface wraps the Minio SDK; mocks for testing live in the
// mocks subpackage.
package storage
