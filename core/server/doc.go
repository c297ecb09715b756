// Package server holds configuration for the HTTP surface of the sync engine.
//
// The engine exposes a small Fiber API (reconciliation preview, plan
// execution, progress) consumed by the configuration wizard. This package
// only defines the listening port and the API key protecting those routes.
package server
