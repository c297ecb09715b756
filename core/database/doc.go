// Package database manages the connection to the world store database.
//
// It supports two drivers selected by configuration:
//   - sqlite: a local file database, the default for single-user sessions
//   - mysql: a network database for shared deployments
//
// Connections are pooled and verified with a ping on startup. GORM's own
// logging is silenced so that all output flows through the application
// logger.
package database
