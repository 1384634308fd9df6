// Package types defines the Store interface, entity types, partial-update
// types, and standard errors for the Binder storage engine.
package types
