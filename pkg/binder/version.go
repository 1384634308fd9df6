// Package binder holds module-level metadata.
package binder

// Version is the current binder release.
const Version = "v0.1.0"
