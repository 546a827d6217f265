// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources override later ones for non-zero fields):
//  1. Explicit overrides supplied by the caller (e.g. CLI flags)
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the default chain and
// [GetStructuredConfigWithOverrides] when the caller has already collected
// overrides of its own.
package config
