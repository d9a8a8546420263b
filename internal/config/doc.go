// Package config defines the tool's configuration: which channel to
// monitor, how far back to look, where manifests are cached, and where
// the HTML pages and the availability file tree are written.
//
// Configuration is a single YAML file loaded up front and validated
// once, before any downloading or rendering begins. Everything
// downstream receives the validated struct by value or reference; there
// is no global configuration state.
package config
