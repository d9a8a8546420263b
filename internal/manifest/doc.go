// Package manifest parses Rust release channel manifests.
//
// A channel manifest is a TOML document published daily under
// https://static.rust-lang.org/dist/<date>/channel-rust-<channel>.toml.
// It describes, for every distributable package, on which target triples
// the package is available that day. This package extracts only the
// availability view; version strings, hashes, and download URLs are
// ignored because the rest of the tool never consumes them.
package manifest
