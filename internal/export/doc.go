// Package export writes the static availability file tree.
//
// The tree is laid out for dumb static serving: a top-level
// packages.json manifest, one directory per target, and per package
// inside it a plain-text "latest available" marker plus a JSON map of
// date to availability. Consumers fetch individual files; nothing here
// requires a dynamic backend.
//
// Design decision: when a computed availability row does not line up
// with the requested date list, the JSON artifact is skipped rather
// than padded or failed. A gap in the tree is preferable to serving
// corrupt data, and the marker file is written independently so the
// cheap signal survives.
package export
