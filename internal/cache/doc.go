// Package cache stores downloaded channel manifests between runs.
//
// Manifests are immutable once published, so the cache never needs
// invalidation: a hit is always served, a miss falls through to the
// network. Two backends are provided, a plain file-per-manifest store
// and a single-file SQLite store, plus a no-op backend for disabling
// caching entirely.
package cache
