// Package availability holds the in-memory query model built from a
// series of channel manifests.
//
// The model answers three questions for the exporters: which targets
// exist, which packages exist, and what the per-date availability row
// for a (target, package) pair looks like against a given date list.
// It is write-once: manifests are ingested up front and the exporters
// only read from it afterwards.
package availability
