// Package main provides the entry point for the rustavail CLI.
//
// rustavail monitors per-release availability of Rust toolchain
// components. It downloads daily channel manifests, renders one HTML
// page per target, and writes a static file tree of per-target,
// per-package availability artifacts.
//
// Usage:
//
//	rustavail render -c config.yaml
//	rustavail init
//
// See --help for all available options.
package main

// main is the entry point for rustavail.
func main() {
	Execute()
}
