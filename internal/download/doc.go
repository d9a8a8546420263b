// Package download fetches daily channel manifests from the Rust
// distribution server.
//
// Manifests are published under dist/<date>/channel-rust-<channel>.toml
// and some days are simply missing (no release that day). The
// downloader walks backwards from today, tolerating a bounded number of
// consecutive missing days, consulting the cache before the network and
// fetching a window of days concurrently.
package download
