// Package tiers builds the tier-grouping view handed to page templates.
//
// Tiers are declared in the configuration file as an ordered list of
// named target groups. The exporters treat the resulting table as
// opaque render data; only the page template interprets it.
package tiers
