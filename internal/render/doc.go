// Package render produces the per-target HTML pages.
//
// Pages are rendered through a user-supplied html/template file with
// strict missing-key semantics, so a template referencing data the
// payload does not carry fails loudly instead of rendering blanks.
// The output path for each page is itself a template with a .target
// placeholder, evaluated through the same engine as page content.
package render
