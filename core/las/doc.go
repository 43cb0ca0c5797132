// Package las decodes binary overlap streams (.las): a header carrying
// the record count and trace-point spacing, followed by fixed-prefix
// records with variable-length trace vectors. It never imports the
// application layer; keep it format-only.
package las
