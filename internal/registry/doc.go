// Package registry holds the static classification tables used by Codetriage:
// per-category path/content patterns with priorities, and the ordered skip
// rules that exclude files from classification entirely. The tables are data,
// not code paths; adding a category means adding a table entry.
package registry
