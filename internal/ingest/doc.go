// Package ingest orchestrates the path from a YAML question document
// into the two stores.
//
// Processing is strictly sequential and staged: a document is loaded,
// every entry is validated and deduplicated against the union of both
// stores, and the surviving records are held in memory. Only after the
// duplicate decision gate passes do any writes happen - relational
// insert first, then the spreadsheet mirror, with the workbook saved
// once at the end. A declined confirmation therefore aborts with zero
// persisted changes.
//
// The stores are opened at the start of each document and closed when
// it finishes. Batch runs repeat the cycle per file; one bad document
// never stops the rest.
//
// Store access goes through the RelationalStore and SheetStore
// interfaces so the write path can be exercised against fakes.
package ingest
