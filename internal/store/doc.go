// Package store provides the SQLite-backed relational half of the
// question bank.
//
// One table, questions, keyed by the derived record ID. Creation and
// update timestamps are owned here (DEFAULT CURRENT_TIMESTAMP); callers
// never supply them. Non-unique indexes on question and type back the
// dedup scan and the per-type statistics.
//
// Inserts use INSERT ... ON CONFLICT(id) DO NOTHING, so an identity that
// is already present reports inserted=false instead of failing - the
// write path decides whether that was a re-ingested duplicate or a hash
// prefix collision.
//
// The tag columns tag_1..tag_N are generated from the configured tag
// bound, which is why the schema is built in code rather than embedded
// as a .sql file. Opening a store that was created with a different
// bound fails rather than corrupting row widths.
//
// Database configuration:
//   - WAL mode with NORMAL synchronous
//   - busy_timeout=5000 for lock contention
//   - single connection (SQLite supports one writer at a time)
package store
