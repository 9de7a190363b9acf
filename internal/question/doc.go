// Package question provides the core domain types for the question bank.
//
// This package contains type definitions, identity derivation, and text
// normalization only. All other internal packages import question;
// question imports nothing internal. This keeps it the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - Record IDs are content-derived (sha256 prefix), never user-supplied
//   - The column schema (Columns/RowValues) is the single source of truth
//     for BOTH persistence backends, so the spreadsheet and the relational
//     store cannot drift column-wise
//   - Normalize defines the one canonical dedup key used everywhere
package question
