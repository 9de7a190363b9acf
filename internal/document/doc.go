// Package document loads question documents from YAML files.
//
// Loading happens in two phases. The raw bytes are first unified with an
// embedded CUE schema (schema.cue) that pins down the batch-level
// contract: a `type` string, an optional scalar `year`, and a non-empty
// `questions` list. Violations surface as ErrSchema and abort the whole
// document. The schema deliberately leaves individual question entries
// open - per-record faults must reach the ingest validator so they can
// be counted and skipped record by record instead of failing the file.
//
// The second phase decodes entries into Entry values. Decoding is
// lenient: options accept both the bare-string and the {text, image_url}
// forms, scalars of any YAML tag are taken literally (year: 2024 works),
// and malformed shapes decode to empty fields rather than errors. Key
// presence is preserved (Entry.Options holds only keys that appeared)
// because the validator reports which required keys are missing.
package document
