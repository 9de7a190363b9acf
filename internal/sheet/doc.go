// Package sheet provides the spreadsheet half of the dual store.
//
// The workbook is manipulated in memory: AppendQuestion stages rows and
// nothing touches disk until Save. Open validates the header row against
// the shared column contract so a workbook created under a different tag
// bound is rejected instead of silently misaligning rows.
package sheet
