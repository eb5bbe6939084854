// Package core implements the timetable import pipeline: header
// normalization, per-row validation and transformation, and the
// preview/commit orchestration over a schedule store.
//
// The pipeline ingests loosely-formatted delimited text files describing
// weekly class sessions. Headers may be spelled in Vietnamese with or
// without diacritics and in any case; they are normalized to canonical
// field names before rows are decoded. Each data row is validated
// independently: a bad row is reported and skipped, never aborting the
// batch. Committing persists valid rows one by one in file order with
// best-effort semantics, so a batch can partially succeed and the caller
// is told exactly which rows failed and why.
//
// This package performs no I/O besides reading the input and calling the
// injected ScheduleCreator. It has no HTTP dependencies.
package core
