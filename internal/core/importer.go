package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/phamqv/studyhub/internal/logging"
)

// DefaultPreviewRows bounds the normalized-row sample returned in preview
// mode.
const DefaultPreviewRows = 10

// Importer drives the two-phase import protocol over a schedule store.
// Both phases share the same scan: parse the file, normalize headers and
// validate every row. Preview stops there; Commit additionally persists
// each valid row in file order, best-effort.
//
// The pipeline is not idempotent: committing the same file twice creates
// duplicate entries, since no identity check is made against existing
// rows. No conflict detection (same room/day/time) is performed either.
type Importer struct {
	store       ScheduleCreator
	headers     *HeaderNormalizer
	previewRows int
}

// ImporterOption customizes an Importer.
type ImporterOption func(*Importer)

// WithPreviewRows overrides the preview sample size.
func WithPreviewRows(n int) ImporterOption {
	return func(imp *Importer) {
		if n > 0 {
			imp.previewRows = n
		}
	}
}

// WithHeaderMap overrides the recognized header spellings.
func WithHeaderMap(m HeaderMap) ImporterOption {
	return func(imp *Importer) {
		imp.headers = NewHeaderNormalizer(m)
	}
}

// NewImporter creates an importer persisting through store.
func NewImporter(store ScheduleCreator, opts ...ImporterOption) *Importer {
	imp := &Importer{
		store:       store,
		headers:     NewHeaderNormalizer(nil),
		previewRows: DefaultPreviewRows,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// scanResult is the shared outcome of the validation phase.
type scanResult struct {
	normalized []ScheduleParams
	errors     []RowError
}

// scan reads, parses and validates the whole file. A file that cannot be
// read or parsed is a hard error; a file with no data rows yields a single
// batch-level RowError with Row 0 and no normalized rows.
func (imp *Importer) scan(r io.Reader, userID, semID int64) (*scanResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	data = sanitizeUTF8(data)

	records, err := parseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	res := &scanResult{errors: []RowError{}}

	if len(records) < 2 {
		res.errors = append(res.errors, RowError{
			Stage:   StageValidation,
			Row:     0,
			Message: "empty CSV file",
		})
		return res, nil
	}

	fields := imp.headers.MapHeaders(records[0])

	for i, row := range records[1:] {
		line := i + 2 // 1-based, the header line is line 1

		rec := make(Record, len(fields))
		for j, field := range fields {
			if j < len(row) {
				rec[field] = strings.TrimSpace(row[j])
			}
		}

		params, err := TransformRow(rec, userID, semID)
		if err != nil {
			res.errors = append(res.errors, RowError{
				Stage:   StageValidation,
				Row:     line,
				Message: err.Error(),
			})
			continue
		}
		res.normalized = append(res.normalized, params)
	}

	return res, nil
}

// Preview runs the validation phase only. No persistence call is made,
// Imported is always zero, and Preview is capped at the configured sample
// size while PreviewCount reports the full number of valid rows.
func (imp *Importer) Preview(ctx context.Context, r io.Reader, userID, semID int64) (*PreviewResult, error) {
	sc, err := imp.scan(r, userID, semID)
	if err != nil {
		return nil, err
	}

	sample := sc.normalized
	if len(sample) > imp.previewRows {
		sample = sample[:imp.previewRows]
	}
	if sample == nil {
		sample = []ScheduleParams{}
	}

	logging.FromContext(ctx).Debug("import preview",
		"sem_id", semID,
		"valid_rows", len(sc.normalized),
		"error_rows", len(sc.errors),
	)

	return &PreviewResult{
		Imported:     0,
		PreviewCount: len(sc.normalized),
		Preview:      sample,
		Errors:       sc.errors,
	}, nil
}

// Commit runs the validation phase and then persists every normalized row
// in file order. Each insert is its own unit of work: a store rejection is
// recorded against the row's subject name and does not abort the remaining
// rows. The batch runs to completion once started.
func (imp *Importer) Commit(ctx context.Context, r io.Reader, userID, semID int64) (*CommitResult, error) {
	logger := logging.WithFields(ctx,
		"batch_id", uuid.NewString(),
		"sem_id", semID,
	)

	sc, err := imp.scan(r, userID, semID)
	if err != nil {
		return nil, err
	}

	result := &CommitResult{Errors: sc.errors}

	for _, params := range sc.normalized {
		id, err := imp.store.CreateSchedule(ctx, params)
		if err != nil {
			logger.Warn("schedule insert failed",
				"subject", params.SubjectName,
				"error", err,
			)
			result.Errors = append(result.Errors, RowError{
				Stage:   StagePersistence,
				Subject: params.SubjectName,
				Message: err.Error(),
			})
			continue
		}
		logger.Debug("schedule inserted",
			"subject", params.SubjectName,
			"schedule_id", id,
		)
		result.Imported++
	}

	logger.Info("import committed",
		"imported", result.Imported,
		"total_valid", len(sc.normalized),
		"failed", len(result.Errors),
	)

	return result, nil
}
