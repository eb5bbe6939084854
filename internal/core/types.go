package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Session types for a class meeting. Anything that is not exactly "th"
// after lowercasing is treated as a lecture; unrecognized values coerce
// silently instead of erroring.
const (
	SessionTypeLecture = "lt"
	SessionTypeLab     = "th"
)

// Canonical field names produced by header normalization. These are also
// the keys of a decoded Record.
const (
	FieldSubjectName   = "subject_name"
	FieldCampusName    = "campus_name"
	FieldCampusAddress = "campus_address"
	FieldDayOfWeek     = "day_of_week"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldRoom          = "room"
	FieldSessionType   = "type"
)

// Record is one decoded data row: canonical-or-raw header name to cell value.
// Columns whose header could not be normalized keep their raw name, so a
// fallback lookup by the original Vietnamese label still works.
type Record map[string]string

// ScheduleParams is a normalized candidate schedule entry, ready for
// persistence. Optional fields use pgtype so that empty input becomes SQL
// NULL rather than an empty string. DayOfWeek carries no range check here;
// the 2-8 domain (8 = Sunday) is enforced by the store, and unparseable
// input is represented as an invalid Int2 that the store will reject.
type ScheduleParams struct {
	UserID        int64       `json:"user_id"`
	SemID         int64       `json:"sem_id"`
	SubjectName   string      `json:"subject_name"`
	CampusName    pgtype.Text `json:"campus_name"`
	CampusAddress pgtype.Text `json:"campus_address"`
	DayOfWeek     pgtype.Int2 `json:"day_of_week"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	Room          pgtype.Text `json:"room"`
	SessionType   string      `json:"type"`
}

// ScheduleEntry is one persisted weekly class session.
type ScheduleEntry struct {
	ScheduleID    int64       `json:"schedule_id"`
	UserID        int64       `json:"user_id"`
	SemID         int64       `json:"sem_id"`
	SubjectName   string      `json:"subject_name"`
	CampusName    pgtype.Text `json:"campus_name"`
	CampusAddress pgtype.Text `json:"campus_address"`
	DayOfWeek     int16       `json:"day_of_week"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	Room          pgtype.Text `json:"room"`
	SessionType   string      `json:"type"`
}

// ScheduleCreator is the persistence boundary of the import pipeline.
// Implemented by the database layer; failures are surfaced verbatim in
// per-row import errors.
type ScheduleCreator interface {
	CreateSchedule(ctx context.Context, params ScheduleParams) (int64, error)
}

// ErrorStage identifies which phase of the pipeline produced a RowError.
type ErrorStage string

const (
	StageValidation  ErrorStage = "validation"
	StagePersistence ErrorStage = "persistence"
)

// RowError is one per-row import failure. Validation errors carry the
// 1-based line number (the header line is line 1); persistence errors carry
// the subject name, because row numbers are no longer threaded through at
// that stage.
type RowError struct {
	Stage   ErrorStage
	Row     int
	Subject string
	Message string
}

func (e RowError) Error() string {
	if e.Stage == StagePersistence {
		return fmt.Sprintf("subject %q: %s", e.Subject, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// MarshalJSON preserves the legacy two-shape wire format the mobile client
// depends on: {"row": n, "error": msg} for validation failures and
// {"subject": s, "error": msg} for persistence failures.
func (e RowError) MarshalJSON() ([]byte, error) {
	if e.Stage == StagePersistence {
		return json.Marshal(struct {
			Subject string `json:"subject"`
			Error   string `json:"error"`
		}{e.Subject, e.Message})
	}
	return json.Marshal(struct {
		Row   int    `json:"row"`
		Error string `json:"error"`
	}{e.Row, e.Message})
}

// PreviewResult is the outcome of a dry-run import. No persistence was
// attempted: Imported is always zero and Preview holds at most the
// configured number of normalized rows for display, while PreviewCount is
// the full count of rows that passed validation.
type PreviewResult struct {
	Imported     int              `json:"imported"`
	PreviewCount int              `json:"previewCount"`
	Preview      []ScheduleParams `json:"preview"`
	Errors       []RowError       `json:"errors"`
}

// CommitResult is the outcome of a best-effort import. Errors holds both
// validation and persistence failures; Imported counts rows actually
// inserted.
type CommitResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}
