package core

// row.go transforms one decoded record into a normalized schedule payload.
// The transform is pure and idempotent: the same raw row always yields the
// same payload or the same error, and a failing row never stops the batch.

import (
	"errors"
	"strings"
)

// errMissingRequired is the per-row rejection for absent required fields.
var errMissingRequired = errors.New(
	"missing required field (subject_name, day_of_week, start_time, end_time)")

// lookup resolves a field by canonical name first, falling back to the raw
// Vietnamese label. Header normalization is best-effort, so a column whose
// header slipped through unmapped is still reachable under its raw name.
func (r Record) lookup(canonical, rawLabel string) string {
	if v := r[canonical]; v != "" {
		return v
	}
	return r[rawLabel]
}

// TransformRow validates and normalizes one record for the given batch
// scope. Required fields are checked for presence only: day_of_week is
// parsed but not range-checked, and times pass through trimmed and
// unvalidated. Unrecognized session types coerce silently to lecture.
func TransformRow(rec Record, userID, semID int64) (ScheduleParams, error) {
	subject := rec.lookup(FieldSubjectName, "tên môn học")
	day := rec.lookup(FieldDayOfWeek, "thứ")
	start := rec.lookup(FieldStartTime, "giờ bắt đầu")
	end := rec.lookup(FieldEndTime, "giờ kết thúc")

	if subject == "" || day == "" || start == "" || end == "" {
		return ScheduleParams{}, errMissingRequired
	}

	return ScheduleParams{
		UserID:        userID,
		SemID:         semID,
		SubjectName:   strings.TrimSpace(subject),
		CampusName:    ToPgText(rec.lookup(FieldCampusName, "tên cơ sở")),
		CampusAddress: ToPgText(rec.lookup(FieldCampusAddress, "địa chỉ cơ sở")),
		DayOfWeek:     ToPgInt2(day),
		StartTime:     strings.TrimSpace(start),
		EndTime:       strings.TrimSpace(end),
		Room:          ToPgText(rec.lookup(FieldRoom, "phòng học")),
		SessionType:   normalizeSessionType(rec.lookup(FieldSessionType, "loại")),
	}, nil
}

// normalizeSessionType lowercases and coerces: exactly "th" is a lab,
// everything else (including absent and typos) is a lecture.
func normalizeSessionType(s string) string {
	if strings.ToLower(strings.TrimSpace(s)) == SessionTypeLab {
		return SessionTypeLab
	}
	return SessionTypeLecture
}
