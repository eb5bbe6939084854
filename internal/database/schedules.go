package database

import (
	"context"

	"github.com/phamqv/studyhub/internal/core"
)

const createSchedule = `
INSERT INTO schedules (
	user_id, sem_id, subject_name, campus_name, campus_address,
	day_of_week, start_time, end_time, room, session_type
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING schedule_id`

// CreateSchedule inserts one schedule entry and returns its id. Range and
// type constraints (day_of_week 2-8, session_type lt/th, NOT NULL times)
// are enforced here by the database, not by the import pipeline; a
// constraint violation surfaces verbatim to the caller. Satisfies
// core.ScheduleCreator.
func (q *Queries) CreateSchedule(ctx context.Context, arg core.ScheduleParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createSchedule,
		arg.UserID,
		arg.SemID,
		arg.SubjectName,
		arg.CampusName,
		arg.CampusAddress,
		arg.DayOfWeek,
		arg.StartTime,
		arg.EndTime,
		arg.Room,
		arg.SessionType,
	).Scan(&id)
	return id, err
}

const listSchedules = `
SELECT schedule_id, user_id, sem_id, subject_name, campus_name, campus_address,
	day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	room, session_type
FROM schedules
WHERE sem_id = $1 AND user_id = $2
ORDER BY day_of_week, start_time, schedule_id`

// ListSchedules returns the user's entries for one semester, ordered by
// day and start time. Times are stored with second precision but reported
// as HH:MM, which is what the client renders.
func (q *Queries) ListSchedules(ctx context.Context, semID, userID int64) ([]core.ScheduleEntry, error) {
	rows, err := q.db.Query(ctx, listSchedules, semID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []core.ScheduleEntry{}
	for rows.Next() {
		var e core.ScheduleEntry
		if err := rows.Scan(
			&e.ScheduleID, &e.UserID, &e.SemID, &e.SubjectName,
			&e.CampusName, &e.CampusAddress, &e.DayOfWeek,
			&e.StartTime, &e.EndTime, &e.Room, &e.SessionType,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateScheduleParams identifies the entry to update plus its new values.
type UpdateScheduleParams struct {
	ScheduleID int64
	core.ScheduleParams
}

const updateSchedule = `
UPDATE schedules
SET sem_id = $3, subject_name = $4, campus_name = $5, campus_address = $6,
	day_of_week = $7, start_time = $8, end_time = $9, room = $10,
	session_type = $11
WHERE schedule_id = $1 AND user_id = $2`

// UpdateSchedule rewrites one entry owned by the user.
func (q *Queries) UpdateSchedule(ctx context.Context, arg UpdateScheduleParams) error {
	tag, err := q.db.Exec(ctx, updateSchedule,
		arg.ScheduleID,
		arg.UserID,
		arg.SemID,
		arg.SubjectName,
		arg.CampusName,
		arg.CampusAddress,
		arg.DayOfWeek,
		arg.StartTime,
		arg.EndTime,
		arg.Room,
		arg.SessionType,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteSchedule = `
DELETE FROM schedules WHERE schedule_id = $1 AND user_id = $2`

// DeleteSchedule removes one entry owned by the user.
func (q *Queries) DeleteSchedule(ctx context.Context, scheduleID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteSchedule, scheduleID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
