package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Year is one academic year with its semesters.
type Year struct {
	YearID    int64      `json:"year_id"`
	Name      string     `json:"name"`
	IsCurrent bool       `json:"is_current"`
	Semesters []Semester `json:"semesters"`
}

// Semester is one term within a year. Schedules, notes and imports are all
// scoped to a semester.
type Semester struct {
	SemID     int64  `json:"sem_id"`
	YearID    int64  `json:"year_id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
}

const listYears = `
SELECT y.year_id, y.name, y.is_current,
	s.sem_id, s.name, s.is_current
FROM years y
LEFT JOIN semesters s ON s.year_id = y.year_id
WHERE y.user_id = $1
ORDER BY y.year_id DESC, s.sem_id ASC`

// ListYears returns the user's years, newest first, each with its
// semesters nested. A single join avoids one query per year.
func (q *Queries) ListYears(ctx context.Context, userID int64) ([]Year, error) {
	rows, err := q.db.Query(ctx, listYears, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []Year{}
	index := map[int64]int{}
	for rows.Next() {
		var (
			y     Year
			semID *int64
			sName *string
			sCur  *bool
		)
		if err := rows.Scan(&y.YearID, &y.Name, &y.IsCurrent, &semID, &sName, &sCur); err != nil {
			return nil, err
		}

		pos, ok := index[y.YearID]
		if !ok {
			y.Semesters = []Semester{}
			years = append(years, y)
			pos = len(years) - 1
			index[y.YearID] = pos
		}
		if semID != nil {
			years[pos].Semesters = append(years[pos].Semesters, Semester{
				SemID:     *semID,
				YearID:    y.YearID,
				Name:      *sName,
				IsCurrent: *sCur,
			})
		}
	}
	return years, rows.Err()
}

const createYear = `
INSERT INTO years (user_id, name) VALUES ($1, $2) RETURNING year_id`

// CreateYear adds an academic year for the user.
func (q *Queries) CreateYear(ctx context.Context, userID int64, name string) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createYear, userID, name).Scan(&id)
	return id, err
}

const renameYear = `
UPDATE years SET name = $3 WHERE year_id = $1 AND user_id = $2`

// RenameYear changes a year's display name.
func (q *Queries) RenameYear(ctx context.Context, yearID, userID int64, name string) error {
	tag, err := q.db.Exec(ctx, renameYear, yearID, userID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteYear = `
DELETE FROM years WHERE year_id = $1 AND user_id = $2`

// DeleteYear removes a year; its semesters and their schedules cascade.
func (q *Queries) DeleteYear(ctx context.Context, yearID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteYear, yearID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const createSemester = `
INSERT INTO semesters (year_id, name)
SELECT year_id, $2 FROM years WHERE year_id = $1 AND user_id = $3
RETURNING sem_id`

// CreateSemester adds a semester under one of the user's years. The
// insert-select guards against attaching a semester to another user's
// year.
func (q *Queries) CreateSemester(ctx context.Context, yearID int64, name string, userID int64) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createSemester, yearID, name, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

const renameSemester = `
UPDATE semesters s SET name = $3
FROM years y
WHERE s.year_id = y.year_id AND s.sem_id = $1 AND y.user_id = $2`

// RenameSemester changes a semester's display name.
func (q *Queries) RenameSemester(ctx context.Context, semID, userID int64, name string) error {
	tag, err := q.db.Exec(ctx, renameSemester, semID, userID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteSemester = `
DELETE FROM semesters s
USING years y
WHERE s.year_id = y.year_id AND s.sem_id = $1 AND y.user_id = $2`

// DeleteSemester removes a semester; its schedules and notes cascade.
func (q *Queries) DeleteSemester(ctx context.Context, semID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteSemester, semID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const semesterBelongsToUser = `
SELECT EXISTS (
	SELECT 1 FROM semesters s
	JOIN years y ON s.year_id = y.year_id
	WHERE s.sem_id = $1 AND y.user_id = $2
)`

// SemesterBelongsToUser reports whether the semester exists under one of
// the user's years.
func (q *Queries) SemesterBelongsToUser(ctx context.Context, semID, userID int64) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, semesterBelongsToUser, semID, userID).Scan(&ok)
	return ok, err
}

const clearCurrentSemesters = `
UPDATE semesters s SET is_current = FALSE
FROM years y
WHERE s.year_id = y.year_id AND y.user_id = $1`

// ClearCurrentSemesters resets the is_current flag on all of the user's
// semesters. Run inside the same transaction as MarkSemesterCurrent.
func (q *Queries) ClearCurrentSemesters(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, clearCurrentSemesters, userID)
	return err
}

const markSemesterCurrent = `
UPDATE semesters SET is_current = TRUE WHERE sem_id = $1`

// MarkSemesterCurrent flags one semester as current. Ownership must be
// checked beforehand.
func (q *Queries) MarkSemesterCurrent(ctx context.Context, semID int64) error {
	tag, err := q.db.Exec(ctx, markSemesterCurrent, semID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
