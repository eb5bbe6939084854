package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Campus is a physical site a class can meet at. During import, campus
// identity stays denormalized text on the schedule row; this table only
// backs the campus picker in the client.
type Campus struct {
	CamID   int64       `json:"cam_id"`
	Name    string      `json:"name"`
	Address pgtype.Text `json:"address"`
}

const listCampuses = `
SELECT cam_id, name, address FROM campuses WHERE user_id = $1 ORDER BY name`

// ListCampuses returns the user's campuses ordered by name.
func (q *Queries) ListCampuses(ctx context.Context, userID int64) ([]Campus, error) {
	rows, err := q.db.Query(ctx, listCampuses, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campuses := []Campus{}
	for rows.Next() {
		var c Campus
		if err := rows.Scan(&c.CamID, &c.Name, &c.Address); err != nil {
			return nil, err
		}
		campuses = append(campuses, c)
	}
	return campuses, rows.Err()
}

const getCampusByName = `
SELECT cam_id, name, address FROM campuses
WHERE user_id = $1 AND name = $2
LIMIT 1`

const insertCampus = `
INSERT INTO campuses (user_id, name, address) VALUES ($1, $2, $3)
RETURNING cam_id`

// GetOrCreateCampus returns the user's campus with the given name,
// creating it if absent. Creating an already-existing name returns the
// existing row rather than erroring.
func (q *Queries) GetOrCreateCampus(ctx context.Context, userID int64, name string, address pgtype.Text) (Campus, bool, error) {
	var c Campus
	err := q.db.QueryRow(ctx, getCampusByName, userID, name).Scan(&c.CamID, &c.Name, &c.Address)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Campus{}, false, err
	}

	c = Campus{Name: name, Address: address}
	if err := q.db.QueryRow(ctx, insertCampus, userID, name, address).Scan(&c.CamID); err != nil {
		return Campus{}, false, err
	}
	return c, true, nil
}

const deleteCampus = `
DELETE FROM campuses WHERE cam_id = $1 AND user_id = $2`

// DeleteCampus removes one campus owned by the user.
func (q *Queries) DeleteCampus(ctx context.Context, camID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteCampus, camID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
