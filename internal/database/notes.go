package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Note is a free-form study note attached to a semester.
type Note struct {
	NoteID      int64       `json:"note_id"`
	UserID      int64       `json:"user_id"`
	SemID       int64       `json:"sem_id"`
	SubjectName pgtype.Text `json:"subject_name"`
	Title       string      `json:"title"`
	Content     pgtype.Text `json:"content"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

const listNotes = `
SELECT note_id, user_id, sem_id, subject_name, title, content, updated_at
FROM notes
WHERE sem_id = $1 AND user_id = $2
ORDER BY updated_at DESC`

// ListNotes returns the user's notes for one semester, most recent first.
func (q *Queries) ListNotes(ctx context.Context, semID, userID int64) ([]Note, error) {
	rows, err := q.db.Query(ctx, listNotes, semID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.NoteID, &n.UserID, &n.SemID, &n.SubjectName,
			&n.Title, &n.Content, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CreateNoteParams holds the fields for a new note.
type CreateNoteParams struct {
	UserID      int64
	SemID       int64
	SubjectName pgtype.Text
	Title       string
	Content     pgtype.Text
}

const createNote = `
INSERT INTO notes (user_id, sem_id, subject_name, title, content)
VALUES ($1, $2, $3, $4, $5)
RETURNING note_id`

// CreateNote inserts a note and returns its id.
func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createNote,
		arg.UserID, arg.SemID, arg.SubjectName, arg.Title, arg.Content,
	).Scan(&id)
	return id, err
}

// UpdateNoteParams identifies the note to update plus its new values.
type UpdateNoteParams struct {
	NoteID      int64
	UserID      int64
	SubjectName pgtype.Text
	Title       string
	Content     pgtype.Text
}

const updateNote = `
UPDATE notes
SET subject_name = $3, title = $4, content = $5, updated_at = now()
WHERE note_id = $1 AND user_id = $2`

// UpdateNote rewrites one note owned by the user.
func (q *Queries) UpdateNote(ctx context.Context, arg UpdateNoteParams) error {
	tag, err := q.db.Exec(ctx, updateNote,
		arg.NoteID, arg.UserID, arg.SubjectName, arg.Title, arg.Content,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteNote = `
DELETE FROM notes WHERE note_id = $1 AND user_id = $2`

// DeleteNote removes one note owned by the user.
func (q *Queries) DeleteNote(ctx context.Context, noteID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteNote, noteID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
