package core

// error_messages.go maps technical errors to user-facing messages with
// stable codes, so clients can show something actionable and support can
// identify a failure from the code alone.
//
// Database errors are matched on the PostgreSQL error code first, then
// everything falls back to substring patterns on the error text.

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserMessage is a user-friendly rendering of an error.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// MapError translates an error into a UserMessage. Unrecognized errors get
// a generic message; the technical detail stays in the server logs.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Code: "OK", Message: "success"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return UserMessage{
				Code:    "DB001",
				Message: "a record with these values already exists",
				Action:  "check for duplicate entries",
			}
		case "23503":
			return UserMessage{
				Code:    "DB002",
				Message: "a referenced record does not exist",
				Action:  "make sure the semester and campus exist first",
			}
		case "23514":
			return UserMessage{
				Code:    "DB003",
				Message: "a value is outside the allowed range",
				Action:  "day of week must be 2-8 and session type lt or th",
			}
		case "23502":
			return UserMessage{
				Code:    "DB004",
				Message: "a required value is missing",
				Action:  "fill in all required fields",
			}
		case "22007", "22008", "22P02":
			return UserMessage{
				Code:    "DB005",
				Message: "a value has an invalid format",
				Action:  "use HH:MM for times and whole numbers for the day of week",
			}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "empty csv file"):
		return UserMessage{
			Code:    "FILE001",
			Message: "the uploaded file has no data rows",
			Action:  "upload a CSV file with a header line and at least one row",
		}
	case strings.Contains(msg, "parse csv"):
		return UserMessage{
			Code:    "FILE002",
			Message: "the file is not a valid CSV",
			Action:  "export the timetable as comma-separated text and retry",
		}
	case strings.Contains(msg, "request body too large"),
		strings.Contains(msg, "file too large"):
		return UserMessage{
			Code:    "FILE003",
			Message: "the file exceeds the size limit",
			Action:  "split the file and import it in parts",
		}
	case strings.Contains(msg, "missing required field"):
		return UserMessage{
			Code:    "VAL001",
			Message: "a required column is missing or empty",
			Action:  "every row needs a subject, day of week, start time and end time",
		}
	case strings.Contains(msg, "record not found"),
		strings.Contains(msg, "no rows in result set"):
		return UserMessage{
			Code:    "REQ001",
			Message: "the requested record was not found",
			Action:  "it may have been deleted; refresh and retry",
		}
	case strings.Contains(msg, "context canceled"):
		return UserMessage{
			Code:    "REQ002",
			Message: "the request was cancelled",
			Action:  "please try again",
		}
	case strings.Contains(msg, "context deadline exceeded"),
		strings.Contains(msg, "timeout"):
		return UserMessage{
			Code:    "REQ003",
			Message: "the request timed out",
			Action:  "try again, or import a smaller file",
		}
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"):
		return UserMessage{
			Code:    "DB006",
			Message: "the database is temporarily unavailable",
			Action:  "please try again in a few moments",
		}
	}

	return UserMessage{
		Code:    "ERR000",
		Message: "something went wrong",
		Action:  "try again, and contact support with code ERR000 if it persists",
	}
}
