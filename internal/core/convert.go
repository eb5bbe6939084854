package core

// convert.go converts raw cell strings to PostgreSQL parameter types.
// Invalid or empty input yields pgtype values with Valid=false, which the
// driver sends as NULL; NOT NULL and range constraints then reject the row
// at the store instead of in the transform.

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ToPgText converts a string to pgtype.Text.
// Empty-after-trim becomes NULL rather than an empty string.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgInt2 parses a base-10 integer into pgtype.Int2. No range check is
// applied; unparseable input becomes NULL and propagates to the store.
func ToPgInt2(s string) pgtype.Int2 {
	s = strings.TrimSpace(s)
	i, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return pgtype.Int2{Valid: false}
	}
	return pgtype.Int2{Int16: int16(i), Valid: true}
}
