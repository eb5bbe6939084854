package core

// headers.go normalizes the header line of an import file.
//
// Timetable exports arrive with headers in Vietnamese, with or without
// diacritics, in arbitrary case and with stray whitespace. Every header
// cell is reduced to a canonical spelling and looked up in an alias table;
// matches become canonical field names applied positionally to all data
// rows, and unknown headers pass through unchanged.

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HeaderMap maps header spellings to canonical field names. Keys are
// matched after NormalizeLabel, so the table carries both the accented and
// the diacritic-stripped spelling of each label.
type HeaderMap map[string]string

// DefaultHeaderMap returns the recognized header spellings for weekly
// class-session files.
func DefaultHeaderMap() HeaderMap {
	return HeaderMap{
		"tên môn học":     FieldSubjectName,
		"ten mon hoc":     FieldSubjectName,
		"tên cơ sở":       FieldCampusName,
		"ten co so":       FieldCampusName,
		"địa chỉ cơ sở":   FieldCampusAddress,
		"dia chi co so":   FieldCampusAddress,
		"thứ":             FieldDayOfWeek,
		"thu":             FieldDayOfWeek,
		"giờ bắt đầu":     FieldStartTime,
		"gio bat dau":     FieldStartTime,
		"giờ kết thúc":    FieldEndTime,
		"gio ket thuc":    FieldEndTime,
		"phòng học":       FieldRoom,
		"phong hoc":       FieldRoom,
		"loại":            FieldSessionType,
		"loai":            FieldSessionType,
	}
}

// HeaderNormalizer maps raw header cells to canonical field names using an
// immutable alias table fixed at construction.
type HeaderNormalizer struct {
	aliases HeaderMap
}

// NewHeaderNormalizer builds a normalizer over the given alias table. The
// table is copied with its keys normalized, so accented and stripped
// spellings resolve identically and later mutation of the argument has no
// effect. A nil table means DefaultHeaderMap.
func NewHeaderNormalizer(aliases HeaderMap) *HeaderNormalizer {
	if aliases == nil {
		aliases = DefaultHeaderMap()
	}
	m := make(HeaderMap, len(aliases))
	for label, field := range aliases {
		m[NormalizeLabel(label)] = field
	}
	return &HeaderNormalizer{aliases: m}
}

// Canonical maps one raw header cell to its canonical field name. Headers
// that are not recognized are returned unchanged so their column values
// remain retrievable under the raw name.
func (n *HeaderNormalizer) Canonical(header string) string {
	if field, ok := n.aliases[NormalizeLabel(header)]; ok {
		return field
	}
	return header
}

// MapHeaders maps a whole header row positionally.
func (n *HeaderNormalizer) MapHeaders(cells []string) []string {
	fields := make([]string, len(cells))
	for i, cell := range cells {
		fields[i] = n.Canonical(cell)
	}
	return fields
}

// NormalizeLabel reduces a header cell to its canonical spelling:
// lowercase, trimmed, diacritical marks stripped (NFD decomposition with
// combining marks removed; the Vietnamese đ is folded to d explicitly
// since it is a base letter, not a mark), internal whitespace runs
// collapsed to a single space. Idempotent.
func NormalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if stripped, err := stripMarks(s); err == nil {
		s = stripped
	}
	s = strings.ReplaceAll(s, "đ", "d")
	return strings.Join(strings.Fields(s), " ")
}

// stripMarks removes Unicode combining marks via NFD decomposition.
func stripMarks(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	return out, err
}
