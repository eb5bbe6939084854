package core

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "thu", "thu"},
		{"uppercase", "TEN MON HOC", "ten mon hoc"},
		{"diacritics stripped", "Tên Môn Học", "ten mon hoc"},
		{"dj folded", "Địa Chỉ Cơ Sở", "dia chi co so"},
		{"surrounding whitespace", "  giờ bắt đầu  ", "gio bat dau"},
		{"internal whitespace collapsed", "giờ \t kết   thúc", "gio ket thuc"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.input); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelIdempotent(t *testing.T) {
	inputs := []string{
		"Tên Môn Học", "GIỜ BẮT ĐẦU", "  phòng   học ", "loại", "unknown header",
	}
	for _, input := range inputs {
		once := NormalizeLabel(input)
		twice := NormalizeLabel(once)
		if once != twice {
			t.Errorf("NormalizeLabel not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestCanonical(t *testing.T) {
	n := NewHeaderNormalizer(nil)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"accented subject", "Tên Môn Học", FieldSubjectName},
		{"stripped subject", "ten mon hoc", FieldSubjectName},
		{"uppercase subject", "TEN MON HOC", FieldSubjectName},
		{"day", "Thứ", FieldDayOfWeek},
		{"day ascii", "thu", FieldDayOfWeek},
		{"campus address", "Địa Chỉ Cơ Sở", FieldCampusAddress},
		{"start time", "Giờ Bắt Đầu", FieldStartTime},
		{"end time", "giờ kết thúc", FieldEndTime},
		{"room", "Phòng Học", FieldRoom},
		{"session type", "Loại", FieldSessionType},
		{"campus name", "tên cơ sở", FieldCampusName},
		{"unknown passes through", "Ghi Chú", "Ghi Chú"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Canonical(tt.header); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestMapHeaders(t *testing.T) {
	n := NewHeaderNormalizer(nil)

	got := n.MapHeaders([]string{"Tên Môn Học", "Thứ", "Giờ Bắt Đầu", "Giờ Kết Thúc", "Ghi Chú"})
	want := []string{FieldSubjectName, FieldDayOfWeek, FieldStartTime, FieldEndTime, "Ghi Chú"}

	if len(got) != len(want) {
		t.Fatalf("MapHeaders returned %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewHeaderNormalizerCustomMap(t *testing.T) {
	n := NewHeaderNormalizer(HeaderMap{"Môn": FieldSubjectName})

	// Custom keys are normalized at construction, so any spelling of the
	// alias resolves.
	if got := n.Canonical("môn"); got != FieldSubjectName {
		t.Errorf("Canonical(%q) = %q, want %q", "môn", got, FieldSubjectName)
	}
	if got := n.Canonical("MON"); got != FieldSubjectName {
		t.Errorf("Canonical(%q) = %q, want %q", "MON", got, FieldSubjectName)
	}
	// Default aliases are not active on a custom table.
	if got := n.Canonical("thứ"); got != "thứ" {
		t.Errorf("Canonical(%q) = %q, want passthrough", "thứ", got)
	}
}
