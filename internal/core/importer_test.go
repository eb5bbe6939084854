package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// fakeStore records insert attempts and fails rows whose subject is listed
// in failSubjects.
type fakeStore struct {
	created      []ScheduleParams
	failSubjects map[string]error
	nextID       int64
}

func (f *fakeStore) CreateSchedule(_ context.Context, params ScheduleParams) (int64, error) {
	if err, ok := f.failSubjects[params.SubjectName]; ok {
		return 0, err
	}
	f.created = append(f.created, params)
	f.nextID++
	return f.nextID, nil
}

const sampleCSV = `Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc,Phòng Học,Loại
Toán,2,07:00,09:00,A101,LT
Lý,3,09:00,11:00,B202,TH
Hóa,4,13:00,15:00,C303,
`

func TestPreview(t *testing.T) {
	store := &fakeStore{}
	imp := NewImporter(store)

	result, err := imp.Preview(context.Background(), strings.NewReader(sampleCSV), 1, 10)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	if result.Imported != 0 {
		t.Errorf("Imported = %d, want 0", result.Imported)
	}
	if result.PreviewCount != 3 {
		t.Errorf("PreviewCount = %d, want 3", result.PreviewCount)
	}
	if len(result.Preview) != 3 {
		t.Fatalf("len(Preview) = %d, want 3", len(result.Preview))
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
	if len(store.created) != 0 {
		t.Errorf("preview persisted %d rows", len(store.created))
	}

	first := result.Preview[0]
	if first.SubjectName != "Toán" || first.SessionType != SessionTypeLecture {
		t.Errorf("first row = %q/%q", first.SubjectName, first.SessionType)
	}
	if second := result.Preview[1]; second.SessionType != SessionTypeLab {
		t.Errorf("second row session type = %q, want %q", second.SessionType, SessionTypeLab)
	}
	if third := result.Preview[2]; third.SessionType != SessionTypeLecture {
		t.Errorf("empty session type = %q, want %q", third.SessionType, SessionTypeLecture)
	}
}

func TestPreviewCapsSample(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("Môn,2,07:00,09:00\n")
	}

	imp := NewImporter(&fakeStore{})
	result, err := imp.Preview(context.Background(), strings.NewReader(sb.String()), 1, 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	if len(result.Preview) != DefaultPreviewRows {
		t.Errorf("len(Preview) = %d, want %d", len(result.Preview), DefaultPreviewRows)
	}
	if result.PreviewCount != 25 {
		t.Errorf("PreviewCount = %d, want 25 (full valid count, not the sample)", result.PreviewCount)
	}
}

func TestPreviewCustomSampleSize(t *testing.T) {
	imp := NewImporter(&fakeStore{}, WithPreviewRows(2))
	result, err := imp.Preview(context.Background(), strings.NewReader(sampleCSV), 1, 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(result.Preview) != 2 || result.PreviewCount != 3 {
		t.Errorf("Preview/PreviewCount = %d/%d, want 2/3", len(result.Preview), result.PreviewCount)
	}
}

func TestPreviewEmptyFile(t *testing.T) {
	imp := NewImporter(&fakeStore{})

	for name, content := range map[string]string{
		"no bytes":    "",
		"header only": "Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc\n",
	} {
		t.Run(name, func(t *testing.T) {
			result, err := imp.Preview(context.Background(), strings.NewReader(content), 1, 1)
			if err != nil {
				t.Fatalf("Preview: %v", err)
			}
			if len(result.Errors) != 1 {
				t.Fatalf("Errors = %v, want exactly one", result.Errors)
			}
			e := result.Errors[0]
			if e.Row != 0 || e.Message != "empty CSV file" {
				t.Errorf("error = row %d %q, want row 0 %q", e.Row, e.Message, "empty CSV file")
			}
			if result.PreviewCount != 0 || len(result.Preview) != 0 {
				t.Errorf("empty file produced preview rows: %+v", result)
			}
			if result.Preview == nil {
				t.Error("Preview must encode as [], not null")
			}
		})
	}
}

func TestCommit(t *testing.T) {
	store := &fakeStore{}
	imp := NewImporter(store)

	result, err := imp.Commit(context.Background(), strings.NewReader(sampleCSV), 9, 10)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("Imported = %d, want 3", result.Imported)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}

	// Rows are persisted in file order, scoped to the batch.
	wantSubjects := []string{"Toán", "Lý", "Hóa"}
	if len(store.created) != len(wantSubjects) {
		t.Fatalf("created %d rows, want %d", len(store.created), len(wantSubjects))
	}
	for i, want := range wantSubjects {
		got := store.created[i]
		if got.SubjectName != want {
			t.Errorf("row %d subject = %q, want %q", i, got.SubjectName, want)
		}
		if got.UserID != 9 || got.SemID != 10 {
			t.Errorf("row %d scope = (%d, %d), want (9, 10)", i, got.UserID, got.SemID)
		}
	}
}

func TestCommitPartialFailure(t *testing.T) {
	store := &fakeStore{
		failSubjects: map[string]error{"Lý": errors.New("day_of_week constraint violated")},
	}
	imp := NewImporter(store)

	result, err := imp.Commit(context.Background(), strings.NewReader(sampleCSV), 1, 1)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}

	e := result.Errors[0]
	if e.Stage != StagePersistence || e.Subject != "Lý" {
		t.Errorf("error = %+v, want persistence failure for Lý", e)
	}
	if !strings.Contains(e.Message, "constraint") {
		t.Errorf("message %q should carry the store error", e.Message)
	}

	// The rows after the failing one were still attempted.
	if len(store.created) != 2 || store.created[1].SubjectName != "Hóa" {
		t.Errorf("created = %+v, want Toán then Hóa", store.created)
	}
}

func TestCommitMixedValidationAndPersistence(t *testing.T) {
	csv := "Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc\n" +
		"Toán,2,07:00,09:00\n" +
		",3,09:00,11:00\n" + // missing subject: validation failure at line 3
		"Lý,4,13:00,15:00\n"
	store := &fakeStore{
		failSubjects: map[string]error{"Lý": errors.New("boom")},
	}
	imp := NewImporter(store)

	result, err := imp.Commit(context.Background(), strings.NewReader(csv), 1, 1)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("Errors = %v, want two", result.Errors)
	}
	if v := result.Errors[0]; v.Stage != StageValidation || v.Row != 3 {
		t.Errorf("first error = %+v, want validation at row 3", v)
	}
	if p := result.Errors[1]; p.Stage != StagePersistence || p.Subject != "Lý" {
		t.Errorf("second error = %+v, want persistence for Lý", p)
	}
}

func TestCommitNotIdempotent(t *testing.T) {
	store := &fakeStore{}
	imp := NewImporter(store)

	for i := 0; i < 2; i++ {
		if _, err := imp.Commit(context.Background(), strings.NewReader(sampleCSV), 1, 1); err != nil {
			t.Fatalf("Commit %d: %v", i, err)
		}
	}
	if len(store.created) != 6 {
		t.Errorf("created %d rows after double commit, want 6", len(store.created))
	}
}

// nullRejectingStore mimics the database's NOT NULL enforcement on
// day_of_week: rows whose parse failed upstream carry an invalid Int2 and
// are rejected only here.
type nullRejectingStore struct {
	fakeStore
}

func (s *nullRejectingStore) CreateSchedule(ctx context.Context, params ScheduleParams) (int64, error) {
	if !params.DayOfWeek.Valid {
		return 0, errors.New("null value in column \"day_of_week\" violates not-null constraint")
	}
	return s.fakeStore.CreateSchedule(ctx, params)
}

func TestCommitUnparseableDayRejectedByStore(t *testing.T) {
	csv := "Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc,Phòng Học,Loại\n" +
		"Toán,2,08:00,09:30,A101,lt\n" +
		"Lý,abc,10:00,11:00,A102,lt\n"
	store := &nullRejectingStore{}
	imp := NewImporter(store)

	// The validator only checks presence; "abc" passes validation and the
	// row reaches the store, which rejects it.
	preview, err := imp.Preview(context.Background(), strings.NewReader(csv), 1, 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(preview.Errors) != 0 || preview.PreviewCount != 2 {
		t.Fatalf("preview = %+v, want both rows valid", preview)
	}

	result, err := imp.Commit(context.Background(), strings.NewReader(csv), 1, 1)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}
	if e := result.Errors[0]; e.Stage != StagePersistence || e.Subject != "Lý" {
		t.Errorf("error = %+v, want persistence failure keyed by subject Lý", e)
	}
}

func TestRowErrorWireFormat(t *testing.T) {
	validation := RowError{Stage: StageValidation, Row: 4, Message: "missing required field"}
	b, err := json.Marshal(validation)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"row":4,"error":"missing required field"}` {
		t.Errorf("validation JSON = %s", got)
	}

	persistence := RowError{Stage: StagePersistence, Subject: "Toán", Message: "insert failed"}
	b, err = json.Marshal(persistence)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"subject":"Toán","error":"insert failed"}` {
		t.Errorf("persistence JSON = %s", got)
	}
}

func TestPreviewResultWireFormat(t *testing.T) {
	imp := NewImporter(&fakeStore{})
	result, err := imp.Preview(context.Background(), strings.NewReader(""), 1, 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"imported":0`, `"previewCount":0`, `"preview":[]`, `{"row":0,"error":"empty CSV file"}`} {
		if !strings.Contains(got, want) {
			t.Errorf("result JSON %s missing %s", got, want)
		}
	}
}

func TestScanLineNumbers(t *testing.T) {
	// The header is line 1; the first data row is line 2.
	csv := "Tên Môn Học,Thứ,Giờ Bắt Đầu,Giờ Kết Thúc\n" +
		"Toán,2,07:00,09:00\n" +
		",,,\n"
	imp := NewImporter(&fakeStore{})

	result, err := imp.Preview(context.Background(), strings.NewReader(csv), 1, 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}
	if result.Errors[0].Row != 3 {
		t.Errorf("Row = %d, want 3", result.Errors[0].Row)
	}
}
