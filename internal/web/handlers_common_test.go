package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func requestWithURLParam(t *testing.T, name, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"one", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"letters", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithURLParam(t, "semID", tt.value)
			got, err := parseID(req, "semID")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestOptionalText(t *testing.T) {
	if got := optionalText("  Cơ sở 1 "); !got.Valid || got.String != "Cơ sở 1" {
		t.Errorf("optionalText trimmed = %+v", got)
	}
	if got := optionalText("   "); got.Valid {
		t.Errorf("optionalText blank = %+v, want NULL", got)
	}
}

func TestImportSemID(t *testing.T) {
	t.Run("from form", func(t *testing.T) {
		form := url.Values{"sem_id": {"12"}}
		req := httptest.NewRequest(http.MethodPost, "/api/schedules/import",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := importSemID(req)
		if err != nil || got != 12 {
			t.Errorf("importSemID = %d, %v; want 12", got, err)
		}
	})

	t.Run("from query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/schedules/import?sem_id=5", nil)

		got, err := importSemID(req)
		if err != nil || got != 5 {
			t.Errorf("importSemID = %d, %v; want 5", got, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/schedules/import", nil)
		if _, err := importSemID(req); err == nil {
			t.Error("importSemID without sem_id: expected error")
		}
	})
}
