package calendar

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/offices"
)

type stubTypeFinder struct {
	officeType *offices.OfficeType
	err        error
}

func (s *stubTypeFinder) FindType(_ context.Context, _ uuid.UUID) (*offices.OfficeType, error) {
	return s.officeType, s.err
}

func resolveYear(t *testing.T, finder TypeFinder, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(finder, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestResolveDefaultCascade(t *testing.T) {
	rec := resolveYear(t, &stubTypeFinder{}, "/calendar/2024")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp YearResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if resp.Year != 2024 {
		t.Errorf("Year = %d, want 2024", resp.Year)
	}
	if resp.OfficeTypeID != nil {
		t.Errorf("OfficeTypeID = %v, want nil", resp.OfficeTypeID)
	}

	// January 1 is a national holiday; December 17 is recess only.
	if !slices.Contains(resp.NonWorking["2024-1"], 1) {
		t.Error("2024-1 should list January 1")
	}
	if !slices.Contains(resp.NonWorking["2024-12"], 17) {
		t.Error("2024-12 should list the recess day December 17")
	}

	for _, key := range []string{"2023-1", "2025-12"} {
		if _, ok := resp.NonWorking[key]; ok {
			t.Errorf("response should not carry other years, got key %s", key)
		}
	}
}

func TestResolveSentenceExecutionSkipsRecess(t *testing.T) {
	finder := &stubTypeFinder{
		officeType: &offices.OfficeType{
			ID:        uuid.New(),
			Specialty: offices.SpecialtyEjecucionPenas,
			Category:  offices.CategoryCircuito,
		},
	}

	rec := resolveYear(t, finder, "/calendar/2024?office_type_id="+uuid.NewString())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp YearResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if resp.OfficeTypeID == nil {
		t.Error("OfficeTypeID should echo the query parameter")
	}
	if slices.Contains(resp.NonWorking["2024-12"], 17) {
		t.Error("sentence execution offices work through the recess")
	}
	if !slices.Contains(resp.NonWorking["2024-12"], 25) {
		t.Error("2024-12 should still list December 25")
	}
}

func TestResolveUnknownType(t *testing.T) {
	finder := &stubTypeFinder{err: offices.ErrTypeNotFound}

	rec := resolveYear(t, finder, "/calendar/2024?office_type_id="+uuid.NewString())

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestResolveBadYear(t *testing.T) {
	rec := resolveYear(t, &stubTypeFinder{}, "/calendar/banana")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
