package records

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
)

type stubSystem struct {
	updatedID  uuid.UUID
	updatedCmd CreateCommand
	record     *Record
	err        error
}

func (s *stubSystem) Handler() *Handler { return nil }

func (s *stubSystem) List(context.Context, pagination.PageRequest, Filters) (*pagination.PageResult[Record], error) {
	return nil, s.err
}

func (s *stubSystem) Find(context.Context, uuid.UUID) (*Record, error) { return s.record, s.err }

func (s *stubSystem) Create(context.Context, CreateCommand) (*Record, error) {
	return s.record, s.err
}

func (s *stubSystem) Update(_ context.Context, id uuid.UUID, cmd CreateCommand) (*Record, error) {
	s.updatedID = id
	s.updatedCmd = cmd
	return s.record, s.err
}

func (s *stubSystem) Delete(context.Context, uuid.UUID) error { return s.err }

func (s *stubSystem) ForOffice(context.Context, uuid.UUID, int) ([]Record, error) {
	return nil, s.err
}

func serve(sys System, method, target string, body []byte) *httptest.ResponseRecorder {
	h := NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{})

	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, bytes.NewReader(body)))
	return rec
}

func TestHandlerUpdate(t *testing.T) {
	id := uuid.New()
	sys := &stubSystem{record: &Record{ID: id, Class: ClassOral}}

	cmd := CreateCommand{
		OfficeID:   uuid.New(),
		OfficialID: uuid.New(),
		Class:      ClassOral,
		Category:   "Procesos Ordinarios",
		From:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Remaining:  2,
	}
	body, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	rec := serve(sys, "PUT", "/records/"+id.String(), body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sys.updatedID != id {
		t.Errorf("expected update for %s, got %s", id, sys.updatedID)
	}
	if sys.updatedCmd.Remaining != 2 {
		t.Errorf("expected remaining carried through, got %d", sys.updatedCmd.Remaining)
	}

	var got Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("expected record %s, got %s", id, got.ID)
	}
}

func TestHandlerUpdateLockedGrade(t *testing.T) {
	sys := &stubSystem{err: ErrGradeLocked}

	rec := serve(sys, "PUT", "/records/"+uuid.NewString(), []byte("{}"))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandlerUpdateBadID(t *testing.T) {
	rec := serve(&stubSystem{}, "PUT", "/records/banana", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
