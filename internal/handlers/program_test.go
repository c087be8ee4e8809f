package handlers

import (
	"net/http"
	"strings"
	"testing"

	"poolpump/internal/service"
)

func TestControlProgram_ForwardsParams(t *testing.T) {
	router, m := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/program", map[string]any{
		"program_id":     2,
		"rpm":            2500,
		"mode":           "SCHEDULE",
		"schedule_start": []int{8, 30},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(m.programs.applied) != 1 {
		t.Fatalf("Apply calls = %d, want 1", len(m.programs.applied))
	}
	p := m.programs.applied[0]
	if p.ProgramID != 2 || p.RPM == nil || *p.RPM != 2500 || p.Mode == nil || *p.Mode != "SCHEDULE" {
		t.Fatalf("unexpected params: %+v", p)
	}
	if p.ScheduleEnd != nil || p.EggTimer != nil {
		t.Fatalf("absent fields must stay nil: %+v", p)
	}
}

func TestControlProgram_MissingID(t *testing.T) {
	router, m := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/program", map[string]any{"rpm": 2500})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(m.programs.applied) != 0 {
		t.Fatalf("Apply must not be called without a program id")
	}
}

func TestControlProgram_SlotOutOfRange(t *testing.T) {
	router, m := newTestRouter(t)
	m.programs.err = &service.ValidationError{Field: "program_id", Reason: "must be between 1 and 8"}

	w := doJSON(t, router, http.MethodPost, "/program", map[string]any{"program_id": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); !strings.Contains(body["error"].(string), "between 1 and 8") {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestControlProgram_PumpRunningIs400(t *testing.T) {
	router, m := newTestRouter(t)
	m.programs.err = &service.ValidationError{
		Field:  "program",
		Reason: "pump is currently running, cannot modify program",
	}

	w := doJSON(t, router, http.MethodPost, "/program", map[string]any{"program_id": 1, "rpm": 2000})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); !strings.Contains(body["error"].(string), "cannot modify program") {
		t.Fatalf("unexpected body: %v", body)
	}
}
