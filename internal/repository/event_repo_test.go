package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"poolpump/internal/models"
)

func newEventMock(t *testing.T) (*EventSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return NewEventSQLite(db), mock, func() { _ = db.Close() }
}

func TestEventAppend(t *testing.T) {
	repo, mock, closeDB := newEventMock(t)
	defer closeDB()

	occurred := time.Date(2026, 8, 23, 12, 30, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pump_events")).
		WithArgs("e1", "2026-08-23 12:30:00", "RUN", "Pump started", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), event("e1", occurred, "run", "Pump started"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEventAppend_FillsDefaults(t *testing.T) {
	repo, mock, closeDB := newEventMock(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pump_events")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "CONTROL", "Applied 1 setting write(s)", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := event("", time.Time{}, "CONTROL", "Applied 1 setting write(s)")
	e.Metadata = map[string]any{"fields": []string{"speed"}}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEventList_NoFilters(t *testing.T) {
	repo, mock, closeDB := newEventMock(t)
	defer closeDB()

	occurred := time.Date(2026, 8, 23, 12, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("e1", occurred, "RUN", "Pump started", nil).
		AddRow("e2", occurred.Add(time.Minute), "CONTROL", "Applied 1 setting write(s)", `{"fields":["speed"]}`)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, occurred_at, type, message, meta FROM pump_events ORDER BY occurred_at ASC",
	)).WillReturnRows(rows)

	events, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].EventID != "e1" || events[0].Type != "RUN" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	meta, ok := events[1].Metadata.(map[string]any)
	if !ok {
		t.Fatalf("metadata not decoded: %T", events[1].Metadata)
	}
	if _, ok := meta["fields"]; !ok {
		t.Fatalf("metadata missing fields key: %v", meta)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEventList_WithFilters(t *testing.T) {
	repo, mock, closeDB := newEventMock(t)
	defer closeDB()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, occurred_at, type, message, meta FROM pump_events"+
			" WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC",
	)).
		WithArgs(from, to, "STOP").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}))

	events, err := repo.List(context.Background(), from, to, "stop")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("len = %d, want 0", len(events))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func event(id string, at time.Time, typ, desc string) models.PumpEvent {
	return models.PumpEvent{EventID: id, OccurredAt: at, Type: typ, Description: desc}
}
