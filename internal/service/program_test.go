package service

import (
	"context"
	"strings"
	"testing"

	"poolpump/internal/pump"
)

func newProgramFixture() (*ProgramService, *fakeDriver, *fakeEventRepo) {
	fd := &fakeDriver{}
	events := &fakeEventRepo{}
	return NewProgramService(pump.NewSession(fd), events), fd, events
}

func TestProgramApply_RejectsBadSlot(t *testing.T) {
	for _, id := range []int{0, -1, 9} {
		svc, fd, _ := newProgramFixture()
		err := svc.Apply(context.Background(), ProgramParams{ProgramID: id, RPM: iptr(1500)})
		assertValidationError(t, err, "program_id")
		if !strings.Contains(err.Error(), "between 1 and 8") {
			t.Fatalf("unexpected message: %v", err)
		}
		if len(fd.writes) != 0 {
			t.Fatalf("slot %d: expected zero writes", id)
		}
	}
}

func TestProgramApply_RefusedWhileRunning(t *testing.T) {
	svc, fd, events := newProgramFixture()
	fd.status = pump.Status{Run: pump.RunStarted, Mode: pump.PumpModes["MANUAL"]}

	err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, RPM: iptr(1500)})
	assertValidationError(t, err, "program")
	if !strings.Contains(err.Error(), "cannot modify program") {
		t.Fatalf("unexpected message: %v", err)
	}
	if len(fd.writes) != 0 || len(events.events) != 0 {
		t.Fatalf("running pump: expected no writes/events, got %+v %+v", fd.writes, events.events)
	}
}

func TestProgramApply_WritesSlotRegisters(t *testing.T) {
	svc, fd, events := newProgramFixture()
	err := svc.Apply(context.Background(), ProgramParams{
		ProgramID:     2,
		RPM:           iptr(2500),
		Mode:          sptr("SCHEDULE"),
		ScheduleStart: []int{8, 30},
		ScheduleEnd:   []int{17, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []pump.Write{
		{Field: pump.ProgramField(2, pump.ProgramMode), Value: uint16(pump.ProgramModes["SCHEDULE"])},
		{Field: pump.ProgramField(2, pump.ProgramRPM), Value: 2500},
		{Field: pump.ProgramField(2, pump.ProgramScheduleStartHour), Value: 8},
		{Field: pump.ProgramField(2, pump.ProgramScheduleStartMinute), Value: 30},
		{Field: pump.ProgramField(2, pump.ProgramScheduleEndHour), Value: 17},
		{Field: pump.ProgramField(2, pump.ProgramScheduleEndMinute), Value: 0},
	}
	if len(fd.writes) != len(want) {
		t.Fatalf("expected %d writes, got %d: %+v", len(want), len(fd.writes), fd.writes)
	}
	for i := range want {
		if fd.writes[i] != want[i] {
			t.Fatalf("write %d: got %+v, want %+v", i, fd.writes[i], want[i])
		}
	}
	if len(events.events) != 1 || events.events[0].Type != "PROGRAM" {
		t.Fatalf("expected a PROGRAM event, got %+v", events.events)
	}
}

func TestProgramApply_RPMBounds(t *testing.T) {
	for _, ok := range []int{450, 3450} {
		svc, _, _ := newProgramFixture()
		if err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, RPM: iptr(ok)}); err != nil {
			t.Fatalf("rpm %d should be accepted: %v", ok, err)
		}
	}
	for _, bad := range []int{449, 3451} {
		svc, fd, _ := newProgramFixture()
		err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, RPM: iptr(bad)})
		assertValidationError(t, err, "rpm")
		if len(fd.writes) != 0 {
			t.Fatalf("rpm %d: expected zero writes", bad)
		}
	}
}

func TestProgramApply_ScheduleUsesFullDayClock(t *testing.T) {
	svc, _, _ := newProgramFixture()
	if err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, ScheduleStart: []int{23, 59}}); err != nil {
		t.Fatalf("23:59 should be accepted: %v", err)
	}

	svc, fd, _ := newProgramFixture()
	err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, ScheduleStart: []int{24, 0}})
	assertValidationError(t, err, "schedule_start")
	if len(fd.writes) != 0 {
		t.Fatalf("expected zero writes")
	}
}

func TestProgramApply_UnknownModeLabel(t *testing.T) {
	svc, fd, _ := newProgramFixture()
	err := svc.Apply(context.Background(), ProgramParams{ProgramID: 1, Mode: sptr("TURBO")})
	assertValidationError(t, err, "mode")
	if !strings.Contains(err.Error(), "MANUAL, EGG_TIMER, SCHEDULE, or DISABLED") {
		t.Fatalf("unexpected message: %v", err)
	}
	if len(fd.writes) != 0 {
		t.Fatalf("expected zero writes")
	}
}

func TestProgramApply_EmptyEditIsNoOp(t *testing.T) {
	svc, fd, events := newProgramFixture()
	// Even with the pump running: nothing to write means nothing to refuse.
	fd.status = pump.Status{Run: pump.RunStarted, Mode: pump.PumpModes["MANUAL"]}
	if err := svc.Apply(context.Background(), ProgramParams{ProgramID: 3}); err != nil {
		t.Fatalf("empty edit must succeed: %v", err)
	}
	if len(fd.writes) != 0 || len(events.events) != 0 {
		t.Fatalf("empty edit must issue no writes/events")
	}
}

func sptr(v string) *string { return &v }
