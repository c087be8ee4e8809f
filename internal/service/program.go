package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"poolpump/internal/models"
	"poolpump/internal/pump"
	"poolpump/internal/repository"
)

// ProgramService edits the device's 8 schedule slots. Edits are refused
// while the pump's operating mode indicates it is running.
type ProgramService struct {
	session *pump.Session
	events  repository.EventRepo
}

func NewProgramService(session *pump.Session, events repository.EventRepo) *ProgramService {
	return &ProgramService{session: session, events: events}
}

var errPumpRunning = invalidField("program", "pump is currently running, cannot modify program")

// Apply validates the slot id and every present field, checks the pump is
// idle, then writes the slot registers in order. Like /control, a rejected
// request issues no writes at all.
func (s *ProgramService) Apply(ctx context.Context, p ProgramParams) error {
	if !pump.ValidSlot(p.ProgramID) {
		return invalidField("program_id", fmt.Sprintf("must be between 1 and %d", pump.ProgramSlots))
	}

	writes, err := p.plan()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	st, err := s.session.Status(ctx)
	if err != nil {
		return fmt.Errorf("read pump status: %w", err)
	}
	if pump.ModeRunning(st.Mode) {
		return errPumpRunning
	}

	applied := make([]string, 0, len(writes))
	for _, w := range writes {
		if err := s.session.WriteField(ctx, w.Field, w.Value); err != nil {
			return fmt.Errorf("write %s: %w", w.Field, err)
		}
		applied = append(applied, w.Field.String())
	}

	return s.events.Append(ctx, models.PumpEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        "PROGRAM",
		Description: fmt.Sprintf("Edited program %d", p.ProgramID),
		Metadata:    map[string]any{"program_id": p.ProgramID, "fields": applied},
	})
}

func (p ProgramParams) plan() ([]pump.Write, error) {
	var writes []pump.Write
	add := func(f pump.Field, v uint16) {
		writes = append(writes, pump.Write{Field: f, Value: v})
	}
	slot := p.ProgramID

	steps := []planStep{
		modeStep(p.Mode, slot),
		intStep("rpm", p.RPM, 450, 3450, pump.ProgramField(slot, pump.ProgramRPM), 1),
		timerStep("schedule_start", p.ScheduleStart, 23,
			pump.ProgramField(slot, pump.ProgramScheduleStartHour),
			pump.ProgramField(slot, pump.ProgramScheduleStartMinute)),
		timerStep("schedule_end", p.ScheduleEnd, 23,
			pump.ProgramField(slot, pump.ProgramScheduleEndHour),
			pump.ProgramField(slot, pump.ProgramScheduleEndMinute)),
		timerStep("egg_timer", p.EggTimer, 23,
			pump.ProgramField(slot, pump.ProgramEggTimerHours),
			pump.ProgramField(slot, pump.ProgramEggTimerMinutes)),
	}

	for _, step := range steps {
		if err := step(add); err != nil {
			return nil, err
		}
	}
	return writes, nil
}

func modeStep(v *string, slot int) planStep {
	return func(add func(pump.Field, uint16)) error {
		if v == nil {
			return nil
		}
		code, ok := pump.ProgramModeCode(*v)
		if !ok {
			return invalidField("mode", "must be MANUAL, EGG_TIMER, SCHEDULE, or DISABLED")
		}
		add(pump.ProgramField(slot, pump.ProgramMode), uint16(code))
		return nil
	}
}
