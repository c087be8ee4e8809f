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

// ControlService validates each requested field against its admissible
// range and maps it onto device register writes. Validation is strict:
// every present field is checked before the first write goes out, so a
// rejected request never touches the bus.
type ControlService struct {
	session *pump.Session
	events  repository.EventRepo
}

func NewControlService(session *pump.Session, events repository.EventRepo) *ControlService {
	return &ControlService{session: session, events: events}
}

// planStep validates one optional field and, when present and valid,
// appends its register writes. Steps run in a fixed order.
type planStep func(add func(pump.Field, uint16)) error

func intStep(name string, v *int, lo, hi int, f pump.Field, scale int) planStep {
	return func(add func(pump.Field, uint16)) error {
		if v == nil {
			return nil
		}
		if *v < lo || *v > hi {
			return invalidField(name, fmt.Sprintf("must be between %d and %d", lo, hi))
		}
		add(f, uint16(*v*scale))
		return nil
	}
}

func boolStep(v *bool, f pump.Field) planStep {
	return func(add func(pump.Field, uint16)) error {
		if v == nil {
			return nil
		}
		add(f, boolValue(*v))
		return nil
	}
}

// timerStep handles [hour, minute] pairs; each half lands in its own register.
func timerStep(name string, v []int, maxHour int, hourF, minuteF pump.Field) planStep {
	return func(add func(pump.Field, uint16)) error {
		if v == nil {
			return nil
		}
		if len(v) != 2 {
			return invalidField(name, "must be [hour, minute]")
		}
		if v[0] < 0 || v[0] > maxHour || v[1] < 0 || v[1] > 59 {
			return invalidField(name, fmt.Sprintf("hours must be 0-%d, minutes 0-59", maxHour))
		}
		add(hourF, uint16(v[0]))
		add(minuteF, uint16(v[1]))
		return nil
	}
}

func stateStep(v *bool) planStep {
	return func(add func(pump.Field, uint16)) error {
		if v == nil {
			return nil
		}
		add(pump.FieldRun, runCode(*v))
		return nil
	}
}

func runCode(state bool) uint16 {
	if state {
		return uint16(pump.RunStarted)
	}
	return uint16(pump.RunStopped)
}

func boolValue(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// plan turns the request into an ordered write list, or a ValidationError
// naming the first offending field. The order matches the field table.
func (p ControlParams) plan() ([]pump.Write, error) {
	var writes []pump.Write
	add := func(f pump.Field, v uint16) {
		writes = append(writes, pump.Write{Field: f, Value: v})
	}

	steps := []planStep{
		stateStep(p.State),
		intStep("speed", p.Speed, 450, 3450, pump.FieldTargetRPM, 1),
		intStep("ramp", p.Ramp, 100, 200, pump.FieldRamp, 1),
		boolStep(p.Celsius, pump.FieldCelsius),
		boolStep(p.Fahrenheit, pump.FieldFahrenheit),
		intStep("contrast", p.Contrast, 1, 3, pump.FieldContrast, 1),
		intStep("address", p.Address, 96, 97, pump.FieldAddress, 1),
		intStep("id", p.ID, 1, 2, pump.FieldID, 1),
		boolStep(p.AMPM, pump.FieldAMPM),
		intStep("max_rpm", p.MaxRPM, 3445, 3450, pump.FieldMaxRPM, 1),
		intStep("min_rpm", p.MinRPM, 1100, 1105, pump.FieldMinRPM, 1),
		intStep("quick_rpm", p.QuickRPM, 2000, 3000, pump.FieldQuickRPM, 1),
		timerStep("quick_timer", p.QuickTimer, 9, pump.FieldQuickTimerHours, pump.FieldQuickTimerMinutes),
		boolStep(p.PrimeEnable, pump.FieldPrimeEnable),
		intStep("prime_max_time", p.PrimeMaxTime, 1, 30, pump.FieldPrimeMaxTime, 1),
		intStep("prime_sensitivity", p.PrimeSensitivity, 1, 100, pump.FieldPrimeSensitivity, 1),
		intStep("prime_delay", p.PrimeDelay, 1, 600, pump.FieldPrimeDelay, 1),
		boolStep(p.AntifreezeEnable, pump.FieldAntifreezeEnable),
		intStep("antifreeze_rpm", p.AntifreezeRPM, 1100, 3000, pump.FieldAntifreezeRPM, 1),
		intStep("antifreeze_temp", p.AntifreezeTemp, 40, 50, pump.FieldAntifreezeTemp, 1),
		boolStep(p.SVRSRestartEnable, pump.FieldSVRSRestartEnable),
		intStep("svrs_restart_timer", p.SVRSRestartTimer, 30, 300, pump.FieldSVRSRestartTimer, 1),
		timerStep("time_out_timer", p.TimeOutTimer, 9, pump.FieldTimeOutTimerHours, pump.FieldTimeOutTimerMinutes),
		// The device stores the active program as index*8.
		intStep("running_program", p.RunningProgram, 1, 4, pump.FieldRunningProgram, 8),
		intStep("selected_program", p.SelectedProgram, 1, 8, pump.FieldSelectedProgram, 1),
	}

	for _, step := range steps {
		if err := step(add); err != nil {
			return nil, err
		}
	}
	return writes, nil
}

// Apply validates all present fields, then issues the writes in order. A
// validation failure means zero writes reached the device; a write failure
// mid-sequence leaves the device partially updated and is surfaced as-is.
func (s *ControlService) Apply(ctx context.Context, p ControlParams) error {
	writes, err := p.plan()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	applied := make([]string, 0, len(writes))
	for _, w := range writes {
		if err := s.session.WriteField(ctx, w.Field, w.Value); err != nil {
			return fmt.Errorf("write %s: %w", w.Field, err)
		}
		applied = append(applied, w.Field.String())
	}

	return s.appendEvent(ctx, "CONTROL", fmt.Sprintf("Applied %d setting write(s)", len(writes)),
		map[string]any{"fields": applied})
}

// Run starts or stops the pump via the power command.
func (s *ControlService) Run(ctx context.Context, state bool) error {
	if err := s.session.WriteField(ctx, pump.FieldRun, runCode(state)); err != nil {
		return err
	}
	if state {
		return s.appendEvent(ctx, "RUN", "Pump started", nil)
	}
	return s.appendEvent(ctx, "STOP", "Pump stopped", nil)
}

// Stop halts the pump unconditionally.
func (s *ControlService) Stop(ctx context.Context) error {
	if err := s.session.WriteField(ctx, pump.FieldRun, uint16(pump.RunStopped)); err != nil {
		return err
	}
	return s.appendEvent(ctx, "STOP", "Pump stopped", nil)
}

func (s *ControlService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) error {
	return s.events.Append(ctx, models.PumpEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
}
