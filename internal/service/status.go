package service

import (
	"context"
	"fmt"

	"poolpump/internal/models"
	"poolpump/internal/pump"
)

// StatusService reshapes raw device registers into the response objects of
// GET /status and GET /config. Every call is a live round-trip; nothing is
// cached between requests.
type StatusService struct {
	session *pump.Session
}

func NewStatusService(session *pump.Session) *StatusService {
	return &StatusService{session: session}
}

// configPrograms is how many slot summaries GET /config includes.
const configPrograms = 4

func (s *StatusService) Status(ctx context.Context) (models.PumpStatus, error) {
	st, err := s.session.Status(ctx)
	if err != nil {
		return models.PumpStatus{}, err
	}
	return models.PumpStatus{
		State: pump.IsRunning(st.Run),
		Speed: st.RPM,
		Watts: st.Watts,
		Mode:  pump.ModeLabel(st.Mode),
		Time:  [2]int{st.Hour, st.Minute},
	}, nil
}

func (s *StatusService) Config(ctx context.Context) (models.PumpConfig, error) {
	var (
		cfg models.PumpConfig
		err error
	)

	readInt := func(dst *int, f pump.Field) {
		if err != nil {
			return
		}
		var v uint16
		if v, err = s.session.ReadField(ctx, f); err != nil {
			err = fmt.Errorf("read %s: %w", f, err)
			return
		}
		*dst = int(v)
	}
	readBool := func(dst *bool, f pump.Field) {
		var v int
		readInt(&v, f)
		*dst = v != 0
	}
	readPair := func(dst *[2]int, hourF, minuteF pump.Field) {
		readInt(&dst[0], hourF)
		readInt(&dst[1], minuteF)
	}

	readInt(&cfg.Ramp, pump.FieldRamp)
	readBool(&cfg.Celsius, pump.FieldCelsius)
	readBool(&cfg.Fahrenheit, pump.FieldFahrenheit)
	readInt(&cfg.Contrast, pump.FieldContrast)
	readInt(&cfg.Address, pump.FieldAddress)
	readInt(&cfg.ID, pump.FieldID)
	readBool(&cfg.AMPM, pump.FieldAMPM)
	readInt(&cfg.MaxRPM, pump.FieldMaxRPM)
	readInt(&cfg.MinRPM, pump.FieldMinRPM)
	readInt(&cfg.QuickRPM, pump.FieldQuickRPM)
	readPair(&cfg.QuickTimer, pump.FieldQuickTimerHours, pump.FieldQuickTimerMinutes)
	readBool(&cfg.PrimeEnable, pump.FieldPrimeEnable)
	readInt(&cfg.PrimeMaxTime, pump.FieldPrimeMaxTime)
	readInt(&cfg.PrimeSensitivity, pump.FieldPrimeSensitivity)
	readInt(&cfg.PrimeDelay, pump.FieldPrimeDelay)
	readBool(&cfg.AntifreezeEnable, pump.FieldAntifreezeEnable)
	readInt(&cfg.AntifreezeRPM, pump.FieldAntifreezeRPM)
	readInt(&cfg.AntifreezeTemp, pump.FieldAntifreezeTemp)
	readBool(&cfg.SVRSRestartEnable, pump.FieldSVRSRestartEnable)
	readInt(&cfg.SVRSRestartTimer, pump.FieldSVRSRestartTimer)
	readPair(&cfg.TimeOutTimer, pump.FieldTimeOutTimerHours, pump.FieldTimeOutTimerMinutes)
	readInt(&cfg.RunningProgram, pump.FieldRunningProgram)
	if err != nil {
		return models.PumpConfig{}, err
	}
	// Stored on the device as index*8.
	cfg.RunningProgram /= 8

	clock, err := s.session.Clock(ctx)
	if err != nil {
		return models.PumpConfig{}, fmt.Errorf("read clock: %w", err)
	}
	cfg.Datetime = models.Datetime{
		Hour:   clock.Hour,
		Minute: clock.Minute,
		DOW:    pump.WeekdayLabel(clock.Weekday),
		DOM:    clock.Day,
		Month:  clock.Month,
		Year:   clock.Year,
		DST:    clock.DST,
	}

	cfg.Programs = make([]models.ProgramInfo, 0, configPrograms)
	for slot := 1; slot <= configPrograms; slot++ {
		regs, err := s.session.ReadProgram(ctx, slot)
		if err != nil {
			return models.PumpConfig{}, fmt.Errorf("read program %d: %w", slot, err)
		}
		cfg.Programs = append(cfg.Programs, models.ProgramInfo{
			ProgramID:     slot,
			RPM:           regs.RPM,
			Mode:          pump.ProgramModeLabel(regs.Mode),
			ScheduleStart: regs.ScheduleStart,
			ScheduleEnd:   regs.ScheduleEnd,
			EggTimer:      regs.EggTimer,
		})
	}
	return cfg, nil
}
