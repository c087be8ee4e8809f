package pump

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SimDriver is an in-memory pump used when no RS-485 hardware is attached
// (serial.simulated in the config) and in tests. It keeps the same register
// set a real device would and answers every round-trip immediately.
type SimDriver struct {
	mu     sync.Mutex
	regs   map[Field]uint16
	run    byte
	mode   byte
	rpm    int
	closed bool
}

// NewSimDriver returns a simulated pump with factory-like defaults.
func NewSimDriver() *SimDriver {
	d := &SimDriver{
		regs: map[Field]uint16{
			FieldTargetRPM:         1500,
			FieldRamp:              100,
			FieldCelsius:           0,
			FieldFahrenheit:        1,
			FieldContrast:          2,
			FieldAddress:           96,
			FieldID:                1,
			FieldAMPM:              0,
			FieldMaxRPM:            3450,
			FieldMinRPM:            1100,
			FieldQuickRPM:          2500,
			FieldQuickTimerHours:   0,
			FieldQuickTimerMinutes: 10,
			FieldPrimeEnable:       1,
			FieldPrimeMaxTime:      5,
			FieldPrimeSensitivity:  50,
			FieldPrimeDelay:        30,
			FieldAntifreezeEnable:  0,
			FieldAntifreezeRPM:     1500,
			FieldAntifreezeTemp:    40,
			FieldSVRSRestartEnable: 0,
			FieldSVRSRestartTimer:  120,
			FieldTimeOutTimerHours: 0,
			FieldTimeOutTimerMinutes: 0,
			FieldRunningProgram:    8, // program 1, stored as index*8
			FieldSelectedProgram:   1,
		},
		run: RunStopped,
	}
	for slot := 1; slot <= ProgramSlots; slot++ {
		d.regs[ProgramField(slot, ProgramRPM)] = 1500
		d.regs[ProgramField(slot, ProgramMode)] = uint16(ProgramModes["MANUAL"])
		d.regs[ProgramField(slot, ProgramScheduleStartHour)] = 8
		d.regs[ProgramField(slot, ProgramScheduleStartMinute)] = 0
		d.regs[ProgramField(slot, ProgramScheduleEndHour)] = 10
		d.regs[ProgramField(slot, ProgramScheduleEndMinute)] = 0
		d.regs[ProgramField(slot, ProgramEggTimerHours)] = 1
		d.regs[ProgramField(slot, ProgramEggTimerMinutes)] = 0
	}
	return d
}

var errSimClosed = fmt.Errorf("simulated pump: driver closed")

func (d *SimDriver) Status(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Status{}, errSimClosed
	}
	// Running motors creep toward the target speed between polls.
	if d.run == RunStarted {
		target := int(d.regs[FieldTargetRPM])
		switch {
		case d.rpm < target:
			d.rpm += min(200, target-d.rpm)
		case d.rpm > target:
			d.rpm -= min(200, d.rpm-target)
		}
	} else {
		d.rpm = 0
	}
	now := time.Now()
	return Status{
		Run:    d.run,
		Mode:   d.mode,
		Watts:  d.rpm / 2,
		RPM:    d.rpm,
		Hour:   now.Hour(),
		Minute: now.Minute(),
	}, nil
}

func (d *SimDriver) ReadField(ctx context.Context, f Field) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, errSimClosed
	}
	if f == FieldRun {
		return uint16(d.run), nil
	}
	v, ok := d.regs[f]
	if !ok {
		return 0, fmt.Errorf("simulated pump: no register for %s", f)
	}
	return v, nil
}

func (d *SimDriver) WriteField(ctx context.Context, f Field, v uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errSimClosed
	}
	if f == FieldRun {
		d.run = byte(v)
		if d.run == RunStarted {
			d.mode = PumpModes["MANUAL"]
		} else {
			d.mode = PumpModes["STOPPED"]
		}
		return nil
	}
	d.regs[f] = v
	return nil
}

func (d *SimDriver) ReadProgram(ctx context.Context, slot int) (ProgramRegs, error) {
	if err := ctx.Err(); err != nil {
		return ProgramRegs{}, err
	}
	if !ValidSlot(slot) {
		return ProgramRegs{}, fmt.Errorf("simulated pump: no program slot %d", slot)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ProgramRegs{}, errSimClosed
	}
	return ProgramRegs{
		RPM:  int(d.regs[ProgramField(slot, ProgramRPM)]),
		Mode: byte(d.regs[ProgramField(slot, ProgramMode)]),
		ScheduleStart: [2]int{
			int(d.regs[ProgramField(slot, ProgramScheduleStartHour)]),
			int(d.regs[ProgramField(slot, ProgramScheduleStartMinute)]),
		},
		ScheduleEnd: [2]int{
			int(d.regs[ProgramField(slot, ProgramScheduleEndHour)]),
			int(d.regs[ProgramField(slot, ProgramScheduleEndMinute)]),
		},
		EggTimer: [2]int{
			int(d.regs[ProgramField(slot, ProgramEggTimerHours)]),
			int(d.regs[ProgramField(slot, ProgramEggTimerMinutes)]),
		},
	}, nil
}

func (d *SimDriver) Clock(ctx context.Context) (Clock, error) {
	if err := ctx.Err(); err != nil {
		return Clock{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Clock{}, errSimClosed
	}
	now := time.Now()
	return Clock{
		Hour:    now.Hour(),
		Minute:  now.Minute(),
		Weekday: byte(now.Weekday()) + 1, // device weekdays are 1-based from Sunday
		Day:     now.Day(),
		Month:   int(now.Month()),
		Year:    now.Year(),
		DST:     false,
	}, nil
}

func (d *SimDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
