package pentair

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"poolpump/internal/pump"
)

// Config carries the serial settings for one pump. All values come from the
// application config; the driver reads no environment.
type Config struct {
	Port        string
	Baud        int
	PumpAddress byte
	ReadTimeout time.Duration
}

const (
	defaultBaud        = 9600
	defaultReadTimeout = 2 * time.Second
)

// Driver implements pump.Driver over an RS-485 serial port.
type Driver struct {
	port io.ReadWriteCloser
	addr byte
}

var _ pump.Driver = (*Driver)(nil)

// Open connects to the pump on the given serial port.
func Open(cfg Config) (*Driver, error) {
	if cfg.Baud == 0 {
		cfg.Baud = defaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	return &Driver{port: p, addr: cfg.PumpAddress}, nil
}

// registers maps symbolic fields onto device register addresses.
var registers = map[pump.Field]uint16{
	pump.FieldTargetRPM:            0x02C4,
	pump.FieldRamp:                 0x021C,
	pump.FieldCelsius:              0x0220,
	pump.FieldFahrenheit:           0x0221,
	pump.FieldContrast:             0x0222,
	pump.FieldAddress:              0x0223,
	pump.FieldID:                   0x0224,
	pump.FieldAMPM:                 0x0225,
	pump.FieldMaxRPM:               0x0226,
	pump.FieldMinRPM:               0x0227,
	pump.FieldQuickRPM:             0x0228,
	pump.FieldQuickTimerHours:      0x0229,
	pump.FieldQuickTimerMinutes:    0x022A,
	pump.FieldPrimeEnable:          0x022B,
	pump.FieldPrimeMaxTime:         0x022C,
	pump.FieldPrimeSensitivity:     0x022D,
	pump.FieldPrimeDelay:           0x022E,
	pump.FieldAntifreezeEnable:     0x022F,
	pump.FieldAntifreezeRPM:        0x0230,
	pump.FieldAntifreezeTemp:       0x0231,
	pump.FieldSVRSRestartEnable:    0x0232,
	pump.FieldSVRSRestartTimer:     0x0233,
	pump.FieldTimeOutTimerHours:    0x0234,
	pump.FieldTimeOutTimerMinutes:  0x0235,
	pump.FieldRunningProgram:       0x0321,
	pump.FieldSelectedProgram:      0x0322,
}

// Program registers: 8 consecutive registers per slot starting at 0x0340.
const (
	programRegisterBase   uint16 = 0x0340
	programRegisterStride uint16 = 0x0008
)

func registerFor(f pump.Field) (uint16, error) {
	if reg, ok := registers[f]; ok {
		return reg, nil
	}
	if slot, setting, ok := programSetting(f); ok {
		return programRegisterBase + uint16(slot-1)*programRegisterStride + uint16(setting), nil
	}
	return 0, fmt.Errorf("pentair: no register for %s", f)
}

func programSetting(f pump.Field) (slot int, setting pump.ProgramSetting, ok bool) {
	for s := 1; s <= pump.ProgramSlots; s++ {
		for off := pump.ProgramRPM; off <= pump.ProgramEggTimerMinutes; off++ {
			if pump.ProgramField(s, off) == f {
				return s, off, true
			}
		}
	}
	return 0, 0, false
}

// roundTrip sends one frame and waits for the pump's reply to the same
// command. The serial read timeout bounds the wait.
func (d *Driver) roundTrip(ctx context.Context, cmd byte, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := d.port.Write(encodeFrame(d.addr, cmd, payload)); err != nil {
		return nil, fmt.Errorf("pentair: write cmd 0x%02X: %w", cmd, err)
	}
	f, err := readFrame(d.port)
	if err != nil {
		return nil, fmt.Errorf("pentair: read reply to cmd 0x%02X: %w", cmd, err)
	}
	if f.src != d.addr {
		return nil, fmt.Errorf("pentair: reply from unexpected address 0x%02X", f.src)
	}
	if f.cmd != cmd {
		return nil, fmt.Errorf("pentair: reply cmd 0x%02X does not match request 0x%02X", f.cmd, cmd)
	}
	return f.payload, nil
}

// Status polls the pump's status frame (cmd 0x07). Payload layout:
// run, mode, drive state, watts hi/lo, rpm hi/lo, gpm, ppc, _, error, _,
// timer, clock hour, clock minute.
func (d *Driver) Status(ctx context.Context) (pump.Status, error) {
	payload, err := d.roundTrip(ctx, cmdStatus, nil)
	if err != nil {
		return pump.Status{}, err
	}
	if len(payload) < 15 {
		return pump.Status{}, fmt.Errorf("pentair: status payload too short: %d bytes", len(payload))
	}
	return pump.Status{
		Run:    payload[0],
		Mode:   payload[1],
		Watts:  int(binary.BigEndian.Uint16(payload[3:5])),
		RPM:    int(binary.BigEndian.Uint16(payload[5:7])),
		Hour:   int(payload[13]),
		Minute: int(payload[14]),
	}, nil
}

func (d *Driver) ReadField(ctx context.Context, f pump.Field) (uint16, error) {
	if f == pump.FieldRun {
		st, err := d.Status(ctx)
		if err != nil {
			return 0, err
		}
		return uint16(st.Run), nil
	}
	reg, err := registerFor(f)
	if err != nil {
		return 0, err
	}
	var req [2]byte
	binary.BigEndian.PutUint16(req[:], reg)
	payload, err := d.roundTrip(ctx, cmdReadRegister, req[:])
	if err != nil {
		return 0, err
	}
	if len(payload) < 2 {
		return 0, fmt.Errorf("pentair: read %s: reply payload too short", f)
	}
	return binary.BigEndian.Uint16(payload[:2]), nil
}

func (d *Driver) WriteField(ctx context.Context, f pump.Field, v uint16) error {
	// Run/stop is a dedicated power command, not a register write.
	if f == pump.FieldRun {
		_, err := d.roundTrip(ctx, cmdPower, []byte{byte(v)})
		return err
	}
	reg, err := registerFor(f)
	if err != nil {
		return err
	}
	var req [4]byte
	binary.BigEndian.PutUint16(req[:2], reg)
	binary.BigEndian.PutUint16(req[2:], v)
	if _, err := d.roundTrip(ctx, cmdWriteRegister, req[:]); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}
	return nil
}

func (d *Driver) ReadProgram(ctx context.Context, slot int) (pump.ProgramRegs, error) {
	if !pump.ValidSlot(slot) {
		return pump.ProgramRegs{}, fmt.Errorf("pentair: no program slot %d", slot)
	}
	read := func(s pump.ProgramSetting) (int, error) {
		v, err := d.ReadField(ctx, pump.ProgramField(slot, s))
		return int(v), err
	}

	var (
		regs pump.ProgramRegs
		err  error
	)
	if regs.RPM, err = read(pump.ProgramRPM); err != nil {
		return pump.ProgramRegs{}, err
	}
	mode, err := read(pump.ProgramMode)
	if err != nil {
		return pump.ProgramRegs{}, err
	}
	regs.Mode = byte(mode)
	pairs := []struct {
		dst  *[2]int
		h, m pump.ProgramSetting
	}{
		{&regs.ScheduleStart, pump.ProgramScheduleStartHour, pump.ProgramScheduleStartMinute},
		{&regs.ScheduleEnd, pump.ProgramScheduleEndHour, pump.ProgramScheduleEndMinute},
		{&regs.EggTimer, pump.ProgramEggTimerHours, pump.ProgramEggTimerMinutes},
	}
	for _, p := range pairs {
		if p.dst[0], err = read(p.h); err != nil {
			return pump.ProgramRegs{}, err
		}
		if p.dst[1], err = read(p.m); err != nil {
			return pump.ProgramRegs{}, err
		}
	}
	return regs, nil
}

// Clock reads the device date-time (cmd 0x03). Payload:
// hour, minute, weekday, day, month, year-2000, dst.
func (d *Driver) Clock(ctx context.Context) (pump.Clock, error) {
	payload, err := d.roundTrip(ctx, cmdReadClock, nil)
	if err != nil {
		return pump.Clock{}, err
	}
	if len(payload) < 7 {
		return pump.Clock{}, fmt.Errorf("pentair: clock payload too short: %d bytes", len(payload))
	}
	return pump.Clock{
		Hour:    int(payload[0]),
		Minute:  int(payload[1]),
		Weekday: payload[2],
		Day:     int(payload[3]),
		Month:   int(payload[4]),
		Year:    2000 + int(payload[5]),
		DST:     payload[6] != 0,
	}, nil
}

func (d *Driver) Close() error {
	return d.port.Close()
}
