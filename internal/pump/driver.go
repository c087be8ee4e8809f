// Package pump defines the contract between the HTTP layer and the pump
// driver that owns the RS-485 wire protocol. Everything the device knows is
// read and written through a Driver; this package holds no authoritative
// copy of device state.
package pump

import "context"

// Run codes reported by the device in the status frame.
const (
	RunStarted byte = 0x0A
	RunStopped byte = 0x04
)

// IsRunning reports whether a status run code means the motor is turning.
// Only 0x0A does; every other code counts as stopped.
func IsRunning(run byte) bool {
	return run == RunStarted
}

// Status is the raw status snapshot returned by the device.
type Status struct {
	Run    byte
	Mode   byte
	Watts  int
	RPM    int
	Hour   int
	Minute int
}

// Clock is the device-resident date and time.
type Clock struct {
	Hour    int
	Minute  int
	Weekday byte
	Day     int
	Month   int
	Year    int
	DST     bool
}

// ProgramRegs holds the raw registers of one schedule slot.
type ProgramRegs struct {
	RPM           int
	Mode          byte
	ScheduleStart [2]int
	ScheduleEnd   [2]int
	EggTimer      [2]int
}

// Write is a single pending register write, produced by the validation
// layer and consumed by a Driver.
type Write struct {
	Field Field
	Value uint16
}

// Driver is the collaborator that speaks the vendor protocol on the bus.
// Implementations own framing, addressing, checksums and retries; callers
// only see fields and values.
type Driver interface {
	Status(ctx context.Context) (Status, error)
	ReadField(ctx context.Context, f Field) (uint16, error)
	WriteField(ctx context.Context, f Field, v uint16) error
	ReadProgram(ctx context.Context, slot int) (ProgramRegs, error)
	Clock(ctx context.Context) (Clock, error)
	Close() error
}
