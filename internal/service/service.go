package service

import (
	"context"
	"time"

	"poolpump/internal/models"
	"poolpump/internal/pump"
	"poolpump/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Control applies validated settings writes and run/stop commands.
type Control interface {
	Run(ctx context.Context, state bool) error
	Stop(ctx context.Context) error
	Apply(ctx context.Context, p ControlParams) error
}

// Monitoring reads live status and configuration off the device.
type Monitoring interface {
	Status(ctx context.Context) (models.PumpStatus, error)
	Config(ctx context.Context) (models.PumpConfig, error)
}

// Programs edits the device's schedule slots.
type Programs interface {
	Apply(ctx context.Context, p ProgramParams) error
}

// EventLog exposes the append-only command audit log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PumpEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Control
	Monitoring
	Programs
	EventLog
	Authorization
}

// NewService wires the device session and repositories into concrete services.
func NewService(session *pump.Session, repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Control:       NewControlService(session, repos.EventRepo),
		Monitoring:    NewStatusService(session),
		Programs:      NewProgramService(session, repos.EventRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, signingKey),
	}
}

// ControlParams carries the optional fields of POST /control. Nil pointers
// and nil slices mean "field absent"; absent fields produce no device writes.
type ControlParams struct {
	State             *bool
	Speed             *int
	Ramp              *int
	Celsius           *bool
	Fahrenheit        *bool
	Contrast          *int
	Address           *int
	ID                *int
	AMPM              *bool
	MaxRPM            *int
	MinRPM            *int
	QuickRPM          *int
	QuickTimer        []int // [hour, minute]
	PrimeEnable       *bool
	PrimeMaxTime      *int
	PrimeSensitivity  *int
	PrimeDelay        *int
	AntifreezeEnable  *bool
	AntifreezeRPM     *int
	AntifreezeTemp    *int
	SVRSRestartEnable *bool
	SVRSRestartTimer  *int
	TimeOutTimer      []int // [hour, minute]
	RunningProgram    *int
	SelectedProgram   *int
}

// ProgramParams carries the optional fields of POST /program.
type ProgramParams struct {
	ProgramID     int
	RPM           *int
	Mode          *string // MANUAL | EGG_TIMER | SCHEDULE | DISABLED
	ScheduleStart []int   // [hour, minute]
	ScheduleEnd   []int
	EggTimer      []int
}

// LogFilter supports audit history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "RUN", "STOP", "CONTROL", "PROGRAM"
}
