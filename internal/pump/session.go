package pump

import (
	"context"
	"sync"
)

// Session owns the single driver handle and serializes every round-trip.
// The RS-485 bus is half-duplex: without this lock, concurrent HTTP requests
// would interleave frames on the wire.
type Session struct {
	mu  sync.Mutex
	drv Driver
}

// NewSession wraps drv so that all device access funnels through one lock.
func NewSession(drv Driver) *Session {
	return &Session{drv: drv}
}

func (s *Session) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.Status(ctx)
}

func (s *Session) ReadField(ctx context.Context, f Field) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.ReadField(ctx, f)
}

func (s *Session) WriteField(ctx context.Context, f Field, v uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.WriteField(ctx, f, v)
}

func (s *Session) ReadProgram(ctx context.Context, slot int) (ProgramRegs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.ReadProgram(ctx, slot)
}

func (s *Session) Clock(ctx context.Context) (Clock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.Clock(ctx)
}

// Close releases the underlying driver handle.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.Close()
}
