package id

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// Sequence hands out increasing int64 ids. It is safe for concurrent use.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start)
	return s
}

// NewClockSequence starts at the current unix time in microseconds so ids stay
// increasing across restarts.
func NewClockSequence() *Sequence {
	return NewSequence(time.Now().UnixMicro())
}

func (s *Sequence) NextID() int64 {
	return s.last.Add(1)
}

// Observe moves the sequence past an id that was issued elsewhere.
func (s *Sequence) Observe(v int64) {
	for {
		cur := s.last.Load()
		if v <= cur || s.last.CompareAndSwap(cur, v) {
			return
		}
	}
}
