package service

import (
	"context"
	"sync"
	"time"

	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TimerCallback is invoked when an armed timer fires.
type TimerCallback func(ctx context.Context, withdrawalID uuid.UUID, kind ports.TimerKind) error

type timerKey struct {
	id   uuid.UUID
	kind ports.TimerKind
}

// TimerScheduler implements ports.Scheduler on in-process timers. Each
// (withdrawalID, kind) pair holds at most one pending timer; arming an
// existing key replaces it. Callbacks that fail with a transient error
// are retried with exponential backoff; the stale-timer guard in the
// callback itself makes a late or duplicate fire harmless.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[timerKey]*time.Timer
	closed bool

	cb       TimerCallback
	retryMax int
	backoff  time.Duration
	log      zerolog.Logger
}

// NewTimerScheduler creates an unbound scheduler. Bind must be called
// before any timer fires; construction order in main makes this safe.
func NewTimerScheduler(retryMax int, backoff time.Duration, log zerolog.Logger) *TimerScheduler {
	return &TimerScheduler{
		timers:   make(map[timerKey]*time.Timer),
		retryMax: retryMax,
		backoff:  backoff,
		log:      log,
	}
}

// Bind sets the callback invoked on timer fire. It resolves the
// construction cycle between the scheduler and the withdrawal service.
func (s *TimerScheduler) Bind(cb TimerCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = cb
}

// Arm schedules a delayed transition event, replacing any pending timer
// for the same (withdrawalID, kind).
func (s *TimerScheduler) Arm(delay time.Duration, withdrawalID uuid.UUID, kind ports.TimerKind) {
	key := timerKey{id: withdrawalID, kind: kind}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if old, ok := s.timers[key]; ok {
		old.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() { s.fire(key) })

	s.log.Debug().
		Str("withdrawal_id", withdrawalID.String()).
		Str("kind", string(kind)).
		Dur("delay", delay).
		Msg("timer armed")
}

// Cancel drops the pending timer for (withdrawalID, kind), if any.
func (s *TimerScheduler) Cancel(withdrawalID uuid.UUID, kind ports.TimerKind) {
	key := timerKey{id: withdrawalID, kind: kind}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// CancelAll drops every pending timer for the withdrawal.
func (s *TimerScheduler) CancelAll(withdrawalID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		if key.id == withdrawalID {
			t.Stop()
			delete(s.timers, key)
		}
	}
}

// Shutdown stops all pending timers. In-flight callbacks finish on their
// own goroutines.
func (s *TimerScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *TimerScheduler) fire(key timerKey) {
	s.mu.Lock()
	delete(s.timers, key)
	cb := s.cb
	s.mu.Unlock()

	if cb == nil {
		s.log.Error().
			Str("withdrawal_id", key.id.String()).
			Str("kind", string(key.kind)).
			Msg("timer fired before callback bound")
		return
	}

	ctx := context.Background()
	backoff := s.backoff
	var err error
	for attempt := 0; attempt <= s.retryMax; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		if err = cb(ctx, key.id, key.kind); err == nil {
			return
		}
		s.log.Warn().Err(err).
			Str("withdrawal_id", key.id.String()).
			Str("kind", string(key.kind)).
			Int("attempt", attempt+1).
			Msg("timer callback failed")
	}

	metrics.TimerFires.WithLabelValues(string(key.kind), "error").Inc()
	s.log.Error().Err(err).
		Str("withdrawal_id", key.id.String()).
		Str("kind", string(key.kind)).
		Msg("timer callback exhausted retries")
}
