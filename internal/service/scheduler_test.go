package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firedEvent struct {
	id   uuid.UUID
	kind ports.TimerKind
}

func collectFires(s *TimerScheduler) <-chan firedEvent {
	ch := make(chan firedEvent, 16)
	s.Bind(func(_ context.Context, id uuid.UUID, kind ports.TimerKind) error {
		ch <- firedEvent{id: id, kind: kind}
		return nil
	})
	return ch
}

func TestTimerScheduler_FiresAfterDelay(t *testing.T) {
	s := NewTimerScheduler(0, time.Millisecond, zerolog.Nop())
	defer s.Shutdown()
	ch := collectFires(s)

	id := uuid.New()
	s.Arm(10*time.Millisecond, id, ports.TimerProcessingOutcome)

	select {
	case ev := <-ch:
		assert.Equal(t, id, ev.id)
		assert.Equal(t, ports.TimerProcessingOutcome, ev.kind)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerScheduler_CancelPreventsFire(t *testing.T) {
	s := NewTimerScheduler(0, time.Millisecond, zerolog.Nop())
	defer s.Shutdown()
	ch := collectFires(s)

	id := uuid.New()
	s.Arm(20*time.Millisecond, id, ports.TimerReversal)
	s.Cancel(id, ports.TimerReversal)

	select {
	case <-ch:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerScheduler_ArmReplacesExisting(t *testing.T) {
	s := NewTimerScheduler(0, time.Millisecond, zerolog.Nop())
	defer s.Shutdown()
	ch := collectFires(s)

	id := uuid.New()
	s.Arm(10*time.Millisecond, id, ports.TimerProofExpiry)
	s.Arm(30*time.Millisecond, id, ports.TimerProofExpiry)

	var fires int
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case <-ch:
			fires++
		case <-deadline:
			assert.Equal(t, 1, fires, "re-arming must replace, not stack")
			return
		}
	}
}

func TestTimerScheduler_CancelAll(t *testing.T) {
	s := NewTimerScheduler(0, time.Millisecond, zerolog.Nop())
	defer s.Shutdown()
	ch := collectFires(s)

	id := uuid.New()
	s.Arm(20*time.Millisecond, id, ports.TimerProcessingOutcome)
	s.Arm(20*time.Millisecond, id, ports.TimerProofExpiry)
	s.CancelAll(id)

	select {
	case <-ch:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerScheduler_RetriesOnError(t *testing.T) {
	s := NewTimerScheduler(3, time.Millisecond, zerolog.Nop())
	defer s.Shutdown()

	var mu sync.Mutex
	calls := 0
	done := make(chan struct{})
	s.Bind(func(_ context.Context, _ uuid.UUID, _ ports.TimerKind) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	})

	s.Arm(time.Millisecond, uuid.New(), ports.TimerReversal)

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, 3, calls)
	case <-time.After(time.Second):
		t.Fatal("callback never succeeded")
	}
}

func TestTimerScheduler_ShutdownStopsTimers(t *testing.T) {
	s := NewTimerScheduler(0, time.Millisecond, zerolog.Nop())
	ch := collectFires(s)

	s.Arm(20*time.Millisecond, uuid.New(), ports.TimerProcessingOutcome)
	s.Shutdown()

	select {
	case <-ch:
		t.Fatal("timer fired after shutdown")
	case <-time.After(100 * time.Millisecond):
	}

	// Arming after shutdown is a no-op.
	s.Arm(time.Millisecond, uuid.New(), ports.TimerReversal)
	select {
	case <-ch:
		t.Fatal("timer armed after shutdown fired")
	case <-time.After(50 * time.Millisecond):
	}
}
