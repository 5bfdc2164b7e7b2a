package connection

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{})

		want := []time.Duration{
			500 * time.Millisecond,
			time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			16 * time.Second,
			MaxBackoff,
			MaxBackoff,
		}
		for i, exp := range want {
			if got := b.Next(); got != exp {
				t.Errorf("Attempt %d: got %v, want %v", i, got, exp)
			}
		}
	})

	t.Run("Jitter", func(t *testing.T) {
		upper := time.Duration(float64(InitialBackoff)*1.25) + time.Millisecond

		samples := make([]time.Duration, 10)
		for i := range samples {
			b := NewBackoffWithConfig(BackoffConfig{Jitter: 0.25})
			samples[i] = b.Next()
		}

		allSame := true
		for i, s := range samples {
			if s < InitialBackoff || s > upper {
				t.Errorf("Sample %d: %v out of expected range [%v, %v]", i, s, InitialBackoff, upper)
			}
			if s != samples[0] {
				allSame = false
			}
		}
		if allSame {
			t.Error("All jittered samples are identical - jitter may not be working")
		}
	})

	t.Run("State", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: 100 * time.Millisecond, Max: time.Second})

		if got := b.State(); got != (BackoffState{Next: 100 * time.Millisecond}) {
			t.Errorf("State() = %+v before any attempt", got)
		}
		b.Next()
		b.Next()
		if got := b.State(); got != (BackoffState{Attempts: 2, Next: 400 * time.Millisecond}) {
			t.Errorf("State() = %+v after two attempts", got)
		}

		b.Reset()
		if got := b.State(); got != (BackoffState{Next: 100 * time.Millisecond}) {
			t.Errorf("State() = %+v after reset", got)
		}
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial:    100 * time.Millisecond,
			Max:        500 * time.Millisecond,
			Multiplier: 3.0,
		})

		expected := []time.Duration{
			100 * time.Millisecond,
			300 * time.Millisecond,
			500 * time.Millisecond,
			500 * time.Millisecond,
		}
		for i, exp := range expected {
			if got := b.Next(); got != exp {
				t.Errorf("Attempt %d: got %v, want %v", i, got, exp)
			}
		}
	})

	t.Run("MaxBelowInitial", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Max: time.Millisecond})
		b.Next()
		if got := b.State().Next; got != time.Second {
			t.Errorf("Next = %v, want 1s", got)
		}
	})
}
