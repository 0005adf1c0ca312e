package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outcome is one recorded call result: true for success.
type outcome bool

const (
	ok   outcome = true
	fail outcome = false
)

func record(b *Breaker, outcomes ...outcome) (last StateChange) {
	for _, o := range outcomes {
		if o {
			_, last = b.RecordSuccess()
		} else {
			_, last = b.RecordFailure()
		}
	}
	return last
}

func TestBreakerDefaults(t *testing.T) {
	b := New("party-cache-individual", WithFailureThreshold(0), WithSuccessThreshold(-1))
	assert.Equal(t, "party-cache-individual", b.Name())
	assert.Equal(t, StateClosed, b.State())

	record(b, fail, fail, fail, fail)
	assert.False(t, b.IsOpen(), "non-positive thresholds keep the defaults")
	change := record(b, fail)
	assert.True(t, change.Opened)
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		recovers int
		outcomes []outcome
		wantOpen bool
		want     StateChange
	}{
		{name: "stays closed below threshold", failures: 3, recovers: 2, outcomes: []outcome{fail, fail}},
		{name: "opens on threshold", failures: 3, recovers: 2, outcomes: []outcome{fail, fail, fail}, wantOpen: true, want: StateChange{Opened: true}},
		{name: "success resets failure streak", failures: 3, recovers: 2, outcomes: []outcome{fail, fail, ok, fail, fail}},
		{name: "further failures while open report no change", failures: 1, recovers: 2, outcomes: []outcome{fail, fail}, wantOpen: true},
		{name: "one success is not enough to close", failures: 1, recovers: 2, outcomes: []outcome{fail, ok}, wantOpen: true},
		{name: "closes after success streak", failures: 1, recovers: 2, outcomes: []outcome{fail, ok, ok}, want: StateChange{Closed: true}},
		{name: "failure resets success streak", failures: 1, recovers: 3, outcomes: []outcome{fail, ok, ok, fail, ok, ok}, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("party-cache", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.recovers))
			got := record(b, tt.outcomes...)
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBreakerReturnValues(t *testing.T) {
	b := New("party-cache", WithFailureThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.True(t, useFallback, "open circuit asks for the fallback")

	usePrimary, _ := b.RecordSuccess()
	assert.False(t, usePrimary, "still open after one success")

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.Equal(t, StateChange{}, change)
}

func TestBreakerConcurrentUse(t *testing.T) {
	b := New("party-cache", WithFailureThreshold(50))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, change := b.RecordFailure(); change.Opened {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.True(t, b.IsOpen())
	assert.Equal(t, 1, opened, "exactly one caller observes the transition")
}
