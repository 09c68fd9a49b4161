package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendterm/internal/domain/models"
	"attendterm/internal/infrastructure/gpio"
	"attendterm/internal/infrastructure/logger"
	timesvc "attendterm/internal/service/time"
)

var t0 = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newController() (*Controller, *gpio.VirtualPin, *timesvc.ManualClock) {
	clock := timesvc.NewManualClock(t0)
	pin := gpio.NewVirtualPin(clock)
	return NewController(pin, clock, Config{}, logger.Nop()), pin, clock
}

func TestPollClassifiesByDuration(t *testing.T) {
	tests := []struct {
		name string
		held time.Duration
		want models.Event
	}{
		{"tap", 100 * time.Millisecond, models.EventNext},
		{"just under threshold", 980 * time.Millisecond, models.EventNext},
		{"exactly threshold", time.Second, models.EventSelect},
		{"long hold", 3 * time.Second, models.EventSelect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, pin, _ := newController()
			pin.PressAt(t0, tt.held)
			assert.Equal(t, tt.want, c.Poll())
		})
	}
}

func TestPollIdleReturnsImmediately(t *testing.T) {
	c, _, clock := newController()
	assert.Equal(t, models.EventNone, c.Poll())
	assert.Equal(t, t0, clock.Now())
}

func TestWaitSkipsIdleTime(t *testing.T) {
	c, pin, clock := newController()
	pin.PressAt(t0.Add(2*time.Second), 200*time.Millisecond)

	ev, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.EventNext, ev)
	assert.True(t, clock.Now().After(t0.Add(2*time.Second)))
}

func TestWaitUntilDeadline(t *testing.T) {
	c, pin, clock := newController()
	pin.PressAt(t0.Add(5*time.Second), 200*time.Millisecond)

	ev, err := c.WaitUntil(context.Background(), t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, models.EventNone, ev)
	assert.False(t, clock.Now().Before(t0.Add(time.Second)))
}

func TestWaitCancelled(t *testing.T) {
	c, _, _ := newController()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type brokenPin struct{}

func (brokenPin) Active() (bool, error) { return false, errors.New("read error") }

func TestPinErrorsAreInactive(t *testing.T) {
	c := NewController(brokenPin{}, timesvc.NewManualClock(t0), Config{}, logger.Nop())
	assert.Equal(t, models.EventNone, c.Poll())
}
