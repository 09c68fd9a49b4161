package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
	"attendterm/internal/infrastructure/gpio"
	"attendterm/internal/infrastructure/logger"
	"attendterm/internal/infrastructure/sensor"
	"attendterm/internal/service/input"
	"attendterm/internal/service/registry"
	timesvc "attendterm/internal/service/time"
	"attendterm/pkg/r307"
)

var t0 = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

type memRepo struct {
	doc     *models.RegistryDocument
	saveErr error
}

func (m *memRepo) Load() (*models.RegistryDocument, error) {
	if m.doc == nil {
		return models.NewRegistryDocument(), nil
	}
	return m.doc.Clone(), nil
}

func (m *memRepo) Save(doc *models.RegistryDocument) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = doc.Clone()
	return nil
}

type fixture struct {
	sensor   *sensor.Fake
	repo     *memRepo
	registry *registry.Registry
	pin      *gpio.VirtualPin
	clock    *timesvc.ManualClock
	driver   *Driver
}

func newFixture(capacity int) *fixture {
	f := &fixture{
		sensor: sensor.NewFake(capacity),
		repo:   &memRepo{},
		clock:  timesvc.NewManualClock(t0),
	}
	log := logger.Nop()
	f.registry = registry.Open(f.repo, log)
	f.pin = gpio.NewVirtualPin(f.clock)
	in := input.NewController(f.pin, f.clock, input.Config{}, log)
	f.driver = NewDriver(f.sensor, f.registry, in, f.clock, Config{}, log)
	return f
}

func TestEnrollAssignsIncreasingSlots(t *testing.T) {
	f := newFixture(100)

	f.sensor.Script(7, 0, 7)
	slot, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	f.sensor.Script(8, 8, 0, 8)
	slot, err = f.driver.Enroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, slot)

	assert.Equal(t, []int{1, 2}, f.sensor.Slots())
	assert.Equal(t, 3, f.registry.NextID())
	assert.Equal(t, 3, f.repo.doc.NextID)
	assert.Len(t, f.repo.doc.Fingerprints, 2)
	assert.Contains(t, f.repo.doc.Fingerprints[0].Meta, "enrolled 2026-10-18T09:00")
}

func TestEnrollReportsSteps(t *testing.T) {
	f := newFixture(100)
	var steps []Step
	f.driver.OnStep = func(s Step) { steps = append(steps, s) }

	f.sensor.Script(7, 0, 7)
	_, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Step{
		StepPlaceFinger, StepProcessing, StepRemoveFinger, StepPlaceAgain, StepProcessing,
	}, steps)
}

func TestEnrollDifferentFingerLeavesRegistryUnchanged(t *testing.T) {
	f := newFixture(100)

	f.sensor.Script(7, 0, 8)
	slot, err := f.driver.Enroll(context.Background())
	assert.Zero(t, slot)

	var se *ports.SensorError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int(r307.CodeCombineFail), se.Code)
	assert.Equal(t, 1, f.registry.NextID())
	assert.Empty(t, f.sensor.Slots())
	assert.Nil(t, f.repo.doc)
}

func TestEnrollFailureAtEachStep(t *testing.T) {
	tests := []struct {
		op   string
		code byte
	}{
		{"capture", r307.CodePacketError},
		{"extract", r307.CodeFewFeatures},
		{"create model", r307.CodeCombineFail},
		{"store", r307.CodeFlashError},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			f := newFixture(100)
			f.sensor.Script(7, 0, 7)
			require.NoError(t, f.registry.Commit(1, "existing"))
			before := f.registry.Snapshot()

			f.sensor.FailNext(tt.op, tt.code)
			slot, err := f.driver.Enroll(context.Background())

			assert.Zero(t, slot)
			var se *ports.SensorError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, int(tt.code), se.Code)
			assert.Equal(t, before, f.registry.Snapshot())
			assert.Empty(t, f.sensor.Slots())
		})
	}
}

func TestEnrollAbortedBySelect(t *testing.T) {
	f := newFixture(100)
	f.pin.PressAt(t0.Add(500*time.Millisecond), 1500*time.Millisecond)

	slot, err := f.driver.Enroll(context.Background())
	assert.Zero(t, slot)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, f.registry.NextID())
}

func TestEnrollShortPressDoesNotAbort(t *testing.T) {
	f := newFixture(100)
	f.pin.PressAt(t0, 200*time.Millisecond)
	f.sensor.Script(0, 0, 7, 0, 7)

	slot, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
}

func TestEnrollLibraryFull(t *testing.T) {
	f := newFixture(1)
	f.sensor.Script(7, 0, 7)
	_, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)

	slot, err := f.driver.Enroll(context.Background())
	assert.Zero(t, slot)
	assert.ErrorIs(t, err, ErrLibraryFull)
}

func TestEnrollRollsBackWhenRegistryWriteFails(t *testing.T) {
	f := newFixture(100)
	f.repo.saveErr = errors.New("flash worn out")
	f.sensor.Script(7, 0, 7)

	slot, err := f.driver.Enroll(context.Background())
	assert.Zero(t, slot)
	assert.Error(t, err)
	assert.Empty(t, f.sensor.Slots())
	assert.Contains(t, f.sensor.Calls, "delete")
	assert.Equal(t, 1, f.registry.NextID())
}

func TestIdentify(t *testing.T) {
	f := newFixture(100)
	f.sensor.Script(7, 0, 7)
	_, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)
	before := f.registry.Snapshot()

	f.sensor.Script(7)
	match, err := f.driver.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, match.Slot)

	f.sensor.Script(9)
	match, err = f.driver.Identify(context.Background())
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Zero(t, match.Slot)

	f.sensor.FailNext("extract", r307.CodeImageMessy)
	f.sensor.Script(7)
	match, err = f.driver.Identify(context.Background())
	assert.Error(t, err)
	assert.Zero(t, match.Slot)

	assert.Equal(t, before, f.registry.Snapshot())
	assert.Equal(t, []int{1}, f.sensor.Slots())
}

func TestIdentifyEmptyRegistry(t *testing.T) {
	f := newFixture(100)
	f.sensor.Script(7)

	match, err := f.driver.Identify(context.Background())
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Zero(t, match.Slot)
}

func TestEraseAll(t *testing.T) {
	f := newFixture(100)
	f.sensor.Script(7, 0, 7)
	_, err := f.driver.Enroll(context.Background())
	require.NoError(t, err)

	t.Run("sensor failure keeps registry", func(t *testing.T) {
		f.sensor.FailNext("erase", r307.CodeClearFail)
		assert.Error(t, f.driver.EraseAll(context.Background()))
		assert.Equal(t, 2, f.registry.NextID())
		assert.Equal(t, []int{1}, f.sensor.Slots())
	})

	t.Run("success clears both", func(t *testing.T) {
		require.NoError(t, f.driver.EraseAll(context.Background()))
		assert.Equal(t, models.NewRegistryDocument(), f.registry.Snapshot())
		assert.Equal(t, models.NewRegistryDocument(), f.repo.doc)
		assert.Empty(t, f.sensor.Slots())
	})
}
