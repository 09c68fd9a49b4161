package sensor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendterm/internal/domain/ports"
	"attendterm/pkg/r307"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError("capture", nil))
	assert.ErrorIs(t, MapError("capture", fmt.Errorf("wrapped: %w", r307.ErrNoFinger)), ports.ErrNoFinger)
	assert.ErrorIs(t, MapError("search", r307.ErrNotFound), ports.ErrNoMatch)
	assert.ErrorIs(t, MapError("store", context.Canceled), context.Canceled)

	var se *ports.SensorError
	err := MapError("extract", r307.ErrImageMessy)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0x06, se.Code)
	assert.Equal(t, "Messy image", se.Reason)
	assert.Equal(t, "extract", se.Op)

	err = MapError("capture", io.ErrUnexpectedEOF)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, -1, se.Code)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReasonUnknownCode(t *testing.T) {
	assert.Equal(t, "Sensor error", Reason(0x42))
}
