package r307

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T, responses ...[]byte) (Client, *MockPort) {
	t.Helper()
	port := &MockPort{}
	for _, r := range responses {
		port.RX.Write(r)
	}
	return NewClientWithTransport(NewTransportWithPort(Config{}, port)), port
}

func sentPayload(t *testing.T, port *MockPort) []byte {
	t.Helper()
	pid, _, payload, err := ReadPacket(&port.TX)
	require.NoError(t, err)
	require.Equal(t, byte(pidCommand), pid)
	return payload
}

func TestGenImgNoFinger(t *testing.T) {
	client, port := newMockClient(t, ackPacket(t, CodeNoFinger))

	err := client.GenImg(context.Background())
	assert.ErrorIs(t, err, ErrNoFinger)
	assert.NotErrorIs(t, err, ErrImageMessy)
	assert.Equal(t, []byte{insGenImg}, sentPayload(t, port))
}

func TestStoreEncodesBufferAndPage(t *testing.T) {
	client, port := newMockClient(t, ackPacket(t, CodeOK))

	require.NoError(t, client.Store(context.Background(), CharBuffer1, 0x0102))
	assert.Equal(t, []byte{insStore, CharBuffer1, 0x01, 0x02}, sentPayload(t, port))
}

func TestHighSpeedSearch(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		client, port := newMockClient(t, ackPacket(t, CodeOK, 0x00, 0x05, 0x00, 0x64))

		res, err := client.HighSpeedSearch(context.Background(), CharBuffer1, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, uint16(5), res.PageID)
		assert.Equal(t, uint16(100), res.Score)
		assert.Equal(t, []byte{insHighSpeedSearch, CharBuffer1, 0x00, 0x00, 0x03, 0xE8}, sentPayload(t, port))
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newMockClient(t, ackPacket(t, CodeNotFound, 0x00, 0x00, 0x00, 0x00))

		res, err := client.HighSpeedSearch(context.Background(), CharBuffer1, 0, 1000)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTemplateCountAndVerifyPassword(t *testing.T) {
	client, port := newMockClient(t,
		ackPacket(t, CodeOK),
		ackPacket(t, CodeOK, 0x00, 0x2A),
	)

	require.NoError(t, client.VerifyPassword(context.Background()))
	assert.Equal(t, []byte{insVerifyPassword, 0, 0, 0, 0}, sentPayload(t, port))

	n, err := client.TemplateCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestReadSystemParameters(t *testing.T) {
	client, _ := newMockClient(t, ackPacket(t, CodeOK,
		0x00, 0x00, // status
		0x00, 0x09, // system id
		0x03, 0xE8, // library size 1000
		0x00, 0x03, // security level
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x02,
		0x00, 0x06,
	))

	params, err := client.ReadSystemParameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(1000), params.LibrarySize)
	assert.Equal(t, uint16(6), params.BaudMultiplier)
}

func TestCommandHonoursCancelledContext(t *testing.T) {
	client, port := newMockClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, client.Empty(ctx), context.Canceled)
	assert.Zero(t, port.TX.Len())
}
