package ops

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, payload []byte) ([]byte, error) {
	return append([]byte("echo:"), payload...), nil
}

func TestLocalMessengerRoutesByAddress(t *testing.T) {
	m := NewLocalMessenger(1)
	addr := NewAddress(1, 5)
	require.NoError(t, m.CreateMailbox(addr, echo))

	out, err := m.Send(context.Background(), addr, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", string(out))

	_, err = m.Send(context.Background(), NewAddress(1, 6), nil)
	assert.True(t, errors.Is(err, ErrNoMailbox))
}

func TestLocalMessengerRejectsDuplicateMailbox(t *testing.T) {
	m := NewLocalMessenger(1)
	addr := NewAddress(1, 5)
	require.NoError(t, m.CreateMailbox(addr, echo))
	assert.True(t, errors.Is(m.CreateMailbox(addr, echo), ErrMailboxExists))
	assert.Error(t, m.CreateMailbox(NewAddress(1, 7), nil))

	m.RemoveMailbox(addr)
	require.NoError(t, m.CreateMailbox(addr, echo))
}

func TestLocalMessengerHonorsCancellation(t *testing.T) {
	m := NewLocalMessenger(1)
	addr := NewAddress(1, 5)
	require.NoError(t, m.CreateMailbox(addr, echo))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Send(ctx, addr, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
