package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/unimarket/model"
)

func TestLogInStateConsumeOnce(t *testing.T) {
	m := NewMemStateStore()
	ctx := context.Background()

	state, err := m.CreateLogInState(ctx)
	require.NoError(t, err)

	ok, err := m.ConsumeLogInState(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.ConsumeLogInState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogInStateExpires(t *testing.T) {
	m := NewMemStateStore()
	ctx := context.Background()

	state, err := m.CreateLogInState(ctx)
	require.NoError(t, err)

	m.SetClock(func() time.Time { return time.Now().Add(stateTTL + time.Minute) })
	ok, err := m.ConsumeLogInState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotifyStateRoundTrip(t *testing.T) {
	m := NewMemStateStore()
	ctx := context.Background()

	state, err := m.CreateNotifyState(ctx, "u1")
	require.NoError(t, err)

	userID, err := m.ConsumeNotifyState(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = m.ConsumeNotifyState(ctx, state)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestNotifyStateExpires(t *testing.T) {
	m := NewMemStateStore()
	ctx := context.Background()

	state, err := m.CreateNotifyState(ctx, "u1")
	require.NoError(t, err)

	m.SetClock(func() time.Time { return time.Now().Add(stateTTL + time.Minute) })
	_, err = m.ConsumeNotifyState(ctx, state)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
