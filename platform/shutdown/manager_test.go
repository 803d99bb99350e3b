package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePool struct{ closed bool }

func (p *fakePool) Close() { p.closed = true }

func TestManager_ShutdownReverseOrder(t *testing.T) {
	m := New(time.Second, zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		m.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown())
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestManager_ShutdownRunsOnce(t *testing.T) {
	m := New(time.Second, zap.NewNop())
	calls := 0
	m.Add("counter", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, m.Shutdown())
	require.NoError(t, m.Shutdown())
	assert.Equal(t, 1, calls)
}

func TestManager_ShutdownCollectsErrors(t *testing.T) {
	m := New(time.Second, zap.NewNop())
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	m.Add("a", func(context.Context) error { return errA })
	m.Add("ok", func(context.Context) error { return nil })
	m.Add("b", func(context.Context) error { return errB })

	err := m.Shutdown()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestManager_FunctionGetsTimeout(t *testing.T) {
	m := New(20*time.Millisecond, zap.NewNop())
	m.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_WaitReturnsOnContextCancel(t *testing.T) {
	m := New(time.Second, zap.NewNop())
	pool := &fakePool{}
	m.Add("pool", ClosePool(pool))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancel")
	}
	assert.True(t, pool.closed)
}
