package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000
	err := For(context.Background(), n, func(_ context.Context, _ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(n), counter)
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	err := For(context.Background(), 5, func(_ context.Context, i int) error {
		order = append(order, i)
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_BoundedWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3}

	var running, peak int64
	err := For(context.Background(), 64, func(_ context.Context, _ int) error {
		now := atomic.AddInt64(&running, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if now <= p || atomic.CompareAndSwapInt64(&peak, p, now) {
				break
			}
		}
		atomic.AddInt64(&running, -1)
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.LessOrEqual(t, peak, int64(3))
}

func TestFor_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	for _, cfg := range []Config{{Enabled: false}, {Enabled: true, NumWorkers: 4}} {
		err := For(context.Background(), 100, func(_ context.Context, i int) error {
			if i == 7 {
				return boom
			}
			return nil
		}, cfg)
		assert.ErrorIs(t, err, boom)
	}
}

func TestFor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	err := For(ctx, 10, func(_ context.Context, _ int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	}, Config{Enabled: false})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestMap(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4}

	out, err := Map(context.Background(), 50, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	}, cfg)

	require.NoError(t, err)
	require.Len(t, out, 50)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}

	_, err = Map(context.Background(), 3, func(_ context.Context, i int) (int, error) {
		return 0, errors.New("nope")
	}, cfg)
	assert.Error(t, err)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000
	work := func(_ context.Context, i int) error {
		_ = i * i
		return nil
	}

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = For(context.Background(), n, work, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			_ = For(context.Background(), n, work, cfgSeq)
		}
	})
}
