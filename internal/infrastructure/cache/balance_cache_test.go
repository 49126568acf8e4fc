package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = strconv.FormatInt(value.(int64), 10)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type countingSource struct {
	calls   atomic.Int64
	balance atomic.Int64
	delay   time.Duration
	// duringRead se ejecuta después de leer el saldo y antes de devolverlo.
	duringRead func()
}

func newSource(balance int64) *countingSource {
	s := &countingSource{}
	s.balance.Store(balance)
	return s
}

func (s *countingSource) Balance(context.Context, int64) (int64, error) {
	s.calls.Add(1)
	v := s.balance.Load()
	time.Sleep(s.delay)
	if s.duringRead != nil {
		s.duringRead()
	}
	return v, nil
}

func TestBalanceCache_MissThenHit(t *testing.T) {
	rdb := newFakeRedis()
	src := newSource(7)
	c := NewBalanceCache(rdb, src, time.Minute, nil)

	got, err := c.Balance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	src.balance.Store(99)
	got, err = c.Balance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got, "segunda lectura desde caché")
	assert.Equal(t, int64(1), src.calls.Load())
}

func TestBalanceCache_InvalidatedOnAppend(t *testing.T) {
	rdb := newFakeRedis()
	src := newSource(10)
	c := NewBalanceCache(rdb, src, time.Minute, nil)

	_, err := c.Balance(context.Background(), 3)
	require.NoError(t, err)

	src.balance.Store(6)
	c.MovementAppended(context.Background(), &entity.StockMovement{ProductID: 3, Type: entity.MovementTypeOutbound, Quantity: 4})

	got, err := c.Balance(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
	assert.Equal(t, int64(2), src.calls.Load())
}

func TestBalanceCache_RedisDownFallsBackToSource(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	src := newSource(4)
	c := NewBalanceCache(rdb, src, time.Minute, nil)

	got, err := c.Balance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestBalanceCache_ConcurrentMissesCollapse(t *testing.T) {
	rdb := newFakeRedis()
	src := newSource(5)
	src.delay = 50 * time.Millisecond
	c := NewBalanceCache(rdb, src, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Balance(context.Background(), 9)
			assert.NoError(t, err)
			assert.Equal(t, int64(5), got)
		}()
	}
	wg.Wait()
	assert.Less(t, src.calls.Load(), int64(10))
}

func TestBalanceCache_LateSetAfterAppendIsNotServed(t *testing.T) {
	rdb := newFakeRedis()
	src := newSource(10)
	c := NewBalanceCache(rdb, src, time.Minute, nil)
	ctx := context.Background()

	// El lector ya sumó el libro viejo cuando el escritor confirma e invalida.
	src.duringRead = func() {
		src.duringRead = nil
		src.balance.Store(3)
		c.MovementAppended(ctx, &entity.StockMovement{ProductID: 5, Type: entity.MovementTypeOutbound, Quantity: 7})
	}
	got, err := c.Balance(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got, "la lectura en curso devuelve lo que sumó")

	got, err = c.Balance(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got, "el valor tardío no se vuelve a servir")
	assert.Equal(t, int64(2), src.calls.Load())
}
