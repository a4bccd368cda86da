package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerExcludes(t *testing.T) {
	l := NewMemoryLocker()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "technician:1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestMemoryLockerTimeout(t *testing.T) {
	l := NewMemoryLocker()

	unlock, err := l.Lock(context.Background(), "field:Maria", "technician:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "technician:2", "technician:1")
	assert.ErrorIs(t, err, ErrNotAcquired)

	// technician:2 deve ter sido liberado na falha
	other, err := l.Lock(context.Background(), "technician:2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "technician:1")
	require.NoError(t, err)
	again()
}

func TestMemoryLockerDuplicateKeys(t *testing.T) {
	l := NewMemoryLocker()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock, err := l.Lock(ctx, "technician:1", "technician:1")
	require.NoError(t, err)
	unlock()
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, normalize([]string{"b", "a", "b"}))
}
