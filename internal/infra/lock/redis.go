package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "solar-scheduler:lock:"

// só apaga se o valor ainda for o token de quem travou
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renova o TTL com a mesma checagem de dono
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker usa SET NX PX com token por aquisição, para várias
// instâncias da API compartilharem o mesmo lock. Enquanto o lock está
// preso o TTL é renovado a cada ttl/3.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	log    *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  25 * time.Millisecond,
		log:    log,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	token := uuid.NewString()
	held := make([]string, 0, len(keys))

	for _, key := range keys {
		if err := l.acquire(ctx, keyPrefix+key, token); err != nil {
			l.release(held, token)
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, err)
		}
		held = append(held, key)
	}

	stop := l.keepAlive(held, token)

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			stop()
			l.release(held, token)
		})
	}

	l.log.Debug("lock acquired", zap.Strings("keys", keys), zap.String("token", token))
	return unlock, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// release não depende do ctx da requisição, que pode já estar cancelado.
func (l *RedisLocker) release(held []string, token string) {
	bg, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(held) - 1; i >= 0; i-- {
		if err := unlockScript.Run(bg, l.client, []string{keyPrefix + held[i]}, token).Err(); err != nil {
			l.log.Warn("redis unlock failed", zap.String("key", held[i]), zap.Error(err))
		}
	}
}

// keepAlive renova os locks até o stop devolvido ser chamado.
func (l *RedisLocker) keepAlive(held []string, token string) (stop func()) {
	every := l.ttl / 3
	if every <= 0 || len(held) == 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				l.renew(held, token, every)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

func (l *RedisLocker) renew(held []string, token string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, key := range held {
		n, err := renewScript.Run(ctx, l.client, []string{keyPrefix + key}, token, l.ttl.Milliseconds()).Int()
		switch {
		case err != nil:
			l.log.Warn("redis lock renew failed", zap.String("key", key), zap.Error(err))
		case n == 0:
			l.log.Error("redis lock lost before release", zap.String("key", key))
		}
	}
}

var _ Locker = (*RedisLocker)(nil)
