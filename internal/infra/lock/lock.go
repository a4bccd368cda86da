package lock

import (
	"context"
	"errors"
	"slices"
)

// ErrNotAcquired: o lock não foi obtido antes do prazo ou do cancelamento.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker serializa o check-then-act por responsável. Lock bloqueia até
// obter todas as chaves ou até ctx terminar; unlock libera todas.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// normalize ordena e remove duplicadas para evitar deadlock entre
// chamadores que pedem as mesmas chaves em ordens diferentes.
func normalize(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
