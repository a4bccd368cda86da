package appointment

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
)

// Selector escolhe um técnico entre os candidatos que atendem a janela.
// candidates nunca é vazio.
type Selector interface {
	Pick(candidates []TechnicianAvailability) TechnicianAvailability
}

const (
	SelectionRandom      = "random"
	SelectionRoundRobin  = "round_robin"
	SelectionLeastLoaded = "least_loaded"
)

func NewSelector(policy string) (Selector, error) {
	switch policy {
	case "", SelectionRandom:
		return RandomSelector{}, nil
	case SelectionRoundRobin:
		return &RoundRobinSelector{}, nil
	case SelectionLeastLoaded:
		return LeastLoadedSelector{}, nil
	}
	return nil, fmt.Errorf("unknown selection policy %q", policy)
}

// RandomSelector: escolha uniforme.
type RandomSelector struct{}

func (RandomSelector) Pick(candidates []TechnicianAvailability) TechnicianAvailability {
	return candidates[rand.IntN(len(candidates))]
}

type RoundRobinSelector struct {
	next atomic.Uint64
}

func (s *RoundRobinSelector) Pick(candidates []TechnicianAvailability) TechnicianAvailability {
	n := s.next.Add(1) - 1
	return candidates[n%uint64(len(candidates))]
}

// LeastLoadedSelector prefere quem tem mais tempo livre no dia.
// Empate: o primeiro na ordem recebida.
type LeastLoadedSelector struct{}

func (LeastLoadedSelector) Pick(candidates []TechnicianAvailability) TechnicianAvailability {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.FreeTime() > best.FreeTime() {
			best = c
		}
	}
	return best
}
