package audit

import (
	"sync"

	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated  = "appointment_created"
	ActionAppointmentUpdated  = "appointment_updated"
	ActionAppointmentDeleted  = "appointment_deleted"
	ActionAppointmentConflict = "appointment_conflict"
)

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Sink persiste um evento. Chamado apenas pelo worker.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, size int, log *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Warn("audit error", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close esvazia a fila e espera o worker. Dispatch após Close é proibido.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
