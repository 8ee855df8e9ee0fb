package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// NewEvent preenche o autor a partir da sessão (anônima = sem autor).
func NewEvent(sess session.Session, action, entity string, entityID uint) Event {
	ev := Event{
		Action: action,
		Entity: entity,
	}
	if sess.Authenticated() {
		uid := sess.UserID
		ev.UserID = &uid
	}
	if entityID != 0 {
		id := entityID
		ev.EntityID = &id
	}
	return ev
}

func (e Event) With(metadata any) Event {
	e.Metadata = metadata
	return e
}

type Dispatcher struct {
	logger *Logger
	log    logrus.FieldLogger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100), // buffer seguro
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Write(context.Background(), ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Error("audit error")
		}
	}
}

// Dispatch nunca bloqueia nem falha a operação de negócio. Um dispatcher
// nil descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		metrics.AuditDropped()
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close grava o que estiver na fila e encerra o worker. Dispatch depois
// de Close não é permitido.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
