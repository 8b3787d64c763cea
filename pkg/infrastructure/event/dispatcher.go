package event

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jwar28/rappiclone/pkg/common/domain"
)

type Handler func(event domain.Event) error

// Dispatcher logs every domain event and hands it to the handlers subscribed
// to its type. Handlers run synchronously in subscription order.
type Dispatcher interface {
	domain.EventDispatcher
	Subscribe(eventType string, handler Handler)
}

func NewDispatcher(logger log.FieldLogger) Dispatcher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &dispatcher{logger: logger, handlers: make(map[string][]Handler)}
}

type dispatcher struct {
	logger log.FieldLogger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

func (d *dispatcher) Subscribe(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

func (d *dispatcher) Dispatch(event domain.Event) error {
	d.logger.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")

	d.mu.RLock()
	handlers := d.handlers[event.Type()]
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			d.logger.WithError(err).WithField("event", event.Type()).Error("event handler failed")
			return errors.Wrapf(err, "failed to handle %s", event.Type())
		}
	}
	return nil
}
