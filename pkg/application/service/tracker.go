package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jwar28/rappiclone/pkg/domain/model"
	domainservice "github.com/jwar28/rappiclone/pkg/domain/service"
)

var ErrOrderNotTracked = errors.New("order is not pending and cannot be tracked")

const (
	DefaultTrackerTicks    = 15
	DefaultTrackerInterval = time.Minute
	DefaultTrackerRetain   = 10 * time.Minute
)

type TrackerConfig struct {
	Ticks        int
	TickInterval time.Duration
	// Retain is how long a finished run stays readable through Progress.
	Retain time.Duration
}

type Progress struct {
	OrderID  uuid.UUID         `json:"order_id"`
	Status   model.OrderStatus `json:"status"`
	TimeLeft int               `json:"time_left"`
	Percent  float64           `json:"progress"`
	Done     bool              `json:"done"`
	Error    string            `json:"error,omitempty"`
}

// DeliveryTracker simulates a delivery with a fixed countdown. The countdown
// lives in memory only, so a restart starts over. Finished runs are dropped
// once the retain period has passed.
type DeliveryTracker interface {
	Start(ctx context.Context, orderID uuid.UUID) (Progress, error)
	Progress(orderID uuid.UUID) (Progress, bool)
	Stop()
}

func NewDeliveryTracker(orders domainservice.OrderService, cfg TrackerConfig) DeliveryTracker {
	if cfg.Ticks <= 0 {
		cfg.Ticks = DefaultTrackerTicks
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTrackerInterval
	}
	if cfg.Retain <= 0 {
		cfg.Retain = DefaultTrackerRetain
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &deliveryTracker{
		orders: orders,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		runs:   make(map[uuid.UUID]*trackingRun),
	}
}

type deliveryTracker struct {
	orders domainservice.OrderService
	cfg    TrackerConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	runs map[uuid.UUID]*trackingRun
}

type trackingRun struct {
	mu       sync.Mutex
	progress Progress
}

func (r *trackingRun) snapshot() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

func (r *trackingRun) update(fn func(p *Progress)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.progress)
}

func (t *deliveryTracker) Start(ctx context.Context, orderID uuid.UUID) (Progress, error) {
	if progress, ok := t.Progress(orderID); ok {
		return progress, nil
	}

	active, err := t.orders.TrackActive(ctx, orderID)
	if err != nil {
		return Progress{}, err
	}
	if len(active) == 0 {
		return Progress{}, ErrOrderNotTracked
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if run, ok := t.runs[orderID]; ok {
		return run.snapshot(), nil
	}

	run := &trackingRun{progress: Progress{
		OrderID:  orderID,
		Status:   model.Pending,
		TimeLeft: t.cfg.Ticks,
	}}
	t.runs[orderID] = run

	t.wg.Add(1)
	go t.countdown(orderID, run)

	log.WithField("order_id", orderID).Info("delivery tracking started")
	return run.snapshot(), nil
}

func (t *deliveryTracker) Progress(orderID uuid.UUID) (Progress, bool) {
	t.mu.Lock()
	run, ok := t.runs[orderID]
	t.mu.Unlock()

	if !ok {
		return Progress{}, false
	}
	return run.snapshot(), true
}

func (t *deliveryTracker) Stop() {
	t.cancel()
	t.wg.Wait()
}

func (t *deliveryTracker) countdown(orderID uuid.UUID, run *trackingRun) {
	defer t.wg.Done()

	t.walk(orderID, run)
	t.retire(orderID)
}

// walk advances the order one stage at a time as the countdown passes each
// third. The stored status is re-read on every tick so manual changes made
// in the meantime are picked up instead of replayed.
func (t *deliveryTracker) walk(orderID uuid.UUID, run *trackingRun) {
	ticker := time.NewTicker(t.cfg.TickInterval)
	defer ticker.Stop()

	logger := log.WithField("order_id", orderID)
	for left := t.cfg.Ticks; left > 0; {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
		}

		left--
		elapsed := t.cfg.Ticks - left
		run.update(func(p *Progress) {
			p.TimeLeft = left
			p.Percent = float64(elapsed) / float64(t.cfg.Ticks) * 100
		})

		status, err := t.advanceTo(orderID, t.stageAt(left))
		if err != nil {
			logger.WithError(err).Error("failed to advance tracked order")
			run.update(func(p *Progress) {
				p.Done = true
				p.Error = err.Error()
			})
			return
		}
		run.update(func(p *Progress) { p.Status = status })

		if status.Terminal() {
			break
		}
	}

	run.update(func(p *Progress) {
		p.Done = true
		p.TimeLeft = 0
		p.Percent = 100
	})
	logger.Info("order delivered")
}

// advanceTo moves the order from its stored status up to target and returns the
// status it ends in. An order already at or past target is left alone.
func (t *deliveryTracker) advanceTo(orderID uuid.UUID, target model.OrderStatus) (model.OrderStatus, error) {
	order, _, err := t.orders.GetOrder(t.ctx, orderID)
	if err != nil {
		return "", err
	}

	status := order.Status
	for !status.Reached(target) {
		next, ok := status.Next()
		if !ok {
			break
		}
		if _, err := t.orders.AdvanceStatus(t.ctx, orderID, next); err != nil {
			return status, err
		}
		status = next
	}
	return status, nil
}

func (t *deliveryTracker) retire(orderID uuid.UUID) {
	timer := time.NewTimer(t.cfg.Retain)
	defer timer.Stop()

	select {
	case <-t.ctx.Done():
		return
	case <-timer.C:
	}

	t.mu.Lock()
	delete(t.runs, orderID)
	t.mu.Unlock()
}

// stageAt maps the remaining ticks to the status the order should be in:
// preparing after the first third, delivering after two thirds, delivered at zero.
func (t *deliveryTracker) stageAt(left int) model.OrderStatus {
	elapsed := t.cfg.Ticks - left
	switch {
	case left == 0:
		return model.Delivered
	case elapsed*3 >= t.cfg.Ticks*2:
		return model.Delivering
	case elapsed*3 >= t.cfg.Ticks:
		return model.Preparing
	default:
		return model.Pending
	}
}
