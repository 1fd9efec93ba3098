package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
)

// OrderFacade exposes the subset of application functionality required by the
// expirer.
type OrderFacade interface {
	StaleOrders(ctx context.Context, age time.Duration, limit int) ([]int64, error)
	CancelOrder(ctx context.Context, orderID int64) (*model.Order, error)
}

// OrderExpirer periodically cancels orders that were never confirmed, so
// abandoned carts stop holding reserved stock. Cancellation goes through the
// engine, which returns the stock and keeps the usual transaction guarantees.
type OrderExpirer struct {
	facade    OrderFacade
	age       time.Duration
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderExpirer constructs the expirer worker pool. An age of zero disables
// it.
func NewOrderExpirer(facade OrderFacade, age, interval time.Duration, batchSize, workers int, logger *slog.Logger) *OrderExpirer {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OrderExpirer{
		facade:    facade,
		age:       age,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan int64, batchSize*workers),
	}
}

// Start launches background processing. A disabled expirer starts nothing.
func (e *OrderExpirer) Start(ctx context.Context) {
	if e.age <= 0 {
		e.logger.Info("order expirer disabled")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(runCtx)
	}

	e.wg.Add(1)
	go e.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (e *OrderExpirer) Stop() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *OrderExpirer) dispatch(ctx context.Context) {
	defer e.wg.Done()
	defer close(e.jobs)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.fetchAndDispatch(ctx)
		}
	}
}

func (e *OrderExpirer) fetchAndDispatch(ctx context.Context) {
	ids, err := e.facade.StaleOrders(ctx, e.age, e.batchSize)
	if err != nil {
		e.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		case e.jobs <- id:
		}
	}
}

func (e *OrderExpirer) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-e.jobs:
			if !ok {
				return
			}
			e.expireOrder(ctx, id)
		}
	}
}

func (e *OrderExpirer) expireOrder(ctx context.Context, id int64) {
	_, err := e.facade.CancelOrder(ctx, id)
	switch {
	case err == nil:
		e.logger.Info("expired stale order", slog.Int64("order", id))
	case errors.Is(err, domainErrors.ErrAlreadyCancelled), errors.Is(err, domainErrors.ErrOrderNotFound):
		// Someone else got there first.
	case errors.Is(err, domainErrors.ErrBusy):
		e.logger.Warn("stale order busy, will retry next sweep", slog.Int64("order", id))
	default:
		e.logger.Error("expire stale order failed", slog.Int64("order", id), slog.String("error", err.Error()))
	}
}
