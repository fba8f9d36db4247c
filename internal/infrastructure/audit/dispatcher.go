package audit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/domain"
)

const defaultBufferSize = 256

// Dispatcher implements domain.AuditLogger. Events are handed to the
// sink from a single background goroutine; when the buffer is full the
// event is dropped and counted rather than blocking the caller.
type Dispatcher struct {
	sink      Sink
	logger    *zap.Logger
	ch        chan *domain.AuditEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher starts the delivery goroutine. A nil sink falls back to
// structured logging so events stay visible without a broker.
func NewDispatcher(sink Sink, bufferSize int, logger *zap.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}

	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		ch:     make(chan *domain.AuditEvent, bufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.ch:
			d.emit(event)
		case <-d.done:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case event := <-d.ch:
					d.emit(event)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) emit(event *domain.AuditEvent) {
	if err := d.sink.Emit(context.Background(), event); err != nil {
		d.logger.Warn("audit event delivery failed",
			zap.String("action", string(event.Action)),
			zap.Error(err),
		)
	}
}

// Log implements domain.AuditLogger. It never blocks and never fails;
// a full buffer drops the event and bumps the drop counter.
func (d *Dispatcher) Log(_ context.Context, event *domain.AuditEvent) {
	if d == nil || d.closed.Load() || event == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	select {
	case d.ch <- event:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

// Close stops intake, drains buffered events, and waits for delivery
// to finish.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports how many events were discarded due to a full buffer
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
