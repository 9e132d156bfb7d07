package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arunvm123/trainbooking/booking-service/model"
	"github.com/segmentio/kafka-go"
)

const shutdownTimeout = 30 * time.Second

// Reserver runs a reservation end to end
type Reserver interface {
	Reserve(ctx context.Context, trainID string, seatCount int) (model.Reservation, error)
}

// Tracker records the outcome of a request
type Tracker interface {
	Finish(ctx context.Context, msg model.ReservationRequestMessage, res model.Reservation, err error)
}

// MessageReader is the part of *kafka.Reader the processor needs
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ReservationProcessor struct {
	reserver Reserver
	tracker  Tracker
	consumer MessageReader
	logger   *slog.Logger

	// Worker pool for managing goroutines
	workerPool chan chan kafka.Message
	workers    []*ReservationWorker
	wg         sync.WaitGroup

	// Metrics
	processedCount int64
	activeWorkers  int64
}

type ReservationWorker struct {
	id         int
	processor  *ReservationProcessor
	jobChannel chan kafka.Message
	workerPool chan chan kafka.Message
	quit       chan struct{}
}

func NewReservationProcessor(reserver Reserver, tracker Tracker, consumer MessageReader, maxWorkers int, logger *slog.Logger) *ReservationProcessor {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	processor := &ReservationProcessor{
		reserver:   reserver,
		tracker:    tracker,
		consumer:   consumer,
		logger:     logger,
		workerPool: make(chan chan kafka.Message, maxWorkers),
		workers:    make([]*ReservationWorker, maxWorkers),
	}

	// Initialize worker pool
	for i := 0; i < maxWorkers; i++ {
		processor.workers[i] = &ReservationWorker{
			id:         i,
			processor:  processor,
			jobChannel: make(chan kafka.Message),
			workerPool: processor.workerPool,
			quit:       make(chan struct{}),
		}
	}

	return processor
}

// Start consumes reservation requests until ctx is cancelled
func (p *ReservationProcessor) Start(ctx context.Context) error {
	p.logger.Info("starting reservation processor", "workers", len(p.workers))

	for _, worker := range p.workers {
		p.wg.Add(1)
		worker.start()
	}

	go p.reportMetrics(ctx)

	for {
		msg, err := p.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.shutdown()
				return ctx.Err()
			}
			p.logger.Warn("error reading message", "error", err)
			continue
		}

		// Dispatch to worker pool (blocks if all workers busy)
		select {
		case jobChannel := <-p.workerPool:
			jobChannel <- msg
		case <-ctx.Done():
			p.shutdown()
			return ctx.Err()
		}
	}
}

// Processed returns how many messages the workers have handled
func (p *ReservationProcessor) Processed() int64 {
	return atomic.LoadInt64(&p.processedCount)
}

func (w *ReservationWorker) start() {
	go func() {
		defer w.processor.wg.Done()
		for {
			// Register this worker in the pool
			select {
			case w.workerPool <- w.jobChannel:
			case <-w.quit:
				return
			}

			select {
			case job := <-w.jobChannel:
				atomic.AddInt64(&w.processor.activeWorkers, 1)

				if err := w.processor.processRequest(job); err != nil {
					w.processor.logger.Error("failed to process reservation request", "worker", w.id, "error", err)
				}

				atomic.AddInt64(&w.processor.processedCount, 1)
				atomic.AddInt64(&w.processor.activeWorkers, -1)

			case <-w.quit:
				return
			}
		}
	}()
}

// shutdown stops all workers and waits for in-flight requests
func (p *ReservationProcessor) shutdown() {
	p.logger.Info("shutting down reservation processor workers")

	for _, worker := range p.workers {
		close(worker.quit)
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("all workers finished gracefully")
	case <-time.After(shutdownTimeout):
		p.logger.Warn("shutdown timeout reached, forcing exit",
			"active_workers", atomic.LoadInt64(&p.activeWorkers))
	}
}

// reportMetrics logs throughput periodically
func (p *ReservationProcessor) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.logger.Info("reservation processor metrics",
				"processed", atomic.LoadInt64(&p.processedCount),
				"active_workers", atomic.LoadInt64(&p.activeWorkers))
		}
	}
}

// processRequest runs one queued request through the orchestrator. It runs on a
// background context so a shutdown does not abandon a half-finished reservation.
func (p *ReservationProcessor) processRequest(msg kafka.Message) error {
	var req model.ReservationRequestMessage
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal reservation request: %w", err)
	}
	if req.RequestID == "" {
		return errors.New("reservation request without request id")
	}

	ctx := context.Background()
	p.logger.Debug("processing reservation request", "request_id", req.RequestID, "train_id", req.TrainID)

	res, err := p.reserver.Reserve(ctx, req.TrainID, req.SeatCount)
	p.tracker.Finish(ctx, req, res, err)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.RequestID, err)
	}
	return nil
}
