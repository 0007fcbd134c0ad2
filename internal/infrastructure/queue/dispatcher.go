// Package queue fans friendship audit events out to a fixed pool of workers.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher routes friendship events to a fixed set of workers using
// consistent hashing on the friendship id, guaranteeing per-friendship
// event ordering.
type Dispatcher struct {
	workers []chan domain.FriendshipEvent
	store   ports.FriendshipEventStore
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.FriendshipEventStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.FriendshipEvent, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.FriendshipEvent, channelBuffer)
	}
	return d
}

var _ ports.FriendshipEventPublisher = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers drain what is already queued
// and stop when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands event to the worker responsible for its friendship. It never
// blocks: when that worker's buffer is full the event is dropped.
func (d *Dispatcher) Publish(event domain.FriendshipEvent) {
	idx := d.shardIndex(event.FriendshipID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Uint64("friendship_id", event.FriendshipID).
			Str("status", string(event.Status)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a friendship id deterministically to a worker index.
func (d *Dispatcher) shardIndex(friendshipID uint64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(friendshipID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.FriendshipEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.persist(context.WithoutCancel(ctx), id, event)
		}
	}
}

// drain flushes whatever is still buffered after shutdown was requested.
func (d *Dispatcher) drain(id int, ch <-chan domain.FriendshipEvent) {
	for {
		select {
		case event := <-ch:
			d.persist(context.Background(), id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, workerID int, event domain.FriendshipEvent) {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	if err := d.store.InsertEvent(ctx, &event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Uint64("friendship_id", event.FriendshipID).
			Int("worker_id", workerID).
			Msg("audit event insert failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("stored").Inc()
}
