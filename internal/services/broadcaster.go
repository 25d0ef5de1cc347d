package services

import (
	"sync"

	"go.uber.org/zap"

	"dicebank-backend/internal/models"
)

type Broadcaster interface {
	BroadcastState(state models.BankrollState)
}

// AttachBroadcasters subscribes each broadcaster to store changes. The
// returned func detaches all of them.
func AttachBroadcasters(store *BankrollStore, broadcasters ...Broadcaster) func() {
	unsubs := make([]func(), 0, len(broadcasters))
	for _, b := range broadcasters {
		unsubs = append(unsubs, store.Subscribe(b.BroadcastState))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// QueuedBroadcaster hands states to a slow Broadcaster from its own
// goroutine. BroadcastState never blocks; states that do not fit in the
// queue are dropped.
type QueuedBroadcaster struct {
	next   Broadcaster
	queue  chan models.BankrollState
	done   chan struct{}
	logger *zap.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewQueuedBroadcaster(next Broadcaster, size int, logger *zap.Logger) *QueuedBroadcaster {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	q := &QueuedBroadcaster{
		next:   next,
		queue:  make(chan models.BankrollState, size),
		done:   make(chan struct{}),
		logger: logger,
	}

	q.wg.Add(1)
	go q.run()
	return q
}

func (q *QueuedBroadcaster) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case state := <-q.queue:
			q.next.BroadcastState(state)
		}
	}
}

func (q *QueuedBroadcaster) BroadcastState(state models.BankrollState) {
	select {
	case <-q.done:
		return
	default:
	}

	select {
	case q.queue <- state:
	default:
		q.logger.Warn("broadcast queue full, dropping state", zap.Float64("balance", state.Balance))
	}
}

// Close stops the worker and waits for an in-flight broadcast to finish.
// Queued states are discarded.
func (q *QueuedBroadcaster) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	q.wg.Wait()
}
