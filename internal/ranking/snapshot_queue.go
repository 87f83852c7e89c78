package ranking

import (
	"sync"

	"github.com/2beens/evolvx/internal/ranking/sink"
)

// snapshotQueue runs at most one publishing goroutine per user. A snapshot pushed while
// the user's previous one is still in flight replaces whatever is queued behind it, so
// sinks see a user's snapshots in push order and always end on the latest one.
type snapshotQueue struct {
	mu      sync.Mutex
	running map[int]*queuedSnapshot
	wg      sync.WaitGroup
	publish func(sink.Snapshot)
}

type queuedSnapshot struct {
	next *sink.Snapshot
}

func newSnapshotQueue(publish func(sink.Snapshot)) *snapshotQueue {
	return &snapshotQueue{
		running: map[int]*queuedSnapshot{},
		publish: publish,
	}
}

// Push never blocks on the sink. Callers must push one user's snapshots in order.
func (q *snapshotQueue) Push(snapshot sink.Snapshot) {
	q.mu.Lock()
	if slot, ok := q.running[snapshot.UserID]; ok {
		slot.next = &snapshot
		q.mu.Unlock()
		return
	}
	q.running[snapshot.UserID] = &queuedSnapshot{}
	q.wg.Add(1)
	q.mu.Unlock()

	go q.drain(snapshot)
}

func (q *snapshotQueue) drain(snapshot sink.Snapshot) {
	defer q.wg.Done()
	for {
		q.publish(snapshot)

		q.mu.Lock()
		slot := q.running[snapshot.UserID]
		if slot.next == nil {
			delete(q.running, snapshot.UserID)
			q.mu.Unlock()
			return
		}
		snapshot = *slot.next
		slot.next = nil
		q.mu.Unlock()
	}
}

// Wait blocks until every queued snapshot has been handed to the sink.
func (q *snapshotQueue) Wait() {
	q.wg.Wait()
}
