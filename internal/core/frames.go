package core

import (
	"sort"
	"time"
)

// FrameID identifies a pending frame request so it can be cancelled.
type FrameID uint64

// FrameFunc is a callback run once on the next frame. now is the
// platform's monotonic frame timestamp.
type FrameFunc func(now time.Duration)

// FrameQueue is a one-shot frame scheduler in the style of
// requestAnimationFrame: callbacks requested during a frame run on the
// following one, and each request fires at most once.
//
// The platform calls Fire once per rendered frame. Tests call Fire with a
// manual clock. FrameQueue is not safe for concurrent use.
type FrameQueue struct {
	nextID  FrameID
	pending map[FrameID]FrameFunc
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]FrameFunc)}
}

// RequestFrame schedules fn for the next frame.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.nextID++
	q.pending[q.nextID] = fn
	return q.nextID
}

// CancelFrame drops a pending request. Unknown or already-fired IDs are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of requests waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Fire runs every request pending at call time, in request order.
// Requests made by the callbacks themselves wait for the next Fire.
// A callback may cancel a request that has not run yet in this batch.
func (q *FrameQueue) Fire(now time.Duration) int {
	if len(q.pending) == 0 {
		return 0
	}

	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fired := 0
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn(now)
		fired++
	}
	return fired
}
