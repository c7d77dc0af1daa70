package core

import (
	"testing"
	"time"
)

func TestFrameQueueFiresOnce(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	q.RequestFrame(func(time.Duration) { calls++ })

	if n := q.Fire(16 * time.Millisecond); n != 1 {
		t.Errorf("Fire() = %d, expected 1", n)
	}
	if n := q.Fire(32 * time.Millisecond); n != 0 {
		t.Errorf("second Fire() = %d, expected 0", n)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, expected 1", calls)
	}
}

func TestFrameQueueRequestDuringFireWaits(t *testing.T) {
	q := NewFrameQueue()
	var seen []time.Duration

	var loop FrameFunc
	loop = func(now time.Duration) {
		seen = append(seen, now)
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	q.Fire(10)
	q.Fire(20)
	q.Fire(30)

	if len(seen) != 3 || seen[0] != 10 || seen[2] != 30 {
		t.Errorf("unexpected frame timestamps %v", seen)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", q.Pending())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func(time.Duration) { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id) // double cancel is a no-op

	q.Fire(0)
	if ran {
		t.Error("cancelled frame should not run")
	}
}

func TestFrameQueueCancelWithinBatch(t *testing.T) {
	q := NewFrameQueue()
	var second FrameID
	ranSecond := false

	q.RequestFrame(func(time.Duration) { q.CancelFrame(second) })
	second = q.RequestFrame(func(time.Duration) { ranSecond = true })

	if n := q.Fire(0); n != 1 {
		t.Errorf("Fire() = %d, expected 1", n)
	}
	if ranSecond {
		t.Error("frame cancelled earlier in the same batch should not run")
	}
}
