// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// maxCapacity bounds the rounded capacity to half of the uint64 address
// space, leaving room for the tail and head cursors to wrap many times
// over without diff math ever overflowing into the wrong sign. Rounded
// int capacities never reach this bound: New rejects any capacity whose
// rounding would overflow int, and the largest power of two an int holds
// is below it, so the n > maxCapacity check never fires; it stays in
// place to match the stated bound rather than silently rely on int's
// range to enforce it.
const maxCapacity uint64 = 1 << 63

// Queue is a lock-free bounded multi-producer multi-consumer ring buffer
// of Packet values. Capacity is fixed at construction and rounded up to
// the next power of two. A Queue is safe for concurrent use by any
// number of producers and consumers; it contains no locks.
type Queue struct {
	_        pad
	tail     atomix.Uint64 // next slot a producer will claim
	_        pad
	head     atomix.Uint64 // next slot a consumer will claim
	_        pad
	buffer   []slot
	mask     uint64
	capacity uint64
	stats    Stats
	statsOn  bool
}

// New creates a Queue able to hold capacity packets. capacity rounds up
// to the next power of two; New returns ErrInvalidCapacity if capacity
// is less than 1 or rounding it up to a power of two would overflow int.
func New(capacity int, opts ...Option) (*Queue, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	r := roundToPow2(capacity)
	if r < capacity { // rounding overflowed int
		return nil, ErrInvalidCapacity
	}
	n := uint64(r)
	if n > maxCapacity {
		return nil, ErrInvalidCapacity
	}

	cfg := config{statsEnabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &Queue{
		buffer:   make([]slot, n),
		mask:     n - 1,
		capacity: n,
		statsOn:  cfg.statsEnabled,
	}
	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q, nil
}

// Must creates a Queue exactly like New, panicking instead of returning
// an error. For callers that treat a bad capacity as a programmer error
// rather than something to recover from.
func Must(capacity int, opts ...Option) *Queue {
	q, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

// Cap returns the queue's fixed capacity.
func (q *Queue) Cap() int {
	return int(q.capacity)
}

// Size returns a point-in-time estimate of the number of packets
// currently queued. Because head and tail are loaded independently and
// without synchronization between the two loads, Size can be stale by
// the time it returns under concurrent access; it never returns a
// negative value or a value greater than Cap.
func (q *Queue) Size() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadAcquire()
	diff := int64(tail - head)
	if diff < 0 {
		return 0
	}
	if diff > int64(q.capacity) {
		return int(q.capacity)
	}
	return int(diff)
}

// Empty reports whether the queue held zero packets at the moment of
// the call. Subject to the same staleness caveat as Size.
func (q *Queue) Empty() bool {
	return q.Size() == 0
}

// Full reports whether the queue held Cap packets at the moment of the
// call. Subject to the same staleness caveat as Size.
func (q *Queue) Full() bool {
	return q.Size() == int(q.capacity)
}

// MemoryUsage returns the approximate number of bytes the queue's
// backing storage occupies, not counting externally owned packet
// payloads.
func (q *Queue) MemoryUsage() int {
	return int(unsafe.Sizeof(*q)) + len(q.buffer)*int(unsafe.Sizeof(slot{}))
}

// Stats returns a snapshot of the queue's counters. If stats collection
// was disabled via WithStats(false), every field is zero.
func (q *Queue) Stats() StatsSnapshot {
	return q.stats.Load()
}

// ResetStats zeroes the queue's counters.
func (q *Queue) ResetStats() {
	q.stats.Reset()
}

// Enqueue adds pkt to the queue, retrying with an escalating backoff
// until it succeeds or the queue is confirmed full, in which case it
// returns ErrWouldBlock.
func (q *Queue) Enqueue(pkt Packet) error {
	if q.statsOn {
		q.stats.incEnqueueAttempt()
	}
	var b Backoff
	for {
		err := q.tryEnqueue(pkt)
		if err == nil {
			if q.statsOn {
				q.stats.incEnqueueSuccess()
			}
			return nil
		}
		if !IsWouldBlock(err) {
			return err
		}
		tail := q.tail.LoadAcquire()
		head := q.head.LoadAcquire()
		if int64(tail-head) >= int64(q.capacity) {
			return ErrWouldBlock
		}
		if q.statsOn {
			q.stats.incContentionEvent()
		}
		b.Wait()
	}
}

// TryEnqueue attempts to add pkt to the queue once, without retrying.
// It returns ErrWouldBlock immediately if the slot it would claim is
// not yet free, whether that is because the queue is genuinely full or
// because another producer currently holds the claim.
func (q *Queue) TryEnqueue(pkt Packet) error {
	if q.statsOn {
		q.stats.incEnqueueAttempt()
	}
	err := q.tryEnqueue(pkt)
	if err == nil && q.statsOn {
		q.stats.incEnqueueSuccess()
	}
	return err
}

// tryEnqueue is the single-attempt claim-and-publish step shared by
// Enqueue's retry loop and TryEnqueue, without either one's stats
// bookkeeping.
func (q *Queue) tryEnqueue(pkt Packet) error {
	tail := q.tail.LoadAcquire()
	s := &q.buffer[tail&q.mask]
	seq := s.seq.LoadAcquire()
	diff := int64(seq) - int64(tail)

	switch {
	case diff == 0:
		if !q.tail.CompareAndSwapAcqRel(tail, tail+1) {
			return ErrWouldBlock
		}
		s.data = pkt
		s.seq.StoreRelease(tail + 1)
		return nil
	default:
		return ErrWouldBlock
	}
}

// Dequeue removes and returns a packet from the queue, retrying with an
// escalating backoff until one is available or the queue is confirmed
// empty, in which case it returns ErrWouldBlock.
func (q *Queue) Dequeue() (Packet, error) {
	if q.statsOn {
		q.stats.incDequeueAttempt()
	}
	var b Backoff
	for {
		pkt, err := q.tryDequeue()
		if err == nil {
			if q.statsOn {
				q.stats.incDequeueSuccess()
			}
			return pkt, nil
		}
		if !IsWouldBlock(err) {
			return Packet{}, err
		}
		head := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()
		if head >= tail {
			return Packet{}, ErrWouldBlock
		}
		if q.statsOn {
			q.stats.incContentionEvent()
		}
		b.Wait()
	}
}

// TryDequeue attempts to remove a packet from the queue once, without
// retrying. It returns ErrWouldBlock immediately if the slot it would
// claim does not yet hold a published packet, whether that is because
// the queue is genuinely empty or because another consumer currently
// holds the claim.
func (q *Queue) TryDequeue() (Packet, error) {
	if q.statsOn {
		q.stats.incDequeueAttempt()
	}
	pkt, err := q.tryDequeue()
	if err == nil && q.statsOn {
		q.stats.incDequeueSuccess()
	}
	return pkt, err
}

// tryDequeue is the single-attempt claim-and-drain step shared by
// Dequeue's retry loop and TryDequeue, without either one's stats
// bookkeeping.
func (q *Queue) tryDequeue() (Packet, error) {
	head := q.head.LoadAcquire()
	s := &q.buffer[head&q.mask]
	seq := s.seq.LoadAcquire()
	diff := int64(seq) - int64(head+1)

	switch {
	case diff == 0:
		if !q.head.CompareAndSwapAcqRel(head, head+1) {
			return Packet{}, ErrWouldBlock
		}
		pkt := s.data
		s.data = Packet{}
		s.seq.StoreRelease(head + q.capacity)
		return pkt, nil
	default:
		return Packet{}, ErrWouldBlock
	}
}

// EnqueueBatch adds as many packets from pkts as the queue has room
// for, reserving contiguous runs of slots with a CAS per run and
// publishing each one as its predecessor's slot comes free. It keeps
// reserving further runs, backing off between attempts, until every
// packet in pkts has been placed or the queue reports full. It returns
// the number of packets actually enqueued, which is less than
// len(pkts) only when the queue does not have that much room; it never
// blocks waiting for a producer that claimed a slot in an already
// reserved run but has not yet finished it — each round spin-waits only
// on the slots that round itself just reserved, and only until a
// consumer still draining one of them from the previous lap releases it.
func (q *Queue) EnqueueBatch(pkts []Packet) int {
	if len(pkts) == 0 {
		return 0
	}
	if q.statsOn {
		q.stats.incBatchEnqueue()
	}

	sw := spin.Wait{}
	var b Backoff
	done := 0
	for done < len(pkts) {
		tail := q.tail.LoadAcquire()
		head := q.head.LoadAcquire()
		free := q.capacity - (tail - head)
		want := uint64(len(pkts) - done)
		if free < want {
			want = free
		}
		if want == 0 {
			break
		}
		if !q.tail.CompareAndSwapAcqRel(tail, tail+want) {
			b.Wait()
			continue
		}
		b.Reset()

		for i := uint64(0); i < want; i++ {
			pos := tail + i
			s := &q.buffer[pos&q.mask]
			for s.seq.LoadAcquire() != pos {
				sw.Once()
			}
			s.data = pkts[done+int(i)]
			s.seq.StoreRelease(pos + 1)
		}
		done += int(want)
	}
	if q.statsOn {
		q.stats.addEnqueueSuccesses(int64(done))
	}
	return done
}

// DequeueBatch removes up to len(dst) packets into dst, reserving
// contiguous runs of slots with a CAS per run and draining each one as
// its producer finishes publishing it. It keeps reserving further runs,
// backing off between attempts, until dst is full or the queue reports
// empty. It returns the number of packets actually written into dst,
// which is less than len(dst) only when the queue did not hold that
// many packets.
func (q *Queue) DequeueBatch(dst []Packet) int {
	if len(dst) == 0 {
		return 0
	}
	if q.statsOn {
		q.stats.incBatchDequeue()
	}

	sw := spin.Wait{}
	var b Backoff
	done := 0
	for done < len(dst) {
		head := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()
		avail := tail - head
		want := uint64(len(dst) - done)
		if avail < want {
			want = avail
		}
		if want == 0 {
			break
		}
		if !q.head.CompareAndSwapAcqRel(head, head+want) {
			b.Wait()
			continue
		}
		b.Reset()

		for i := uint64(0); i < want; i++ {
			pos := head + i
			s := &q.buffer[pos&q.mask]
			for s.seq.LoadAcquire() != pos+1 {
				sw.Once()
			}
			dst[done+int(i)] = s.data
			s.data = Packet{}
			s.seq.StoreRelease(pos + q.capacity)
		}
		done += int(want)
	}
	if q.statsOn {
		q.stats.addDequeueSuccesses(int64(done))
	}
	return done
}
