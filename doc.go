// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package packetq provides a lock-free bounded multi-producer
// multi-consumer ring buffer queue for Packet values.
//
// # Quick Start
//
//	q, err := packetq.New(1024)
//	if err != nil {
//	    // capacity was invalid
//	}
//
//	err = q.Enqueue(packetq.NewPacket(id))
//	if packetq.IsWouldBlock(err) {
//	    // queue is full - handle backpressure
//	}
//
//	pkt, err := q.Dequeue()
//	if packetq.IsWouldBlock(err) {
//	    // queue is empty - try again later
//	}
//
// # Algorithm
//
// The queue holds n physical slots, where n is capacity rounded up to
// the next power of two. Each slot carries its own sequence counter. A
// single-packet producer or consumer reads the sequence number of the
// slot under the current tail or head cursor and, only when it shows
// the slot is ready to write or read, claims that cursor with a
// compare-and-swap. The batch operations claim a run of cursors first
// and then spin on each claimed slot until its sequence number confirms
// it is ready. This is the same per-slot sequencing approach used by the CAS
// variants elsewhere in this ecosystem, specialized to a single
// concrete payload type instead of a generic one.
//
// Enqueue and Dequeue retry with an escalating [Backoff] until the
// operation either succeeds or a definitive check against the opposite
// cursor confirms the queue is full or empty. TryEnqueue and TryDequeue
// make exactly one attempt and return ErrWouldBlock immediately,
// without distinguishing "genuinely full" from "another goroutine is
// mid-claim" — callers that want to retry should prefer Enqueue or
// Dequeue, or build their own retry policy around the Try variants.
//
// # Batch Operations
//
// EnqueueBatch and DequeueBatch reserve a contiguous run of slots with
// a single compare-and-swap on the shared cursor, then publish or drain
// each reserved slot as it becomes ready. This amortizes the cursor CAS
// across the whole batch instead of paying for it once per packet, at
// the cost of a best-effort return: a batch call returns fewer packets
// than requested when the queue does not have enough room or enough
// queued packets to satisfy the whole batch, rather than blocking.
//
// # Error Handling
//
// Queue operations return [ErrWouldBlock] when they cannot proceed
// immediately. This error is sourced from [code.hybscloud.com/iox] for
// ecosystem consistency.
//
//	backoff := packetq.Backoff{}
//	for {
//	    err := q.TryEnqueue(pkt)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !packetq.IsWouldBlock(err) {
//	        return err // unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	packetq.IsWouldBlock(err)  // true if the queue was full or empty
//	packetq.IsSemantic(err)    // true if a control flow signal
//	packetq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// New itself can fail, returning [ErrInvalidCapacity] if capacity is
// not positive or rounds past the queue's internal addressing headroom.
//
// # Capacity
//
// Capacity rounds up to the next power of 2:
//
//	q, _ := packetq.New(3)     // actual capacity: 4
//	q, _ := packetq.New(1000)  // actual capacity: 1024
//	q, _ := packetq.New(1024)  // actual capacity: 1024
//
// Size, Empty and Full read the tail and head cursors independently
// and without synchronization between the two reads; under concurrent
// access their results are a point-in-time estimate, not a guarantee.
//
// # Thread Safety
//
// Any number of goroutines may call Enqueue, TryEnqueue, EnqueueBatch,
// Dequeue, TryDequeue and DequeueBatch concurrently on the same *Queue.
// Backoff is not one of those safe-to-share types: it tracks a single
// caller's retry state and must not be shared across goroutines.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but cannot observe the happens-before
// relationships this queue establishes through acquire-release
// semantics on independent slot sequence counters. The algorithm is
// correct, but the detector can report a false positive on the slot
// reuse between a consumer finishing a read and a later producer
// claiming the same slot. Tests that would trip this are gated behind
// [RaceEnabled] (see race.go / race_off.go).
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause hints
// during spin-wait.
package packetq
