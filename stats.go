// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import "sync/atomic"

// Stats holds a queue's side-channel counters. Stats is embedded by value
// in Queue; all mutations are plain sync/atomic adds, and the counters
// are observational and never participate in the enqueue/dequeue
// correctness protocol.
type Stats struct {
	enqueueAttempts  atomic.Int64
	enqueueSuccesses atomic.Int64
	dequeueAttempts  atomic.Int64
	dequeueSuccesses atomic.Int64
	batchEnqueues    atomic.Int64
	batchDequeues    atomic.Int64
	contentionEvents atomic.Int64
}

// StatsSnapshot is a read-only point-in-time copy of a Stats block's
// counters, plus the two derived success-rate ratios.
type StatsSnapshot struct {
	EnqueueAttempts  int64
	EnqueueSuccesses int64
	DequeueAttempts  int64
	DequeueSuccesses int64
	BatchEnqueues    int64
	BatchDequeues    int64
	ContentionEvents int64
}

// EnqueueSuccessRate returns EnqueueSuccesses/EnqueueAttempts, or 0 when
// there have been no attempts.
func (s StatsSnapshot) EnqueueSuccessRate() float64 {
	if s.EnqueueAttempts == 0 {
		return 0
	}
	return float64(s.EnqueueSuccesses) / float64(s.EnqueueAttempts)
}

// DequeueSuccessRate returns DequeueSuccesses/DequeueAttempts, or 0 when
// there have been no attempts.
func (s StatsSnapshot) DequeueSuccessRate() float64 {
	if s.DequeueAttempts == 0 {
		return 0
	}
	return float64(s.DequeueSuccesses) / float64(s.DequeueAttempts)
}

func (s *Stats) incEnqueueAttempt()  { s.enqueueAttempts.Add(1) }
func (s *Stats) incEnqueueSuccess()  { s.enqueueSuccesses.Add(1) }
func (s *Stats) incDequeueAttempt()  { s.dequeueAttempts.Add(1) }
func (s *Stats) incDequeueSuccess()  { s.dequeueSuccesses.Add(1) }
func (s *Stats) incBatchEnqueue()    { s.batchEnqueues.Add(1) }
func (s *Stats) incBatchDequeue()    { s.batchDequeues.Add(1) }
func (s *Stats) incContentionEvent() { s.contentionEvents.Add(1) }

func (s *Stats) addEnqueueSuccesses(n int64) { s.enqueueSuccesses.Add(n) }
func (s *Stats) addDequeueSuccesses(n int64) { s.dequeueSuccesses.Add(n) }

// Load returns a snapshot of the current counters.
func (s *Stats) Load() StatsSnapshot {
	return StatsSnapshot{
		EnqueueAttempts:  s.enqueueAttempts.Load(),
		EnqueueSuccesses: s.enqueueSuccesses.Load(),
		DequeueAttempts:  s.dequeueAttempts.Load(),
		DequeueSuccesses: s.dequeueSuccesses.Load(),
		BatchEnqueues:    s.batchEnqueues.Load(),
		BatchDequeues:    s.batchDequeues.Load(),
		ContentionEvents: s.contentionEvents.Load(),
	}
}

// Reset zeroes all seven counters.
func (s *Stats) Reset() {
	s.enqueueAttempts.Store(0)
	s.enqueueSuccesses.Store(0)
	s.dequeueAttempts.Store(0)
	s.dequeueSuccesses.Store(0)
	s.batchEnqueues.Store(0)
	s.batchDequeues.Store(0)
	s.contentionEvents.Store(0)
}
