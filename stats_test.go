// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq_test

import (
	"testing"

	"code.hybscloud.com/packetq"
)

func TestStatsTracksEnqueueDequeue(t *testing.T) {
	q, err := packetq.New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := q.Enqueue(packetq.NewPacket(uint64(i))); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	snap := q.Stats()
	if snap.EnqueueAttempts == 0 {
		t.Fatal("EnqueueAttempts should be nonzero after enqueues")
	}
	if snap.EnqueueSuccesses != 4 {
		t.Fatalf("EnqueueSuccesses: got %d, want 4", snap.EnqueueSuccesses)
	}
	if rate := snap.EnqueueSuccessRate(); rate <= 0 || rate > 1 {
		t.Fatalf("EnqueueSuccessRate out of range: %v", rate)
	}

	for i := 0; i < 4; i++ {
		if _, err := q.Dequeue(); err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
	}

	snap = q.Stats()
	if snap.DequeueSuccesses != 4 {
		t.Fatalf("DequeueSuccesses: got %d, want 4", snap.DequeueSuccesses)
	}
}

func TestStatsDisabled(t *testing.T) {
	q, err := packetq.New(4, packetq.WithStats(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = q.Enqueue(packetq.NewPacket(1))
	_, _ = q.Dequeue()

	snap := q.Stats()
	if snap != (packetq.StatsSnapshot{}) {
		t.Fatalf("expected zero snapshot with stats disabled, got %+v", snap)
	}
}

func TestStatsReset(t *testing.T) {
	q, err := packetq.New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = q.Enqueue(packetq.NewPacket(1))
	q.ResetStats()
	if snap := q.Stats(); snap != (packetq.StatsSnapshot{}) {
		t.Fatalf("expected zero snapshot after ResetStats, got %+v", snap)
	}
}

func TestSuccessRateWithNoAttempts(t *testing.T) {
	var s packetq.StatsSnapshot
	if s.EnqueueSuccessRate() != 0 {
		t.Fatal("EnqueueSuccessRate with zero attempts should be 0")
	}
	if s.DequeueSuccessRate() != 0 {
		t.Fatal("DequeueSuccessRate with zero attempts should be 0")
	}
}
