// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq_test

import (
	"testing"
	"time"

	"code.hybscloud.com/packetq"
)

func TestBackoffEscalation(t *testing.T) {
	var b packetq.Backoff

	for i := 0; i < 16; i++ {
		if b.Step() != i {
			t.Fatalf("Step before spin-tier Wait %d: got %d, want %d", i, b.Step(), i)
		}
		b.Wait()
	}
	if b.Step() != 16 {
		t.Fatalf("Step after spin tier: got %d, want 16", b.Step())
	}

	for b.Step() < 80 {
		b.Wait()
	}
	if b.Step() != 80 {
		t.Fatalf("Step after yield tier: got %d, want 80", b.Step())
	}

	start := time.Now()
	b.Wait()
	if elapsed := time.Since(start); elapsed < time.Microsecond/2 {
		t.Fatalf("sleep tier Wait returned suspiciously fast: %v", elapsed)
	}
}

func TestBackoffReset(t *testing.T) {
	var b packetq.Backoff
	for i := 0; i < 20; i++ {
		b.Wait()
	}
	b.Reset()
	if b.Step() != 0 {
		t.Fatalf("Step after Reset: got %d, want 0", b.Step())
	}
}
