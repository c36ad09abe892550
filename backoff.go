// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import (
	"runtime"
	"time"

	"code.hybscloud.com/spin"
)

// spinLimit is the step at which Backoff stops busy-spinning and starts
// cooperatively yielding.
const spinLimit = 16

// yieldLimit is the step at which Backoff stops yielding and starts
// sleeping.
const yieldLimit = 80

// Backoff is a per-goroutine, single-ownership contention dampener. It is
// not safe to share across goroutines: each producer or consumer loop
// should hold its own value, exactly like code.hybscloud.com/spin.Wait is
// used elsewhere in this ecosystem.
//
// A call to Wait escalates through three tiers as the step counter grows:
//
//	0  <= n < 16: busy-spin for 2^n CPU-pause hints
//	16 <= n < 80: cooperative yield to the scheduler
//	n  >= 80:     sleep for 1 microsecond
//
// Every call increments the step counter. Reset returns it to zero.
type Backoff struct {
	step int
}

// Wait performs the action for the current step and advances it.
func (b *Backoff) Wait() {
	switch {
	case b.step < spinLimit:
		spins := 1 << uint(b.step)
		sw := spin.Wait{}
		for i := 0; i < spins; i++ {
			sw.Once()
		}
	case b.step < yieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(time.Microsecond)
	}
	b.step++
}

// Reset returns the step counter to zero.
func (b *Backoff) Reset() {
	b.step = 0
}

// Step returns the current step counter, mainly for tests that want to
// assert on escalation boundaries.
func (b *Backoff) Step() int {
	return b.step
}
