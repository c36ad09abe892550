// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package packetq

// RaceEnabled is true when the race detector is active.
// Tests use it to skip the heavier concurrent scenarios: the queue's
// correctness relies on atomic-ordering guarantees the race detector
// cannot observe, and it flags the slot reuse between a dequeuer and a
// later producer as a false positive.
const RaceEnabled = true
