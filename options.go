// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

// Option configures a Queue at construction time.
type Option func(*config)

type config struct {
	statsEnabled bool
}

// WithStats enables or disables the counters in Stats. Enabled by
// default. Disabling it removes the counter updates (one atomic add per
// counter touched, two or more per call) from the hot path of every
// Enqueue, TryEnqueue, Dequeue, TryDequeue, EnqueueBatch and
// DequeueBatch call, at the cost of Load always returning a zero
// snapshot.
func WithStats(enabled bool) Option {
	return func(c *config) {
		c.statsEnabled = enabled
	}
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte
