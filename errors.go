// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrInvalidCapacity is returned by New when the requested capacity is
// not positive or is too large to round up to a power of two within an
// int. Construction is the
// only operation that can fail; a *Queue once constructed is always
// usable.
var ErrInvalidCapacity = errors.New("packetq: invalid capacity")

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full (backpressure)
// For Dequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. Enqueue and
// Dequeue absorb it internally via backoff and only return it once the
// definitive full/empty check confirms the condition; TryEnqueue and
// TryDequeue surface it on the first failed attempt by design.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := packetq.Backoff{}
//	for {
//	    err := q.TryEnqueue(pkt)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if packetq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
