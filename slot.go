// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// slot pairs one Packet with the sequence counter that arbitrates access
// to it. The trailing padding fills out the remainder of the 64-byte
// cache line after the 8-byte seq and the Packet so that two adjacent
// slots never share a line: without it, a producer publishing slot i and
// a consumer draining slot i+1 would ping-pong the same line between
// cores.
type slot struct {
	seq  atomix.Uint64
	data Packet
	_    [64 - 8 - unsafe.Sizeof(Packet{})]byte
}
