// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq

import "unsafe"

// Priority is the packet priority tag. The ring is strictly FIFO; Priority
// is carried data, not a scheduling input.
type Priority uint8

const (
	Low Priority = iota
	Medium
	High
	Control
)

// String returns the priority's name.
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	case Control:
		return "Control"
	default:
		return "Unknown"
	}
}

// Packet is the queue's payload record: an opaque pointer to externally
// owned bytes, a length, a priority tag, and a producer-assigned id.
//
// The queue never dereferences or frees PayloadPtr. It is a pass-through
// reference; the caller's allocator owns the lifetime of the bytes it
// points to, and must keep them alive until the consumer is done with
// them.
type Packet struct {
	PayloadPtr unsafe.Pointer
	Length     int
	Priority   Priority
	ID         uint64
}

// NewPacket constructs a packet carrying only an id, for tests and for
// callers that track payloads out of band.
func NewPacket(id uint64) Packet {
	return Packet{ID: id}
}

// NewPacketWithPayload constructs a fully populated packet.
func NewPacketWithPayload(payload unsafe.Pointer, length int, priority Priority, id uint64) Packet {
	return Packet{PayloadPtr: payload, Length: length, Priority: priority, ID: id}
}

// IsValid reports whether the packet carries a non-empty payload.
func (p Packet) IsValid() bool {
	return p.PayloadPtr != nil && p.Length > 0
}

// Reset returns the packet to its zero value.
func (p *Packet) Reset() {
	*p = Packet{}
}

// Less orders packets by priority, then by id, highest priority first is
// not implied here: this is a plain total order over (priority, id), used
// for testing and for callers that want to sort a drained batch.
func (p Packet) Less(other Packet) bool {
	if p.Priority != other.Priority {
		return p.Priority < other.Priority
	}
	return p.ID < other.ID
}

// Equal reports whether two packets carry the same id and priority.
func (p Packet) Equal(other Packet) bool {
	return p.ID == other.ID && p.Priority == other.Priority
}
