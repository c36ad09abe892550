// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packetq_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/packetq"
)

func TestPacketIsValid(t *testing.T) {
	var zero packetq.Packet
	if zero.IsValid() {
		t.Fatal("zero-value packet reported valid")
	}

	var b byte
	p := packetq.NewPacketWithPayload(unsafe.Pointer(&b), 1, packetq.Medium, 7)
	if !p.IsValid() {
		t.Fatal("populated packet reported invalid")
	}

	empty := packetq.NewPacketWithPayload(unsafe.Pointer(&b), 0, packetq.Medium, 7)
	if empty.IsValid() {
		t.Fatal("zero-length payload reported valid")
	}
}

func TestPacketReset(t *testing.T) {
	var b byte
	p := packetq.NewPacketWithPayload(unsafe.Pointer(&b), 1, packetq.High, 9)
	p.Reset()
	if p != (packetq.Packet{}) {
		t.Fatalf("Reset left non-zero packet: %+v", p)
	}
}

func TestPacketLess(t *testing.T) {
	low := packetq.NewPacketWithPayload(nil, 0, packetq.Low, 100)
	high := packetq.NewPacketWithPayload(nil, 0, packetq.High, 1)
	if !low.Less(high) {
		t.Fatal("Low priority packet should sort before High, regardless of id")
	}

	a := packetq.NewPacket(1)
	b := packetq.NewPacket(2)
	if !a.Less(b) {
		t.Fatal("same priority: lower id should sort first")
	}
}

func TestPacketEqual(t *testing.T) {
	a := packetq.NewPacketWithPayload(nil, 0, packetq.Control, 42)
	b := packetq.NewPacketWithPayload(nil, 0, packetq.Control, 42)
	c := packetq.NewPacketWithPayload(nil, 0, packetq.Low, 42)
	if !a.Equal(b) {
		t.Fatal("packets with same id and priority should be equal")
	}
	if a.Equal(c) {
		t.Fatal("packets with different priority should not be equal")
	}
}

func TestPriorityString(t *testing.T) {
	cases := map[packetq.Priority]string{
		packetq.Low:          "Low",
		packetq.Medium:       "Medium",
		packetq.High:         "High",
		packetq.Control:      "Control",
		packetq.Priority(99): "Unknown",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Priority(%d).String() = %q, want %q", p, got, want)
		}
	}
}
