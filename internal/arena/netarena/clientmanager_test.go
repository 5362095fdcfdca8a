package netarena

import (
	"net"
	"testing"
)

func TestClientManagerAssignsBothSlotsThenRejects(t *testing.T) {
	mgr := newClientManager()
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	nc1 := newNetClient(c1)
	nc2 := newNetClient(c2)

	slot, err := mgr.Assign(nc1)
	if err != nil || slot != SlotFirst {
		t.Fatalf("first Assign = %v, %v; want SlotFirst, nil", slot, err)
	}
	if mgr.Ready() {
		t.Fatalf("Ready() true with only one slot filled")
	}

	slot, err = mgr.Assign(nc2)
	if err != nil || slot != SlotSecond {
		t.Fatalf("second Assign = %v, %v; want SlotSecond, nil", slot, err)
	}
	if !mgr.Ready() {
		t.Fatalf("Ready() false with both slots filled")
	}

	c3, c4 := net.Pipe()
	defer c3.Close()
	defer c4.Close()
	if _, err := mgr.Assign(newNetClient(c3)); err == nil {
		t.Fatalf("Assign on a full manager should fail")
	}
}

func TestClientManagerGetReturnsNilForEmptySlot(t *testing.T) {
	mgr := newClientManager()
	if c := mgr.Get(SlotFirst); c != nil {
		t.Fatalf("Get on empty slot returned non-nil")
	}
}
