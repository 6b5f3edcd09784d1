package model

import (
	"testing"
)

func seats(ns ...int) *Snapshot {
	snap := NewSet[SeatKey]()
	for _, n := range ns {
		snap.Add(SeatKey{WagonNumber: "07", SeatNumber: n})
	}
	return snap
}

func TestDiffIdentical(t *testing.T) {
	s := seats(12, 13, 14)
	added, removed := Diff(s, s)
	if added.Size() != 0 || removed.Size() != 0 {
		t.Errorf("Diff(S, S) = (%d, %d); expect: (0, 0)", added.Size(), removed.Size())
	}
}

func TestDiffEmptySides(t *testing.T) {
	added, removed := Diff(nil, seats(12, 13))
	if added.Size() != 2 || removed.Size() != 0 {
		t.Errorf("first check: added=%d removed=%d; expect: 2, 0", added.Size(), removed.Size())
	}

	added, removed = Diff(seats(12, 13), NewSet[SeatKey]())
	if added.Size() != 0 || removed.Size() != 2 {
		t.Errorf("emptied inventory: added=%d removed=%d; expect: 0, 2", added.Size(), removed.Size())
	}

	added, removed = Diff(nil, nil)
	if added == nil || removed == nil || added.Size() != 0 || removed.Size() != 0 {
		t.Errorf("Diff(nil, nil) must return two empty sets")
	}
}

func TestDiffDisjointUnion(t *testing.T) {
	a := seats(1, 2)
	b := seats(3, 4)

	added, removed := Diff(a, a.Union(b))
	if removed.Size() != 0 {
		t.Errorf("Diff(A, A∪B) removed=%d; expect: 0", removed.Size())
	}
	for k := range b.All() {
		if !added.Has(k) {
			t.Errorf("Diff(A, A∪B) missing %v from added", k)
		}
	}

	added, removed = Diff(a.Union(b), a)
	if added.Size() != 0 {
		t.Errorf("Diff(A∪B, A) added=%d; expect: 0", added.Size())
	}
	for k := range b.All() {
		if !removed.Has(k) {
			t.Errorf("Diff(A∪B, A) missing %v from removed", k)
		}
	}
}

func TestDiffDistinguishesWagons(t *testing.T) {
	prev := NewSet(SeatKey{WagonNumber: "05", SeatNumber: 12})
	cur := NewSet(SeatKey{WagonNumber: "07", SeatNumber: 12})

	added, removed := Diff(prev, cur)
	if !added.Has(SeatKey{WagonNumber: "07", SeatNumber: 12}) {
		t.Errorf("same seat number in another wagon must count as added")
	}
	if !removed.Has(SeatKey{WagonNumber: "05", SeatNumber: 12}) {
		t.Errorf("same seat number in another wagon must count as removed")
	}
}

func TestNewSnapshotDedup(t *testing.T) {
	snap := NewSnapshot([]WagonSeats{
		{Number: "07", Seats: []int{12, 13, 12}},
		{Number: "07", Seats: []int{13}},
	})
	if snap.Size() != 2 {
		t.Errorf("snapshot has %d seats; expect: 2 (source duplicates deduplicated)", snap.Size())
	}
}
