package model

// Diff compares the freshly fetched snapshot against the last persisted
// one. added = cur − prev, removed = prev − cur. Both inputs may be nil or
// empty; Diff never fails and Diff(S, S) yields two empty sets.
func Diff(prev, cur *Snapshot) (added, removed *Snapshot) {
	if prev == nil {
		prev = NewSet[SeatKey]()
	}
	if cur == nil {
		cur = NewSet[SeatKey]()
	}
	return cur.Difference(prev), prev.Difference(cur)
}
