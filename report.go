package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"monks.co/uzwatch/model"
)

// compartmentLayout describes how seat numbers map onto compartments for
// report formatting only: compartment i holds seat numbers in
// (i·SeatsPer, (i+1)·SeatsPer]. The real carriage layout is not verified
// against mockups, which is why both values are configurable.
type compartmentLayout struct {
	SeatsPer int
	PerWagon int
}

// composeReport renders the operator message for one (trip, wagon class)
// diff. ok is false when there is nothing to say; silent marks the
// removals-only notice, which should not ring the operator's phone.
func composeReport(trainNumber, wagonClassName string, added, removed []model.SeatKey, layout compartmentLayout) (text string, silent, ok bool) {
	if len(added) == 0 && len(removed) == 0 {
		return "", false, false
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "<b>%s</b> (%s)\n", trainNumber, wagonClassName)

	if len(added) == 0 {
		msg.WriteString("\n\nМісця більше не доступні 😢")
		return msg.String(), true, true
	}

	msg.WriteString("\n\nДоступні зараз місця:")

	var wagonOrder []string
	byWagon := map[string][]int{}
	for _, seat := range added {
		if _, seen := byWagon[seat.WagonNumber]; !seen {
			wagonOrder = append(wagonOrder, seat.WagonNumber)
		}
		byWagon[seat.WagonNumber] = append(byWagon[seat.WagonNumber], seat.SeatNumber)
	}

	for _, wagon := range wagonOrder {
		fmt.Fprintf(&msg, "\n\n<b>Вагон %s</b>\n", wagon)
		var groups []string
		for _, room := range compartments(byWagon[wagon], layout) {
			var ns []string
			for _, n := range room {
				ns = append(ns, strconv.Itoa(n))
			}
			groups = append(groups, "["+strings.Join(ns, ",")+"]")
		}
		msg.WriteString(strings.Join(groups, ", "))
	}

	return msg.String(), false, true
}

// compartments partitions seat numbers into fixed-size consecutive groups,
// ascending within each group, empty groups dropped. Numbers past the last
// compartment are dropped too rather than invent a compartment the layout
// says doesn't exist.
func compartments(seats []int, layout compartmentLayout) [][]int {
	buckets := make([][]int, layout.PerWagon)
	for _, n := range seats {
		i := (n - 1) / layout.SeatsPer
		if n < 1 || i >= layout.PerWagon {
			continue
		}
		buckets[i] = append(buckets[i], n)
	}

	var out [][]int
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		sort.Ints(b)
		out = append(out, b)
	}
	return out
}

// sortedSeats fixes an iteration order for a snapshot so identical diffs
// always render identical reports.
func sortedSeats(set *model.Snapshot) []model.SeatKey {
	keys := set.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WagonNumber != keys[j].WagonNumber {
			return keys[i].WagonNumber < keys[j].WagonNumber
		}
		return keys[i].SeatNumber < keys[j].SeatNumber
	})
	return keys
}
