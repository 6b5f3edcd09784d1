package model

// SeatKey identifies one purchasable seat within a (trip, wagon class)
// snapshot. WagonNumber is the physical carriage ("07"), SeatNumber is
// scoped to that carriage. There is no surrogate identity: two observations
// with equal keys are the same seat.
type SeatKey struct {
	WagonNumber string
	SeatNumber  int
}

// Snapshot is the deduplicated seat set for one (trip, wagon class) pair
// at one check.
type Snapshot = Set[SeatKey]

// Trip is one monitored train run as recorded in the store. The train
// number is the operator-facing identity and never changes once recorded.
type Trip struct {
	ID          int
	TrainNumber string
}

// WagonClass is a seating category of a train ("К" — купе, "Л" — люкс).
// The id is the natural key assigned by the data source.
type WagonClass struct {
	ID   string
	Name string
}

// TripOffer is one direct trip from the trip listing, reduced to what the
// selector and the loop need.
type TripOffer struct {
	ID          int
	TrainNumber string
	Classes     []WagonClassOffer
}

type WagonClassOffer struct {
	ID        string
	Name      string
	FreeSeats int
	Price     int
}

// WagonSeats is the free-seat listing for one physical carriage.
type WagonSeats struct {
	Number string
	Seats  []int
}

// NewSnapshot flattens a seat inventory into a snapshot, deduplicating
// whatever the source repeats.
func NewSnapshot(wagons []WagonSeats) *Snapshot {
	snap := NewSet[SeatKey]()
	for _, w := range wagons {
		for _, n := range w.Seats {
			snap.Add(SeatKey{WagonNumber: w.Number, SeatNumber: n})
		}
	}
	return snap
}
