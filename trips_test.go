package main

import (
	"testing"

	"monks.co/uzwatch/model"
)

func offer(train string, classes ...model.WagonClassOffer) model.TripOffer {
	return model.TripOffer{ID: 1, TrainNumber: train, Classes: classes}
}

func TestSelectTripsByTrainNumber(t *testing.T) {
	offers := []model.TripOffer{
		offer("091К", model.WagonClassOffer{ID: "К", FreeSeats: 3, Price: 100}),
		offer("743Л", model.WagonClassOffer{ID: "К", FreeSeats: 3, Price: 100}),
	}

	got := selectTrips(offers, []string{"091к"}, []string{"К"})
	if len(got) != 1 || got[0].TrainNumber != "091К" {
		t.Errorf("selected %+v; expect: just 091К (case-insensitive match)", got)
	}
}

func TestSelectTripsExcludesUnsold(t *testing.T) {
	offers := []model.TripOffer{
		offer("091К", model.WagonClassOffer{ID: "К", FreeSeats: 3, Price: 0}),
	}
	if got := selectTrips(offers, []string{"091К"}, []string{"К"}); len(got) != 0 {
		t.Errorf("selected %+v; expect: none (only matching class has price 0)", got)
	}

	offers = []model.TripOffer{
		offer("091К", model.WagonClassOffer{ID: "Л", FreeSeats: 3, Price: 100}),
	}
	if got := selectTrips(offers, []string{"091К"}, []string{"К"}); len(got) != 0 {
		t.Errorf("selected %+v; expect: none (no wanted class on sale)", got)
	}
}

func TestSelectTripsRestrictsClasses(t *testing.T) {
	offers := []model.TripOffer{
		offer("091К",
			model.WagonClassOffer{ID: "К", Name: "Купе", FreeSeats: 3, Price: 100},
			model.WagonClassOffer{ID: "Л", Name: "Люкс", FreeSeats: 2, Price: 200},
			model.WagonClassOffer{ID: "П", Name: "Плацкарт", FreeSeats: 9, Price: 50},
		),
	}

	got := selectTrips(offers, []string{"091К"}, []string{"К", "Л"})
	if len(got) != 1 || len(got[0].Classes) != 2 {
		t.Fatalf("selected %+v; expect: one trip with К and Л only", got)
	}
}

func TestSelectTripsSkipsEmptyClasses(t *testing.T) {
	// trip qualifies via К; Л has free seats but no price, so it's not
	// worth a seat-level fetch
	offers := []model.TripOffer{
		offer("091К",
			model.WagonClassOffer{ID: "К", FreeSeats: 3, Price: 100},
			model.WagonClassOffer{ID: "Л", FreeSeats: 2, Price: 0},
			model.WagonClassOffer{ID: "С", FreeSeats: 0, Price: 300},
		),
	}

	got := selectTrips(offers, []string{"091К"}, []string{"К", "Л", "С"})
	if len(got) != 1 {
		t.Fatalf("selected %d trips; expect: 1", len(got))
	}
	if len(got[0].Classes) != 1 || got[0].Classes[0].ID != "К" {
		t.Errorf("classes=%+v; expect: just К", got[0].Classes)
	}
}
