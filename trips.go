package main

import (
	"strings"

	"monks.co/uzwatch/model"
)

// selectTrips reduces the trip listing to the watched trains, and each
// selected trip to the watched wagon classes worth a seat-level look. Train
// numbers match case-insensitively. A trip qualifies when at least one
// wanted class is actually on sale (price > 0); within a qualified trip,
// classes with no price or no free seats are skipped — fetching their seat
// maps would be wasted requests against a rate-sensitive source.
func selectTrips(offers []model.TripOffer, trains, classes []string) []model.TripOffer {
	wantTrain := model.NewSet[string]()
	for _, tn := range trains {
		wantTrain.Add(strings.ToUpper(tn))
	}
	wantClass := model.NewSet(classes...)

	var out []model.TripOffer
	for _, offer := range offers {
		if !wantTrain.Has(strings.ToUpper(offer.TrainNumber)) {
			continue
		}

		onSale := false
		for _, wc := range offer.Classes {
			if wantClass.Has(wc.ID) && wc.Price > 0 {
				onSale = true
				break
			}
		}
		if !onSale {
			continue
		}

		selected := offer
		selected.Classes = nil
		for _, wc := range offer.Classes {
			if wantClass.Has(wc.ID) && wc.Price > 0 && wc.FreeSeats > 0 {
				selected.Classes = append(selected.Classes, wc)
			}
		}
		out = append(out, selected)
	}
	return out
}
