package uz

// Wire types for the UZ booking API. The API names fields in snake_case;
// only the fields the watcher reads are mapped.

type stationResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tripsResponse struct {
	StationFrom string       `json:"station_from"`
	StationTo   string       `json:"station_to"`
	Direct      []directTrip `json:"direct"`
}

type directTrip struct {
	ID    int   `json:"id"`
	Train train `json:"train"`
}

type train struct {
	ID           int                 `json:"id"`
	Number       string              `json:"number"`
	WagonClasses []wagonClassOffered `json:"wagon_classes"`
}

type wagonClassOffered struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FreeSeats int    `json:"free_seats"`
	Price     int    `json:"price"`
}

// tripSeatResponse is one physical wagon of the requested class with its
// currently purchasable seat numbers.
type tripSeatResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Seats  []int  `json:"seats"`
}
