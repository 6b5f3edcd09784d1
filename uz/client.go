// Package uz talks to the UZ (Ukrzaliznytsia) booking API: station lookup,
// the direct-trip listing, and per-class seat inventory. The transport it
// sends requests through comes from an opaque SessionProvider, so whatever
// warm-up the site's anti-bot protection demands never leaks past this
// package.
package uz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"monks.co/uzwatch/model"
)

const defaultBaseURL = "https://app.uz.gov.ua/api/"

// ErrStationNotFound means a configured station name has no match in the
// station directory. That's misconfiguration, not a flake: callers must not
// retry it.
var ErrStationNotFound = errors.New("station not found")

// TransientError wraps network, HTTP and decode failures against the data
// source. Callers retry the whole cycle on it.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "uz: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

func transient(err error) error {
	return &TransientError{Err: err}
}

type Client struct {
	session Session
	base    string
}

func NewClient(session Session) *Client {
	return &Client{session: session, base: defaultBaseURL}
}

// ResolveStations maps both human route names to station ids in one pass
// over the station directory.
func (c *Client) ResolveStations(ctx context.Context, from, to string) (int, int, error) {
	var stations []stationResponse
	if err := c.get(ctx, "stations", nil, &stations); err != nil {
		return 0, 0, err
	}

	fromID, toID := 0, 0
	for _, s := range stations {
		if s.Name == from {
			fromID = s.ID
		}
		if s.Name == to {
			toID = s.ID
		}
	}
	if fromID == 0 {
		return 0, 0, fmt.Errorf("%w: '%s'", ErrStationNotFound, from)
	}
	if toID == 0 {
		return 0, 0, fmt.Errorf("%w: '%s'", ErrStationNotFound, to)
	}
	return fromID, toID, nil
}

// ListTrips fetches the direct trips between two stations on the given
// date (YYYY-MM-DD).
func (c *Client) ListTrips(ctx context.Context, fromID, toID int, date string) ([]model.TripOffer, error) {
	var resp tripsResponse
	query := url.Values{
		"station_from_id": {fmt.Sprint(fromID)},
		"station_to_id":   {fmt.Sprint(toID)},
		"with_transfers":  {"0"},
		"date":            {date},
	}
	if err := c.get(ctx, "v3/trips", query, &resp); err != nil {
		return nil, err
	}

	offers := make([]model.TripOffer, 0, len(resp.Direct))
	for _, trip := range resp.Direct {
		offer := model.TripOffer{
			ID:          trip.ID,
			TrainNumber: trip.Train.Number,
		}
		for _, wc := range trip.Train.WagonClasses {
			offer.Classes = append(offer.Classes, model.WagonClassOffer{
				ID:        wc.ID,
				Name:      wc.Name,
				FreeSeats: wc.FreeSeats,
				Price:     wc.Price,
			})
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// FetchSeats lists the purchasable seats of one wagon class on one trip,
// per physical wagon.
func (c *Client) FetchSeats(ctx context.Context, tripID int, wagonClassID string) ([]model.WagonSeats, error) {
	var resp []tripSeatResponse
	path := fmt.Sprintf("v2/trips/%d/wagons-by-class/%s", tripID, url.PathEscape(wagonClassID))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	wagons := make([]model.WagonSeats, 0, len(resp))
	for _, w := range resp {
		wagons = append(wagons, model.WagonSeats{Number: w.Number, Seats: w.Seats})
	}
	return wagons, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return transient(err)
	}
	for k, val := range apiHeaders {
		req.Header.Set(k, val)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return transient(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return transient(fmt.Errorf("GET %s: HTTP %d: %s", u, resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return transient(fmt.Errorf("GET %s: decoding: %w", u, err))
	}
	return nil
}

// The booking frontend sends these on every API call; requests without
// them get bounced by the anti-bot layer.
var apiHeaders = map[string]string{
	"x-client-locale":    "uk",
	"x-user-agent":       "UZ/2 Web/1 User/guest",
	"referer":            "https://booking.uz.gov.ua/",
	"accept":             "application/json",
	"accept-language":    "uk-UA",
	"sec-ch-ua":          `"Not.A/Brand";v="99", "Chromium";v="136"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": "Windows",
}
