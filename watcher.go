package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
	"monks.co/uzwatch/atom"
	"monks.co/uzwatch/config"
	"monks.co/uzwatch/logger"
	"monks.co/uzwatch/model"
	"monks.co/uzwatch/notify"
	"monks.co/uzwatch/uz"
)

// Source is the slice of the UZ API one cycle needs. *uz.Client satisfies
// it.
type Source interface {
	ResolveStations(ctx context.Context, from, to string) (int, int, error)
	ListTrips(ctx context.Context, fromID, toID int, date string) ([]model.TripOffer, error)
	FetchSeats(ctx context.Context, tripID int, wagonClassID string) ([]model.WagonSeats, error)
}

// SourceProvider opens a fresh Source per use. The booking site expects a
// warmed session, so sessions are not held across cycles.
type SourceProvider interface {
	Open(ctx context.Context) (Source, error)
}

// Store is what the loop needs from persistence. *db.DB satisfies it.
type Store interface {
	EnsureTrip(ctx context.Context, id int, trainNumber string) (model.Trip, error)
	EnsureWagon(ctx context.Context, id, name string) (model.WagonClass, error)
	PreviousSnapshot(ctx context.Context, tripID int, wagonID string) (*model.Snapshot, error)
	ReplaceSnapshot(ctx context.Context, tripID int, wagonID string, cur *model.Snapshot) error
}

// Status is what the HTTP page shows.
type Status struct {
	StartedAt time.Time
	LastCycle time.Time
	Cycles    int
	Reports   int
	LastErr   string
}

type Watcher struct {
	config   *config.Config
	store    Store
	source   SourceProvider
	notifier notify.Notifier
	status   *atom.Atom[Status]
	log      logger.Logger

	// injectable for determinism in tests
	now        func() time.Time
	newBackOff func() backoff.BackOff

	fromID, toID int
}

func NewWatcher(conf *config.Config, store Store, source SourceProvider, notifier notify.Notifier) *Watcher {
	return &Watcher{
		config:   conf,
		store:    store,
		source:   source,
		notifier: notifier,
		status:   atom.New(Status{}),
		log:      logger.New("watch"),
		now:      time.Now,
		newBackOff: func() backoff.BackOff {
			return newLinearBackOff(10*time.Second, 3)
		},
	}
}

func (w *Watcher) Go(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.Serve(ctx)
	})

	g.Go(func() error {
		return w.Watch(ctx)
	})

	return g.Wait()
}

// Watch resolves the route once, announces itself, then cycles until the
// context is cancelled. A cycle that keeps failing after the retry budget
// takes the whole loop down.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := w.resolveStations(ctx); err != nil {
		return fmt.Errorf("resolving stations: %w", err)
	}

	statusID := w.announce(ctx)
	w.status.Swap(func(s Status) Status {
		s.StartedAt = w.now()
		return s
	})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.retry(ctx, func() error { return w.cycle(ctx, statusID) }); err != nil {
			return fmt.Errorf("cycle: %w", err)
		}

		w.log.Printf("cycle done; sleeping %s", w.config.Interval())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.config.Interval()):
		}
	}
}

// resolveStations caches the route's station ids for the process lifetime.
// An unknown station name is misconfiguration and aborts startup without
// retrying; network flakes retry like any cycle.
func (w *Watcher) resolveStations(ctx context.Context) error {
	return w.retry(ctx, func() error {
		src, err := w.source.Open(ctx)
		if err != nil {
			return err
		}
		fromID, toID, err := src.ResolveStations(ctx, w.config.UZ.StationFrom, w.config.UZ.StationTo)
		if errors.Is(err, uz.ErrStationNotFound) {
			return backoff.Permanent(err)
		} else if err != nil {
			return err
		}
		w.fromID, w.toID = fromID, toID
		return nil
	})
}

// announce sends the pinned status message. Losing it is survivable: the
// operator just won't see cycle timestamps until restart.
func (w *Watcher) announce(ctx context.Context) int {
	statusID, err := w.notifier.Send(ctx, "Бот запущено", false)
	if err != nil {
		w.log.Printf("sending status message: %s", err)
		return 0
	}
	if err := w.notifier.Pin(ctx, statusID); err != nil {
		w.log.Printf("pinning status message: %s", err)
	}
	return statusID
}

func (w *Watcher) retry(ctx context.Context, op func() error) error {
	return backoff.RetryNotify(op,
		backoff.WithContext(w.newBackOff(), ctx),
		func(err error, delay time.Duration) {
			w.log.Printf("cycle failed, retrying in %s: %s", delay, err)
			w.status.Swap(func(s Status) Status {
				s.LastErr = err.Error()
				return s
			})
		})
}

// cycle is one full pass over all selected (trip, wagon class) pairs:
// fetch, diff, persist, report. Pairs persisted before a failure stay
// persisted; the retried cycle sees them as unchanged and stays quiet.
func (w *Watcher) cycle(ctx context.Context, statusID int) error {
	src, err := w.source.Open(ctx)
	if err != nil {
		return err
	}

	offers, err := src.ListTrips(ctx, w.fromID, w.toID, w.config.UZ.Date)
	if err != nil {
		return err
	}

	layout := compartmentLayout{
		SeatsPer: w.config.Worker.SeatsPerCompartment,
		PerWagon: w.config.Worker.CompartmentsPerWagon,
	}

	reports := 0
	for _, offer := range selectTrips(offers, w.config.UZ.Trains, w.config.UZ.WagonClasses) {
		trip, err := w.store.EnsureTrip(ctx, offer.ID, offer.TrainNumber)
		if err != nil {
			return err
		}

		for _, class := range offer.Classes {
			if err := ctx.Err(); err != nil {
				return err
			}

			wagonClass, err := w.store.EnsureWagon(ctx, class.ID, class.Name)
			if err != nil {
				return err
			}

			// fetch with the listing's id: the API reissues trip ids
			// (new date, schedule reshuffle) while the stored id stays
			// the stable persistence key for this train
			wagons, err := src.FetchSeats(ctx, offer.ID, wagonClass.ID)
			if err != nil {
				return err
			}
			cur := model.NewSnapshot(wagons)

			prev, err := w.store.PreviousSnapshot(ctx, trip.ID, wagonClass.ID)
			if err != nil {
				return err
			}

			added, removed := model.Diff(prev, cur)
			if added.Size() == 0 && removed.Size() == 0 {
				continue
			}

			if err := w.store.ReplaceSnapshot(ctx, trip.ID, wagonClass.ID, cur); err != nil {
				return err
			}

			text, silent, ok := composeReport(trip.TrainNumber, wagonClass.Name,
				sortedSeats(added), sortedSeats(removed), layout)
			if !ok {
				continue
			}
			if _, err := w.notifier.Send(ctx, text, silent); err != nil {
				// the baseline is already persisted; losing one
				// notification beats blocking the watch on it
				w.log.Printf("sending report for %s (%s): %s", trip.TrainNumber, wagonClass.Name, err)
				continue
			}
			reports++
			w.log.Printf("reported %s (%s): %d added, %d removed",
				trip.TrainNumber, wagonClass.Name, added.Size(), removed.Size())
		}
	}

	now := w.now()
	if statusID != 0 {
		// 0 means the startup announcement never went out; there is no
		// message to edit
		if err := w.notifier.Edit(ctx, statusID, statusText(now)); err != nil {
			w.log.Printf("editing status message: %s", err)
		}
	}
	w.status.Swap(func(s Status) Status {
		s.LastCycle = now
		s.Cycles++
		s.Reports += reports
		s.LastErr = ""
		return s
	})
	return nil
}

func statusText(now time.Time) string {
	return fmt.Sprintf("Бот запущено\n\nОстаннє оновлення: %s",
		now.In(kyiv).Format("02.01.2006 15:04"))
}

var kyiv = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		return time.UTC
	}
	return loc
}()
