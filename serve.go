package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
)

// Serve exposes a read-only status page so the operator can check the loop
// without opening Telegram. It reads the same store-backed state the loop
// writes, through the status atom.
func (w *Watcher) Serve(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusOK)
		fmt.Fprintln(rw, "ok")
	})

	mux.HandleFunc("/", func(rw http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			http.Error(rw, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		st := w.status.Deref()
		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")

		fmt.Fprintf(rw, "uzwatch: %s → %s on %s\n\n",
			w.config.UZ.StationFrom, w.config.UZ.StationTo, w.config.UZ.Date)
		if st.StartedAt.IsZero() {
			fmt.Fprintln(rw, "starting up")
			return
		}
		fmt.Fprintf(rw, "started:    %s\n", humanize.Time(st.StartedAt))
		if st.LastCycle.IsZero() {
			fmt.Fprintf(rw, "last cycle: none yet\n")
		} else {
			fmt.Fprintf(rw, "last cycle: %s\n", humanize.Time(st.LastCycle))
		}
		fmt.Fprintf(rw, "cycles:     %d\n", st.Cycles)
		fmt.Fprintf(rw, "reports:    %d\n", st.Reports)
		if st.LastErr != "" {
			fmt.Fprintf(rw, "last error: %s\n", st.LastErr)
		}
	})

	return listenAndServe(ctx, w.config.Server.Addr, mux)
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := http.Server{Addr: addr, Handler: handler}
	errs := make(chan error)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Printf("listening at %s", addr)
	select {
	case err := <-errs:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		cause := context.Cause(ctx)
		shutdownErr := srv.Shutdown(context.Background())
		return errors.Join(cause, shutdownErr)
	}
}
