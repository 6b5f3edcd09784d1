package uz

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Session executes one API request. *http.Client satisfies it.
type Session interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionProvider supplies a transport the booking API will accept. How it
// gets one — a warmed-up plain client, a headless browser, a recording fake
// in tests — is its own business.
type SessionProvider interface {
	Session(ctx context.Context) (Session, error)
}

// HTTPProvider warms an http.Client per session: a cookie jar plus one
// visit to the booking site, so API calls carry the cookies a browser
// session would.
type HTTPProvider struct {
	WarmupURL string
	Timeout   time.Duration
}

func NewHTTPProvider() *HTTPProvider {
	return &HTTPProvider{
		WarmupURL: "https://booking.uz.gov.ua/",
		Timeout:   30 * time.Second,
	}
}

func (p *HTTPProvider) Session(ctx context.Context) (Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, transient(err)
	}
	client := &http.Client{Jar: jar, Timeout: p.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.WarmupURL, nil)
	if err != nil {
		return nil, transient(err)
	}
	req.Header.Set("user-agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
	req.Header.Set("accept-language", "uk-UA")

	resp, err := client.Do(req)
	if err != nil {
		return nil, transient(fmt.Errorf("warming session: %w", err))
	}
	resp.Body.Close()

	return client, nil
}
