package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
	"monks.co/uzwatch/config"
	"monks.co/uzwatch/db"
	"monks.co/uzwatch/notify"
	"monks.co/uzwatch/uz"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to uzwatch.toml; searches the default hierarchy when empty")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if conf.Log.File != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   conf.Log.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	store, err := db.Open(conf.DB.Path)
	if err != nil {
		return fmt.Errorf("opening seat db: %w", err)
	}
	defer store.Close()

	notifier, err := notify.NewTelegram(conf.Telegram.BotToken, conf.Telegram.ChatID)
	if err != nil {
		return err
	}

	ctx := NewSigctx()
	w := NewWatcher(conf, store, apiProvider{uz.NewHTTPProvider()}, notifier)
	return w.Go(ctx)
}

// apiProvider warms a session and hands the loop an API client over it.
type apiProvider struct {
	sessions uz.SessionProvider
}

func (p apiProvider) Open(ctx context.Context) (Source, error) {
	session, err := p.sessions.Session(ctx)
	if err != nil {
		return nil, err
	}
	return uz.NewClient(session), nil
}
