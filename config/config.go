package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	UZ struct {
		StationFrom  string   `toml:"station_from" validate:"required"`
		StationTo    string   `toml:"station_to" validate:"required"`
		Date         string   `toml:"date" validate:"required,datetime=2006-01-02"`
		WagonClasses []string `toml:"wagon_classes" validate:"required,min=1"`
		Trains       []string `toml:"trains" validate:"required,min=1"`
	} `toml:"uz"`
	Worker struct {
		IntervalSeconds      int `toml:"interval_seconds" validate:"gte=1"`
		SeatsPerCompartment  int `toml:"seats_per_compartment" validate:"gte=1"`
		CompartmentsPerWagon int `toml:"compartments_per_wagon" validate:"gte=1"`
	} `toml:"worker"`
	Telegram struct {
		BotToken string `toml:"bot_token" validate:"required"`
		ChatID   int64  `toml:"chat_id" validate:"required"`
	} `toml:"telegram"`
	DB struct {
		Path string `toml:"path"`
	} `toml:"db"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Log struct {
		File string `toml:"file"`
	} `toml:"log"`
}

var pathHierarchy = []string{
	"uzwatch.toml",
	"/etc/uzwatch.toml",
	"/usr/local/etc/uzwatch.toml",
}

// Load reads the config from path, or from the first file in the default
// hierarchy when path is empty, then fills defaults and validates.
func Load(path string) (*Config, error) {
	paths := pathHierarchy
	if path != "" {
		paths = []string{path}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil && os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, err
		}

		defer f.Close()

		dec := toml.NewDecoder(f)
		var conf Config
		md, err := dec.Decode(&conf)
		if err != nil {
			return nil, fmt.Errorf("decoding '%s': %w", p, err)
		}

		conf.fillDefaults(md)
		if err := validator.New().Struct(&conf); err != nil {
			return nil, fmt.Errorf("validating '%s': %w", p, err)
		}

		return &conf, nil
	}

	return nil, fmt.Errorf("no config file exists {%s}", strings.Join(paths, ", "))
}

// fillDefaults only fills keys the file leaves out; an explicit bad value
// (interval_seconds = 0) must reach the validator, not get papered over.
func (conf *Config) fillDefaults(md toml.MetaData) {
	if !md.IsDefined("worker", "interval_seconds") {
		conf.Worker.IntervalSeconds = 60
	}
	if !md.IsDefined("worker", "seats_per_compartment") {
		conf.Worker.SeatsPerCompartment = 4
	}
	if !md.IsDefined("worker", "compartments_per_wagon") {
		conf.Worker.CompartmentsPerWagon = 9
	}
	if conf.DB.Path == "" {
		conf.DB.Path = "uzwatch.db"
	}
	if conf.Server.Addr == "" {
		conf.Server.Addr = ":8399"
	}
}

func (conf *Config) Interval() time.Duration {
	return time.Duration(conf.Worker.IntervalSeconds) * time.Second
}
