package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/quiniela-ai/quiniela-web/countdown"
	"github.com/quiniela-ai/quiniela-web/quiniela"
)

type Config struct {
	Server     Server        `yaml:"server"`
	Sheets     Sheets        `yaml:"sheets"`
	Revalidate time.Duration `yaml:"revalidate"`
	Deadline   Deadline      `yaml:"deadline"`
	Log        Log           `yaml:"log"`
}

type Server struct {
	Bind              string        `yaml:"bind"`
	ReadHeaderTimeout time.Duration `yaml:"read-header-timeout"`
	MaxConnections    int           `yaml:"max-connections"`
}

type Sheets struct {
	Credentials   string        `yaml:"-"`
	SpreadsheetID string        `yaml:"spreadsheet-id"`
	Predictions   string        `yaml:"predictions"`
	Statistics    string        `yaml:"statistics"`
	Timeout       time.Duration `yaml:"timeout"`
}

type Deadline struct {
	Weekday  string `yaml:"weekday"`
	Hour     int    `yaml:"hour"`
	Timezone string `yaml:"timezone"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Environment variables. The names match those used by the existing deployment so that the same
// .env.local file can be reused.
const (
	CREDENTIALS    = "G_SHEETS_CREDENTIALS"
	SPREADSHEET_ID = "NEXT_PUBLIC_SHEET_ID"
	GOOGLE_SHEET   = "GOOGLE_SHEET_ID"
	PORT           = "PORT"
	LOG_LEVEL      = "LOG_LEVEL"
	REVALIDATE     = "REVALIDATE_SECONDS"
)

// ENV_FILES are loaded (if present) before the environment is read. Variables already set in the
// environment are not overridden.
var ENV_FILES = []string{".env.local", ".env"}

func NewConfig() *Config {
	return &Config{
		Server: Server{
			Bind:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			MaxConnections:    256,
		},
		Sheets: Sheets{
			Predictions: quiniela.PREDICTIONS,
			Statistics:  quiniela.STATISTICS,
			Timeout:     15 * time.Second,
		},
		Revalidate: 60 * time.Second,
		Deadline: Deadline{
			Weekday:  "friday",
			Hour:     21,
			Timezone: "Europe/Madrid",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the (optional) YAML configuration file, then applies the environment. A missing
// configuration file is not an error.
func Load(file string) (*Config, error) {
	c := NewConfig()

	if file != "" {
		if err := c.load(file); err != nil {
			return nil, err
		}
	}

	for _, f := range ENV_FILES {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %v (%w)", f, err)
		}
	}

	if err := c.env(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) load(file string) error {
	bytes, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	if err := yaml.Unmarshal(bytes, c); err != nil {
		return fmt.Errorf("invalid configuration file %v (%w)", file, err)
	}

	return nil
}

func (c *Config) env() error {
	c.Sheets.Credentials = os.Getenv(CREDENTIALS)

	if v := os.Getenv(SPREADSHEET_ID); v != "" {
		c.Sheets.SpreadsheetID = v
	} else if v := os.Getenv(GOOGLE_SHEET); v != "" {
		c.Sheets.SpreadsheetID = v
	}

	if v := os.Getenv(PORT); v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return fmt.Errorf("invalid %v '%v'", PORT, v)
		}

		c.Server.Bind = ":" + v
	}

	if v := os.Getenv(LOG_LEVEL); v != "" {
		c.Log.Level = v
	}

	if v := os.Getenv(REVALIDATE); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %v '%v'", REVALIDATE, v)
		}

		c.Revalidate = time.Duration(seconds) * time.Second
	}

	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Bind) == "" {
		return fmt.Errorf("missing server bind address")
	}

	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("invalid read-header-timeout (%v)", c.Server.ReadHeaderTimeout)
	}

	if c.Revalidate <= 0 {
		return fmt.Errorf("invalid revalidation interval (%v)", c.Revalidate)
	}

	if !strings.Contains(c.Sheets.Predictions, "!") {
		return fmt.Errorf("invalid predictions range '%s' - expected something like 'Semana_Actual!A2:H20'", c.Sheets.Predictions)
	}

	if !strings.Contains(c.Sheets.Statistics, "!") {
		return fmt.Errorf("invalid statistics range '%s' - expected something like 'Historial!A2:D10'", c.Sheets.Statistics)
	}

	if _, err := c.Deadline.Parse(); err != nil {
		return err
	}

	return nil
}

// Parse resolves the configured deadline.
func (d Deadline) Parse() (countdown.Deadline, error) {
	weekday, err := countdown.ParseWeekday(d.Weekday)
	if err != nil {
		return countdown.Deadline{}, err
	}

	if d.Hour < 0 || d.Hour > 23 {
		return countdown.Deadline{}, fmt.Errorf("invalid deadline hour (%v)", d.Hour)
	}

	location := time.Local
	if d.Timezone != "" {
		if location, err = time.LoadLocation(d.Timezone); err != nil {
			return countdown.Deadline{}, fmt.Errorf("invalid deadline timezone '%v' (%w)", d.Timezone, err)
		}
	}

	return countdown.Deadline{
		Weekday:  weekday,
		Hour:     d.Hour,
		Location: location,
	}, nil
}

// QuinielaSettings returns the settings for the Google Sheets client.
func (c *Config) QuinielaSettings() quiniela.Settings {
	return quiniela.Settings{
		Credentials:   c.Sheets.Credentials,
		SpreadsheetID: c.Sheets.SpreadsheetID,
		Predictions:   c.Sheets.Predictions,
		Statistics:    c.Sheets.Statistics,
		Timeout:       c.Sheets.Timeout,
	}
}
