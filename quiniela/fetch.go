package quiniela

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	PREDICTIONS = "Semana_Actual!A2:H20"
	STATISTICS  = "Historial!A2:D10"
)

// Source is anything that can produce the current predictions and statistics.
type Source interface {
	Fetch(ctx context.Context) Data
}

// Client reads the predictions and statistics ranges from a Google Sheets spreadsheet using a
// service account credential.
type Client struct {
	credentials string
	spreadsheet string
	predictions string
	statistics  string
	timeout     time.Duration
	log         *zap.Logger

	dial func(ctx context.Context, creds *google.Credentials) (*sheets.Service, error)
}

type Settings struct {
	Credentials   string
	SpreadsheetID string
	Predictions   string
	Statistics    string
	Timeout       time.Duration
}

func NewClient(settings Settings, log *zap.Logger) *Client {
	c := Client{
		credentials: settings.Credentials,
		spreadsheet: strings.TrimSpace(settings.SpreadsheetID),
		predictions: settings.Predictions,
		statistics:  settings.Statistics,
		timeout:     settings.Timeout,
		log:         log,
		dial:        dial,
	}

	if c.predictions == "" {
		c.predictions = PREDICTIONS
	}

	if c.statistics == "" {
		c.statistics = STATISTICS
	}

	if c.log == nil {
		c.log = zap.NewNop()
	}

	return &c
}

// Fetch retrieves the current week's predictions and the accuracy history. Any failure (missing or
// malformed credentials, missing spreadsheet ID, transport or authorisation errors) is logged and
// collapses to an empty result so that the page always renders.
func (c *Client) Fetch(ctx context.Context) Data {
	data, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("error fetching quiniela data",
			zap.Error(err),
			zap.String("client", c.clientEmail()),
			zap.Int("sheet-id-length", len(c.spreadsheet)))

		return empty()
	}

	return *data
}

func (c *Client) fetch(ctx context.Context) (data *Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("unexpected error (%v)", r)
		}
	}()

	if strings.TrimSpace(c.credentials) == "" {
		return nil, fmt.Errorf("G_SHEETS_CREDENTIALS not defined")
	}

	creds, err := Credentials(ctx, c.credentials)
	if err != nil {
		return nil, err
	}

	if c.spreadsheet == "" {
		return nil, fmt.Errorf("spreadsheet ID not defined")
	}

	google, err := c.dial(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	c.log.Debug("fetching quiniela",
		zap.Int("sheet-id-length", len(c.spreadsheet)),
		zap.String("predictions", c.predictions),
		zap.String("statistics", c.statistics))

	rows, err := c.get(ctx, google, c.predictions)
	if err != nil {
		return nil, err
	}

	predictions := MakePredictions(rows)

	rows, err = c.get(ctx, google, c.statistics)
	if err != nil {
		return nil, err
	}

	statistics := MakeStatistics(rows)

	c.log.Debug("fetched quiniela",
		zap.Int("predictions", len(predictions)),
		zap.Int("statistics", len(statistics)))

	return &Data{
		Predictions: predictions,
		Statistics:  statistics,
	}, nil
}

func (c *Client) get(ctx context.Context, google *sheets.Service, area string) ([][]any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	response, err := google.Spreadsheets.Values.Get(c.spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet range %s (%w)", area, err)
	}

	return response.Values, nil
}

// clientEmail returns the masked service account email, if the credential can be parsed at all.
func (c *Client) clientEmail() string {
	b, err := NormaliseCredentials(c.credentials)
	if err != nil {
		return ""
	}

	var credentials struct {
		ClientEmail string `json:"client_email"`
	}

	if err := json.Unmarshal(b, &credentials); err != nil || credentials.ClientEmail == "" {
		return ""
	}

	return MaskEmail(credentials.ClientEmail)
}

func dial(ctx context.Context, creds *google.Credentials) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithCredentials(creds))
}
