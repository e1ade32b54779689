package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quiniela-ai/quiniela-web/countdown"
	"github.com/quiniela-ai/quiniela-web/quiniela"
)

var cet = time.FixedZone("CET", 3600)

var friday = countdown.Deadline{
	Weekday:  time.Friday,
	Hour:     21,
	Location: cet,
}

type stub struct {
	data quiniela.Data
}

func (s stub) Fetch(context.Context) quiniela.Data {
	return s.data
}

func newTestServer(t *testing.T, data quiniela.Data) *Server {
	t.Helper()

	s, err := NewServer(stub{data}, friday, Options{}, zap.NewNop())
	require.NoError(t, err)

	s.now = func() time.Time {
		return time.Date(2026, time.October, 16, 22, 0, 0, 0, cet)
	}

	return s
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)

	return w, doc
}

func TestIndexWithoutPredictions(t *testing.T) {
	s := newTestServer(t, quiniela.Data{Predictions: []quiniela.Prediction{}, Statistics: []quiniela.Statistics{}})

	w, doc := get(t, s, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, 1, doc.Find("#processing").Length())
	assert.Contains(t, doc.Find("#processing h3").Text(), "Generando Pronósticos")
	assert.Equal(t, 0, doc.Find(".quiniela-row").Length())
	assert.Equal(t, 0, doc.Find("#predictions").Length())
	assert.Equal(t, 0, doc.Find("#banner").Length())
	assert.Equal(t, 0, doc.Find("#statistics").Length())
}

func TestIndexWithPredictions(t *testing.T) {
	data := quiniela.Data{
		Predictions: []quiniela.Prediction{
			{Local: "Real Madrid", Visitante: "Barcelona", PronosticoLogico: "1", PronosticoSorpresa: "X"},
		},
		Statistics: []quiniela.Statistics{},
	}

	s := newTestServer(t, data)

	_, doc := get(t, s, "/")

	assert.Equal(t, 0, doc.Find("#processing").Length())

	rows := doc.Find(".quiniela-row")
	require.Equal(t, 1, rows.Length())

	row := rows.First()
	assert.Equal(t, "1", strings.TrimSpace(row.Find(".index").Text()))
	assert.Equal(t, "Real Madrid", row.Find(".local").Text())
	assert.Equal(t, "vs", row.Find(".vs").Text())
	assert.Equal(t, "Barcelona", row.Find(".visitante").Text())
	assert.Equal(t, "1", row.Find(".badge.logica").Text())
	assert.Equal(t, "X", row.Find(".badge.sorpresa").Text())
	assert.Equal(t, 0, row.Find(".tooltip").Length())
	assert.Equal(t, 0, row.Find(".fecha").Length())
}

func TestIndexRendersRowsInOrder(t *testing.T) {
	data := quiniela.Data{
		Predictions: []quiniela.Prediction{
			{Local: "Villarreal", Visitante: "Girona", PronosticoLogico: "1", PronosticoSorpresa: "2"},
			{Local: "Alavés", Visitante: "Getafe", PronosticoLogico: "X", PronosticoSorpresa: "1"},
			{Local: "Celta", Visitante: "Mallorca", PronosticoLogico: "1", PronosticoSorpresa: "X"},
			{Local: "Athletic", Visitante: "Osasuna"},
		},
		Statistics: []quiniela.Statistics{},
	}

	s := newTestServer(t, data)

	_, doc := get(t, s, "/")

	rows := doc.Find(".quiniela-row")
	require.Equal(t, len(data.Predictions), rows.Length())

	rows.Each(func(i int, row *goquery.Selection) {
		assert.Equal(t, data.Predictions[i].Local, row.Find(".local").Text())
		assert.Equal(t, data.Predictions[i].Visitante, row.Find(".visitante").Text())
		assert.Equal(t, data.Predictions[i].PronosticoLogico, row.Find(".badge.logica").Text())

		index, _ := row.Attr("data-index")
		assert.Equal(t, []string{"1", "2", "3", "4"}[i], index)
	})
}

func TestIndexRendersJustificationsAndDate(t *testing.T) {
	data := quiniela.Data{
		Predictions: []quiniela.Prediction{
			{
				Fecha:                 "2026-10-18",
				Local:                 "Betis",
				Visitante:             "Sevilla",
				PronosticoLogico:      "1",
				JustificacionLogica:   "Racha de 5 victorias en casa",
				PronosticoSorpresa:    "2",
				JustificacionSorpresa: "Derbi <imprevisible>",
			},
		},
		Statistics: []quiniela.Statistics{},
	}

	s := newTestServer(t, data)

	w, doc := get(t, s, "/")

	row := doc.Find(".quiniela-row").First()
	tooltips := row.Find(".tooltip")

	require.Equal(t, 2, tooltips.Length())
	assert.Equal(t, "Racha de 5 victorias en casa", tooltips.Eq(0).Text())
	assert.Equal(t, "Derbi <imprevisible>", tooltips.Eq(1).Text())
	assert.Equal(t, "2026-10-18", row.Find(".fecha").Text())
	assert.Contains(t, w.Body.String(), "Derbi &lt;imprevisible&gt;")
}

func TestIndexWithFailedFetch(t *testing.T) {
	s := newTestServer(t, quiniela.Data{Predictions: []quiniela.Prediction{}, Statistics: []quiniela.Statistics{}, Failed: true})

	_, doc := get(t, s, "/")

	assert.Equal(t, "No se pudieron conectar los servicios de IA", doc.Find("#banner").Text())
	assert.Equal(t, 1, doc.Find("#processing").Length())
}

func TestIndexWithStatistics(t *testing.T) {
	data := quiniela.Data{
		Predictions: []quiniela.Prediction{},
		Statistics: []quiniela.Statistics{
			{Jornada: "24", Aciertos: "9", Total: "15", Porcentaje: "60%"},
			{Jornada: "25", Aciertos: "11", Total: "15", Porcentaje: "73%"},
		},
	}

	s := newTestServer(t, data)

	_, doc := get(t, s, "/")

	rows := doc.Find(".statistics-row")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "25", rows.Eq(1).Find(".jornada").Text())
	assert.Equal(t, "11 / 15", rows.Eq(1).Find(".aciertos").Text())
	assert.Equal(t, "73%", rows.Eq(1).Find(".porcentaje").Text())
}

func TestIndexCountdown(t *testing.T) {
	s := newTestServer(t, quiniela.Data{Predictions: []quiniela.Prediction{}, Statistics: []quiniela.Statistics{}})

	_, doc := get(t, s, "/")

	countdown := doc.Find("#countdown")
	require.Equal(t, 1, countdown.Length())

	deadline, ok := countdown.Attr("data-deadline")
	require.True(t, ok)
	assert.Equal(t, "2026-10-23T21:00:00+01:00", deadline)

	_, hidden := countdown.Attr("hidden")
	assert.True(t, hidden, "countdown should only be revealed client side")

	assert.Contains(t, doc.Find(".section-header .muted").Text(), "Cierre: Viernes 21:00")
	assert.Contains(t, doc.Find("footer").Text(), "2026")
}

func TestIndexNotFound(t *testing.T) {
	s := newTestServer(t, quiniela.Data{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, quiniela.Data{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, quiniela.Data{})

	for path, contentType := range map[string]string{
		"/css/quiniela.css": "text/css",
		"/js/quiniela.js":   "javascript",
	} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), contentType, path)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/css/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, quiniela.Data{})

	for path, expected := range map[string]string{"/ping": "pong\n", "/health": "ok\n"} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, expected, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t, quiniela.Data{})
	s.options.MaxConnections = 4

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- s.Serve(ctx, listener)
	}()

	client := http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	response, err := client.Get("http://" + listener.Addr().String() + "/ping")
	require.NoError(t, err)

	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	assert.Equal(t, "pong\n", string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
