package web

import (
	"bytes"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/quiniela-ai/quiniela-web/quiniela"
)

type page struct {
	Predictions   []row
	Statistics    []quiniela.Statistics
	HasData       bool
	Failed        bool
	Deadline      string
	DeadlineLabel string
	Year          int
}

type row struct {
	Index int
	quiniela.Prediction
}

func makePage(data quiniela.Data, deadline time.Time, label string, now time.Time) page {
	rows := make([]row, 0, len(data.Predictions))
	for i, p := range data.Predictions {
		rows = append(rows, row{
			Index:      i + 1,
			Prediction: p,
		})
	}

	return page{
		Predictions:   rows,
		Statistics:    data.Statistics,
		HasData:       data.HasData(),
		Failed:        data.Failed,
		Deadline:      deadline.Format(time.RFC3339),
		DeadlineLabel: label,
		Year:          now.Year(),
	}
}

func (s *Server) index(w http.ResponseWriter, rq *http.Request) {
	if rq.URL.Path != "/" {
		http.NotFound(w, rq)
		return
	}

	if rq.Method != http.MethodGet && rq.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := s.now()
	data := s.source.Fetch(rq.Context())
	p := makePage(data, s.deadline.Next(now), s.deadline.Label(), now)

	var b bytes.Buffer
	if err := s.page.Execute(&b, p); err != nil {
		s.log.Error("error formatting page", zap.Error(err))
		http.Error(w, "Error formatting page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(b.Bytes())
}
