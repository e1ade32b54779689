package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type recorder struct {
	http.ResponseWriter
	status int
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		rw := recorder{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		w.Header().Set("X-Request-Id", id)

		next.ServeHTTP(&rw, rq)

		s.log.Debug("request",
			zap.String("request", id),
			zap.String("method", rq.Method),
			zap.String("path", rq.URL.Path),
			zap.Int("status", rw.status),
			zap.Duration("duration", time.Since(start)))
	})
}
