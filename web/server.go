package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/quiniela-ai/quiniela-web/countdown"
	"github.com/quiniela-ai/quiniela-web/quiniela"
	"github.com/quiniela-ai/quiniela-web/web/html"
)

// Server renders the quiniela page and its static assets.
type Server struct {
	source   quiniela.Source
	deadline countdown.Deadline
	options  Options
	page     *template.Template
	now      func() time.Time
	log      *zap.Logger
}

type Options struct {
	Bind              string
	ReadHeaderTimeout time.Duration
	MaxConnections    int
}

func NewServer(source quiniela.Source, deadline countdown.Deadline, options Options, log *zap.Logger) (*Server, error) {
	t, err := template.New("index.html").ParseFS(html.HTML, "index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page template (%w)", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		source:   source,
		deadline: deadline,
		options:  options,
		page:     t,
		now:      time.Now,
		log:      log,
	}, nil
}

func (s *Server) Handler() http.Handler {
	fs := filesystem{
		FileSystem: http.FS(html.HTML),
	}

	mux := http.NewServeMux()

	mux.Handle("/css/", http.FileServer(fs))
	mux.Handle("/js/", http.FileServer(fs))
	mux.HandleFunc("/ping", ping)
	mux.HandleFunc("/health", health)
	mux.HandleFunc("/", s.index)

	return s.logging(mux)
}

// Run listens on the configured bind address and serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.options.Bind)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

// Serve accepts connections on the listener until the context is cancelled, after which in-flight
// requests are given five seconds to complete.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.options.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.options.MaxConnections)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.options.ReadHeaderTimeout,
	}

	errs := make(chan error, 1)

	go func() {
		s.log.Info("listening", zap.String("address", listener.Addr().String()))
		errs <- srv.Serve(listener)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			s.log.Warn("error shutting down server", zap.Error(err))
		}

		<-errs
		s.log.Info("server stopped")

		return nil
	}
}

func ping(w http.ResponseWriter, rq *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("pong\n"))
}

func health(w http.ResponseWriter, rq *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}
