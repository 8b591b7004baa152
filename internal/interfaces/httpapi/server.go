package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

type Server struct {
	http *http.Server
	log  *logging.Logger
}

func NewServer(addr string, readTimeout, writeTimeout time.Duration, handler *Handler, log *logging.Logger) *Server {
	chain := recoverPanic(log, requestLogging(log, newRouter(handler)))

	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      chain,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		log: log,
	}
}

// Start blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.http.Addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
