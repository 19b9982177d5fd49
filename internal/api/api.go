// Package api provides HTTP handlers and the API server for FitFlow.
//
// It exposes the conversational turn surface plus read-only progress and
// profile endpoints backed by the store and the aggregation engine.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fitflow/fitflow/internal/progress"
	"github.com/fitflow/fitflow/internal/store"
)

const defaultAddr = ":8080"

// TurnHandler processes one user turn and returns the reply text.
type TurnHandler func(ctx context.Context, userID int64, text string) (string, error)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for NewServer.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server hosts the FitFlow HTTP endpoints.
type Server struct {
	addr     string
	turns    TurnHandler
	progress *progress.Service
	store    store.Store
	httpSrv  *http.Server
}

// NewServer creates an API server over the given turn handler and store.
func NewServer(turns TurnHandler, st store.Store, opts ...Option) *Server {
	o := Opts{Addr: defaultAddr}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		addr:     o.Addr,
		turns:    turns,
		progress: progress.NewService(st),
		store:    st,
	}
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/turns", s.turnsHandler)
	mux.HandleFunc("/progress", s.progressHandler)
	mux.HandleFunc("/progress/weekly", s.weeklyProgressHandler)
	mux.HandleFunc("/profiles", s.profilesHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", s.addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
			return err
		}
		slog.Info("API server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
