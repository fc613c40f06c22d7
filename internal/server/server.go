// Package server streams simulation snapshots and game events to external
// viewers over WebSocket, and serves the latest snapshot over plain HTTP.
// Viewers are read-only: nothing they send reaches the simulation.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/sim"
)

// Config holds server configuration
type Config struct {
	ListenAddr string
	MaxClients int

	// SendBuffer is how many frames may queue per viewer before new frames
	// are dropped for it.
	SendBuffer      int
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		MaxClients:      64,
		SendBuffer:      16,
		WriteTimeout:    10 * time.Second,
		PingInterval:    25 * time.Second,
		ReadTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// FromViewerConfig maps the game's viewer section onto server defaults.
func FromViewerConfig(cfg config.ViewerConfig) Config {
	c := DefaultServerConfig()
	if cfg.Addr != "" {
		c.ListenAddr = cfg.Addr
	}
	return c
}

// Server fans snapshots and events out to connected viewers.
type Server struct {
	config Config
	logger log.Log

	mu      sync.Mutex
	clients map[*client]struct{}

	latest  atomic.Pointer[encoded]
	running atomic.Bool

	dropped   atomic.Uint64
	published atomic.Uint64
}

func New(cfg Config, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{
		config:  cfg,
		logger:  logger.Named("viewer"),
		clients: make(map[*client]struct{}),
	}
}

// Handler routes /ws, /snapshot and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then closes every viewer.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	defer s.running.Store(false)

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Serve(lis) }()
	s.logger.Info("viewer listening", log.String("addr", lis.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.closeClients()
	err := httpServer.Shutdown(shutdownCtx)
	s.logger.Info("viewer stopped", log.Uint64("frames_dropped", s.dropped.Load()))
	return err
}

// Publish makes snap the latest snapshot and pushes it to every viewer.
func (s *Server) Publish(snap sim.Snapshot) error {
	frame, err := encode(snapshotFrame(snap))
	if err != nil {
		return err
	}
	s.latest.Store(frame)
	s.broadcast(frame)
	return nil
}

// Attach forwards every event published on eventBus to viewers. The returned
// subscription stops the forwarding when cancelled.
func (s *Server) Attach(eventBus bus.EventBus) (bus.Subscription, error) {
	return eventBus.Subscribe(bus.AnyEvent, func(e bus.Event) error {
		frame, err := encode(eventFrame(e))
		if err != nil {
			return err
		}
		s.broadcast(frame)
		return nil
	})
}

func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

type Metrics struct {
	Clients   int
	Published uint64
	Dropped   uint64
}

func (s *Server) GetMetrics() Metrics {
	return Metrics{
		Clients:   s.ClientCount(),
		Published: s.published.Load(),
		Dropped:   s.dropped.Load(),
	}
}

// broadcast never blocks: a viewer whose queue is full misses the frame.
func (s *Server) broadcast(frame *encoded) {
	s.published.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			s.dropped.Add(1)
		}
	}
}

func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.MaxClients > 0 && len(s.clients) >= s.config.MaxClients {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}
