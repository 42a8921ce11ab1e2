package demo

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/statectx/internal/config"
	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/host"
	"github.com/vango-dev/statectx/pkg/render"
	"github.com/vango-dev/statectx/pkg/statectx"
	"github.com/vango-dev/statectx/pkg/telemetry"
	"github.com/vango-dev/statectx/pkg/vdom"
)

// Server serves one shared board over HTTP and websockets.
type Server struct {
	config *config.Config
	logger *slog.Logger

	board    *Board
	root     *host.Root
	metrics  *telemetry.Metrics
	registry *prometheus.Registry
	router   chi.Router

	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*sync.Mutex
	mu       sync.RWMutex

	cancel context.CancelFunc
}

// NewServer mounts the board and builds the router. Close releases both.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())

	s := &Server{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		cancel: cancel,
	}

	var observers []statectx.Observer
	if cfg.Metrics.Enabled {
		s.registry.MustRegister(collectors.NewGoCollector())
		s.metrics = telemetry.Prometheus(
			telemetry.WithRegistry(s.registry),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
		)
		observers = append(observers, s.metrics)
	}
	tracer := telemetry.Tracing(telemetry.WithTracerName(cfg.Name))
	if cfg.Tracing.Enabled {
		observers = append(observers, tracer)
	}

	s.board = NewBoard(base, BoardConfig{
		QuoteURL:     cfg.Demo.QuoteURL,
		FetchTimeout: cfg.Demo.FetchTimeout,
		Observer:     statectx.Observers(observers...),
		Tracer:       tracer,
		Logger:       logger,
	})

	root, err := host.Mount(vdom.Func(s.board.View), &host.Config{Logger: logger, Context: base})
	if err != nil {
		cancel()
		return nil, err
	}
	s.root = root
	s.root.Subscribe(s.broadcast)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/state", s.handleState)
	r.Post("/actions/{name}", s.handleAction)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Root returns the host root the board is mounted on.
func (s *Server) Root() *host.Root {
	return s.root
}

// Board returns the served board.
func (s *Server) Board() *Board {
	return s.board
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	r := render.NewRenderer(render.RendererConfig{Doctype: true})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.RenderToWriter(w, Page(s.config.Name, s.root.HTML())); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

type stateResponse struct {
	Revision uint64         `json:"revision"`
	State    statectx.State `json:"state"`
	Actions  []string       `json:"actions"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	snap := s.board.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{
		Revision: snap.Revision,
		State:    snap.State,
		Actions:  snap.Actions.Names(),
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.board.Snapshot().Actions.Invoke(name)
	if stderrors.Is(err, errors.ErrUnknownAction) {
		writeJSON(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errors.FromError(err, errors.CodeCommandFailed))
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"action": name})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	writeMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = writeMu
	s.mu.Unlock()

	// The first frame is the current board so late joiners are in sync.
	writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, []byte(s.root.HTML()))
	writeMu.Unlock()

	if err == nil {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// broadcast pushes a frame to every connected client. Clients that fail a
// write are dropped.
func (s *Server) broadcast(frame host.Frame) {
	data := []byte(frame.HTML)
	if s.metrics != nil {
		s.metrics.RecordFrame(len(data))
	}

	s.mu.RLock()
	clients := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
	for c, mu := range s.clients {
		clients[c] = mu
	}
	s.mu.RUnlock()

	for conn, mu := range clients {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		err := conn.WriteMessage(websocket.TextMessage, data)
		mu.Unlock()
		if err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Run runs the board loop and serves HTTP on the configured address until
// ctx is done, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- s.root.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	case err = <-loopErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	s.Close()

	if stderrors.Is(err, http.ErrServerClosed) || stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close unmounts the board and disconnects websocket clients.
func (s *Server) Close() {
	s.cancel()
	s.root.Close()

	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]*sync.Mutex)
	s.mu.Unlock()
}
