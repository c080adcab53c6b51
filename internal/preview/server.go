package preview

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/widgetkit/pkg/memdom"
	"github.com/vango-dev/widgetkit/pkg/protocol"
)

//go:embed client.js
var clientJS []byte

// Poster runs functions on the goroutine that owns the document.
// frame.Loop implements it.
type Poster interface {
	Post(fn func()) bool
}

// Config configures a Server.
type Config struct {
	// Title is the page title.
	Title string

	// Logger receives connection and request logs.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Registry, if set, is served on /metrics and receives the preview
	// server's own metrics.
	Registry *prometheus.Registry

	// SendBuffer is the number of frames queued per client before the
	// client is dropped. Defaults to 64.
	SendBuffer int

	// ShutdownTimeout bounds graceful shutdown in Serve. Defaults to 5s.
	ShutdownTimeout time.Duration
}

// Server streams a memdom.Document to browsers.
type Server struct {
	doc    *memdom.Document
	loop   Poster
	config Config
	logger *slog.Logger

	hub      *hub
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *metrics

	// seq is only touched on the loop goroutine.
	seq uint64
}

// New creates a server for doc. Mutations already recorded on doc are
// discarded; new clients get them through their reset frame.
func New(doc *memdom.Document, loop Poster, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 64
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Title == "" {
		cfg.Title = "widgetkit preview"
	}

	s := &Server{
		doc:    doc,
		loop:   loop,
		config: cfg,
		logger: cfg.Logger,
		hub:    newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview is a dev tool
			},
		},
	}
	if cfg.Registry != nil {
		s.metrics = newMetrics(cfg.Registry)
	}
	doc.Flush()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/client.js", s.handleClient)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	return s.hub.count()
}

// Flush broadcasts the mutations recorded since the last flush. It must be
// called on the loop goroutine, usually as the loop's after-frame hook.
func (s *Server) Flush() {
	patches := s.doc.Flush()
	if len(patches) == 0 {
		return
	}
	s.seq++
	msg := encodePatches(&protocol.PatchesFrame{Seq: s.seq, Patches: patches})
	n := s.hub.broadcast(msg)
	s.metrics.frameSent(len(patches), n)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.hub.close()
	s.metrics.setClients(0)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", slog.String("address", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("preview shutdown", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="/client.js" defer></script>
</head>
<body>{{.Body}}</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body := make(chan string, 1)
	if !s.loop.Post(func() { body <- s.doc.InnerHTML(s.doc.Root()) }) {
		http.Error(w, "preview is shutting down", http.StatusServiceUnavailable)
		return
	}

	var html string
	select {
	case html = <-body:
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{s.config.Title, template.HTML(html)})
	if err != nil {
		s.logger.Error("render page", slog.String("error", err.Error()))
	}
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientJS)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", slog.String("error", err.Error()))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, s.config.SendBuffer)}
	joined := make(chan bool, 1)
	posted := s.loop.Post(func() {
		// The snapshot starts where the stream left off.
		s.Flush()
		s.seq++
		c.send <- encodePatches(&protocol.PatchesFrame{
			Seq:     s.seq,
			Reset:   true,
			Patches: s.doc.Snapshot(),
		})
		joined <- s.hub.add(c)
	})
	ok := false
	if posted {
		select {
		case ok = <-joined:
		case <-time.After(writeWait):
		}
	}
	if !ok {
		conn.Close()
		return
	}

	s.metrics.setClients(s.hub.count())
	s.logger.Info("preview client connected", slog.String("remote", r.RemoteAddr))
	go c.writeLoop()
	s.readLoop(c)

	s.hub.remove(c)
	s.metrics.setClients(s.hub.count())
	s.logger.Info("preview client disconnected", slog.String("remote", r.RemoteAddr))
}

// readLoop decodes event frames until the connection fails.
func (s *Server) readLoop(c *client) {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", slog.String("error", err.Error()))
			}
			return
		}

		ft, payload, err := protocol.DecodeFrame(msg)
		if err != nil || ft != protocol.FrameEvent {
			s.logger.Warn("unexpected frame", slog.Int("bytes", len(msg)))
			continue
		}
		ev, err := protocol.DecodeEvent(payload)
		if err != nil {
			s.logger.Warn("event decode", slog.String("error", err.Error()))
			continue
		}

		s.metrics.eventReceived(ev.Type)
		s.loop.Post(func() {
			if !s.doc.DispatchEvent(ev) {
				s.logger.Debug("event without handler",
					slog.Uint64("target", ev.Target), slog.String("type", ev.Type))
			}
		})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func encodePatches(pf *protocol.PatchesFrame) []byte {
	return protocol.EncodeFrame(protocol.FramePatches, protocol.EncodePatches(pf))
}
