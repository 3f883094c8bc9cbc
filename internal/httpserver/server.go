package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/carousel"
	"github.com/tinytelemetry/marquee/internal/metrics"
	"github.com/tinytelemetry/marquee/internal/model"
	"github.com/tinytelemetry/marquee/internal/session"
)

// Deps are the collaborators the API serves.
type Deps struct {
	Store    model.TestimonialStore
	Sessions *session.Manager
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// HTTPMetrics instruments requests when set.
	HTTPMetrics *metrics.HTTP
	Logger      zerolog.Logger
}

// Server provides the HTTP API for testimonials and widget sessions.
type Server struct {
	addr      string
	deps      Deps
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, deps Deps) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		deps:      deps,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.deps.HTTPMetrics != nil {
		r.Use(s.deps.HTTPMetrics.Middleware())
	}

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)

	api.GET("/testimonials", s.handleListTestimonials)
	api.POST("/testimonials", s.handleCreateTestimonial)
	api.GET("/testimonials/:id", s.handleGetTestimonial)
	api.DELETE("/testimonials/:id", s.handleDeleteTestimonial)

	api.GET("/sessions", s.handleListSessions)
	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions/:id", s.handleGetSession)
	api.POST("/sessions/:id/signals", s.handleSignal)
	api.DELETE("/sessions/:id", s.handleCloseSession)

	if s.deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.deps.Logger.Info().Str("addr", listener.Addr().String()).Msg("http: listening")

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.deps.Store.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"uptime":            time.Since(s.startTime).String(),
		"testimonial_count": count,
		"session_count":     s.deps.Sessions.Len(),
	})
}

func (s *Server) handleListTestimonials(c *gin.Context) {
	list, err := s.deps.Store.ListTestimonials(c.Request.Context())
	if err != nil {
		s.internalError(c, "list testimonials", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": list, "count": len(list)})
}

func (s *Server) handleGetTestimonial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := s.deps.Store.GetTestimonial(c.Request.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, "get testimonial", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreateTestimonial(c *gin.Context) {
	var t model.Testimonial
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	t.ID = 0

	ctx := c.Request.Context()
	if _, err := s.deps.Store.InsertTestimonial(ctx, &t); err != nil {
		var inv model.ErrInvalid
		if errors.As(err, &inv) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.internalError(c, "insert testimonial", err)
		return
	}
	s.reloadSessions(ctx)
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleDeleteTestimonial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	err := s.deps.Store.DeleteTestimonial(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, "delete testimonial", err)
		return
	}
	s.reloadSessions(ctx)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	ids := s.deps.Sessions.IDs()
	out := make([]session.Info, 0, len(ids))
	for _, id := range ids {
		info, err := s.deps.Sessions.Get(ctx, id)
		if err != nil {
			continue // closed concurrently
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out, "count": len(out)})
}

// handleCreateSession accepts an optional autoplay config body. Fields that
// are omitted keep the server defaults.
func (s *Server) handleCreateSession(c *gin.Context) {
	var cfg *autoplay.Config
	if c.Request.ContentLength != 0 {
		overlay := s.deps.Sessions.Defaults()
		if err := c.ShouldBindJSON(&overlay); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid autoplay config"})
			return
		}
		cfg = &overlay
	}

	info, err := s.deps.Sessions.Create(c.Request.Context(), cfg)
	if err != nil {
		s.internalError(c, "create session", err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (s *Server) handleGetSession(c *gin.Context) {
	info, err := s.deps.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleSignal(c *gin.Context) {
	var sig session.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing kind field"})
		return
	}
	state, err := s.deps.Sessions.Signal(c.Request.Context(), c.Param("id"), sig)
	if err != nil {
		s.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleCloseSession(c *gin.Context) {
	if err := s.deps.Sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		s.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrUnknownSignal), errors.Is(err, carousel.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.internalError(c, "session", err)
	}
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.deps.Logger.Error().Err(err).Str("op", op).Msg("http: request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}

func (s *Server) reloadSessions(ctx context.Context) {
	if err := s.deps.Sessions.Reload(ctx); err != nil {
		s.deps.Logger.Warn().Err(err).Msg("http: reload sessions")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
