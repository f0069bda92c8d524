package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/auth"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
	"github.com/nicolarischia/f1-analytics/pkg/results"
)

type (
	Server struct {
		addr       string
		pool       *pgxpool.Pool
		issuer     *auth.TokenIssuer
		telemetry  *openf1.Client
		reconciler *results.Reconciler
		l          *log.Logger
		srv        *http.Server
	}
	Option func(*Server)
)

func WithAddr(arg string) Option {
	return func(s *Server) {
		s.addr = arg
	}
}

func WithPool(arg *pgxpool.Pool) Option {
	return func(s *Server) {
		s.pool = arg
	}
}

func WithTokenIssuer(arg *auth.TokenIssuer) Option {
	return func(s *Server) {
		s.issuer = arg
	}
}

func WithTelemetryClient(arg *openf1.Client) Option {
	return func(s *Server) {
		s.telemetry = arg
	}
}

func WithReconciler(arg *results.Reconciler) Option {
	return func(s *Server) {
		s.reconciler = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(s *Server) {
		s.l = arg
	}
}

func NewServer(opts ...Option) *Server {
	ret := &Server{
		addr: "localhost:8080",
		l:    log.Default().Named("server"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Start blocks serving HTTP until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(s.requestLogger(), gin.Recovery())
	s.setupRoutes(router)

	//nolint:gosec // by design
	s.srv = &http.Server{
		Addr:    s.addr,
		Handler: newCORS().Handler(router),
	}
	s.l.Info("starting server", log.String("addr", s.addr))
	if err := s.srv.ListenAndServe(); err != nil &&
		err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.l.Debug("request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Duration("duration", time.Since(start)))
	}
}

func newCORS() *cors.Cors {
	// The frontend is served from a different origin during development,
	// so the setup is permissive.
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Content-Encoding",
		},
		MaxAge: int(2 * time.Hour / time.Second),
	})
}
