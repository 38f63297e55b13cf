// Package web serves matches over HTTP: a JSON API under /api, a live
// websocket per seat under /ws and PNG invite codes for the second player.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/service"
)

// Options configures a Server.
type Options struct {
	// PublicURL is the externally reachable base URL used in invites.
	// When empty the request's Host header is used.
	PublicURL string
	Dev       bool
	Logger    *zap.Logger
}

// Server is the mythduel HTTP server.
type Server struct {
	svc       *service.Service
	catalog   *game.StaticCatalog
	publicURL string
	logger    *zap.Logger
	router    *gin.Engine
}

// NewServer creates a server for the given service and card catalog.
func NewServer(svc *service.Service, catalog *game.StaticCatalog, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		svc:       svc,
		catalog:   catalog,
		publicURL: opts.PublicURL,
		logger:    logger.Named("web"),
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/mythologies", s.handleMythologies)
		api.GET("/cards", s.handleCards)
		api.GET("/decks/:mythology", s.handleDeck)

		api.GET("/matches", s.handleListMatches)
		api.POST("/matches", s.handleCreateMatch)
		api.GET("/matches/:id", s.handleGetMatch)
		api.DELETE("/matches/:id", s.handleDeleteMatch)
		api.POST("/matches/:id/actions", s.handleAction)
		api.GET("/matches/:id/invite.png", s.handleInvite)
	}
	s.router.GET("/ws/matches/:id", s.handleWebSocket)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
