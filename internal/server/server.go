// Package server exposes the session store and collaborators as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/mindfulpath/internal/backup"
	"github.com/julianstephens/mindfulpath/internal/integrations"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/session"
)

const shutdownTimeout = 5 * time.Second

type Deps struct {
	Session      *session.Store
	Integrations *integrations.Set
	// Backups, when set, receives a backup before the session is cleared or replaced
	Backups *backup.Manager
	Debug   bool
}

type Server struct {
	deps    Deps
	metrics *Metrics
	router  *gin.Engine
}

func New(deps Deps) *Server {
	if deps.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{deps: deps, metrics: NewMetrics()}

	router := gin.New()
	router.Use(recovery(s.metrics))
	router.Use(requestLogger())
	router.Use(s.metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) { message(c, "ok") })
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/session", s.getSession)
		api.DELETE("/session", s.clearSession)
		api.PUT("/session", s.replaceSession)

		api.POST("/mood", s.addMood)
		api.POST("/breathing", s.addBreathing)
		api.POST("/gratitude", s.addGratitude)
		api.DELETE("/gratitude/:id", s.removeGratitude)
		api.POST("/writings", s.addWriting)
		api.DELETE("/writings/:id", s.removeWriting)
		api.POST("/memory-games", s.addMemoryGame)

		api.PUT("/selfcare/habits", s.updateHabits)
		api.PATCH("/selfcare/habits", s.mergeHabits)
		api.PUT("/selfcare/goals", s.updateGoals)
		api.PATCH("/selfcare/goals", s.mergeGoals)
		api.PUT("/selfcare/energy", s.updateEnergy)
		api.PATCH("/selfcare/energy", s.mergeEnergy)

		api.GET("/summary", s.getSummary)
		api.GET("/summaries", s.getSummaries)
		api.GET("/dates", s.getDates)

		api.GET("/support", s.getSupport)
		api.GET("/music", s.getMusic)
		api.GET("/music/:id", s.getTrack)
		api.GET("/amazon-books", s.searchBooks)
		api.GET("/geocode", s.geocode)
		api.POST("/translate", s.translate)
	}

	s.router = router
	return s
}

// Handler returns the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return <-errCh
}

func recovery(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic in handler", "path", c.Request.URL.Path, "error", err)
				m.TrackError("panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
