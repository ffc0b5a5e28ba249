package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/sociograph/sociograph/internal/profile"
	apiv1 "github.com/sociograph/sociograph/server/router/api/v1"
	"github.com/sociograph/sociograph/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

func NewServer(profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Profile: profile,
		Store:   store,
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())
	echoServer.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	echoServer.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"requestID", v.RequestID,
			)
			return nil
		},
	}))
	echoServer.Use(middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(100)),
	))

	echoServer.GET("/", s.indexHandler)
	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiService := apiv1.NewAPIV1Service(profile, store)
	apiService.RegisterRoutes(echoServer)

	s.echoServer = echoServer
	s.apiService = apiService
	return s, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start echo server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown complete")
}

func (s *Server) indexHandler(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!DOCTYPE html>
<html>
<head><title>Sociograph</title></head>
<body>
<h1>Sociograph</h1>
<p>Professional social graph recommendation service.</p>
<ul>
<li><code>GET /healthz</code></li>
<li><code>GET /api/v1/users/search?q=&lt;name&gt;</code></li>
<li><code>GET /api/v1/users/:id</code></li>
<li><code>GET /api/v1/users/:id/recommendations/friends</code></li>
<li><code>GET /api/v1/users/:id/recommendations/people</code></li>
<li><code>GET /api/v1/users/:id/recommendations/jobs</code></li>
<li><code>GET /api/v1/users/:id/path/:to</code></li>
<li><code>GET /api/v1/debug/stats</code></li>
</ul>
</body>
</html>`)
}
