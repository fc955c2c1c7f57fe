package presentation

import (
	"context"
	"errors"
	"mars-photos/internal/domain/state"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const serviceName = "mars-photos"

// StateSource is what the server renders from. *controller.FetchController satisfies it.
type StateSource interface {
	ID() string
	State() state.ViewState
}

type Server struct {
	logger   *zap.SugaredLogger
	echo     *echo.Echo
	addr     string
	source   StateSource
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewServer(logger *zap.SugaredLogger, addr string, source StateSource, hub *Hub) *Server {
	s := &Server{
		logger: logger,
		echo:   echo.New(),
		addr:   addr,
		source: source,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(serviceName)))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/healthz" || path == "/metrics"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Infow("HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"err", v.Error)
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())

	s.echo.GET("/state", s.handleState)
	s.echo.GET("/ws", s.handleWebsocket)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Infow("Starting HTTP server", "addr", s.addr)

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleState(c echo.Context) error {
	c.Response().Header().Set("X-Controller-ID", s.source.ID())
	return c.JSON(http.StatusOK, s.source.State())
}

func (s *Server) handleWebsocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warnw("Websocket upgrade failed", "remote", c.RealIP(), "err", err)
		return nil
	}

	client := NewClient(s.hub, conn)
	if !s.hub.Register(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	return nil
}
