package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/lushai-labs/mizodict/internal/dictionary"
	"github.com/lushai-labs/mizodict/internal/langdetect"
)

type Options struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	AllowedOrigins   []string
	APIKeyConfigured bool
}

type Server struct {
	dict          *dictionary.Service
	logger        zerolog.Logger
	opts          Options
	startedAt     time.Time
	detectEnglish func(string) bool
}

func NewServer(dict *dictionary.Service, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 5000
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Server{
		dict:          dict,
		logger:        logger,
		startedAt:     time.Now(),
		detectEnglish: langdetect.LooksEnglish,
		opts: Options{
			Host:             host,
			Port:             port,
			ReadTimeout:      readTimeout,
			WriteTimeout:     writeTimeout,
			ShutdownTimeout:  shutdownTimeout,
			AllowedOrigins:   allowedOrigins,
			APIKeyConfigured: opts.APIKeyConfigured,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.dict == nil {
		return fmt.Errorf("server is not initialized")
	}

	e, err := s.buildEcho()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("mizodict server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("mizodict server stopped")
	return nil
}

func (s *Server) buildEcho() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	assetsSub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return nil, fmt.Errorf("load embedded assets: %w", err)
	}
	indexHTML, err := fs.ReadFile(assetsSub, "index.html")
	if err != nil {
		return nil, fmt.Errorf("load index.html: %w", err)
	}

	e.GET("/", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	e.GET("/*", echo.WrapHandler(http.FileServer(http.FS(assetsSub))))

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/status", s.handleStatus)
	api.POST("/translate-mizo", s.handleTranslateMizo)
	api.POST("/translate-english", s.handleTranslateEnglish)
	api.POST("/translate", s.handleTranslateAuto)
	api.POST("/batch-translate", s.handleBatchTranslate)
	api.POST("/clear-cache", s.handleClearCache)

	return e, nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if text, ok := he.Message.(string); ok && strings.TrimSpace(text) != "" {
			message = text
		} else if text := http.StatusText(status); text != "" {
			message = text
		}
	} else if err != nil {
		message = err.Error()
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if status >= 500 {
			_ = apiError(c, status, "Internal server error")
			return
		}
		_ = apiError(c, status, message)
		return
	}

	_ = c.String(status, message)
}
