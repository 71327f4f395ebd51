package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lushai-labs/mizodict/internal/cli"
	"github.com/lushai-labs/mizodict/internal/config"
	"github.com/lushai-labs/mizodict/internal/dictionary"
	"github.com/lushai-labs/mizodict/internal/httpapi"
	"github.com/lushai-labs/mizodict/internal/logging"
	"github.com/lushai-labs/mizodict/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 5000, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	provider := translation.NewGoogleProvider(cfg.GoogleAPIKey, translation.GoogleOptions{
		Endpoint: cfg.TranslateEndpoint,
		Timeout:  cfg.TranslateTimeout,
		Logger:   logger,
	})
	dict := dictionary.NewService(provider, dictionary.NewCache(), logger, cfg.TranslateTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	srv := httpapi.NewServer(dict, logger, httpapi.Options{
		Host:             *host,
		Port:             *port,
		ReadTimeout:      *readTimeout,
		WriteTimeout:     *writeTimeout,
		ShutdownTimeout:  *shutdownTimeout,
		AllowedOrigins:   cfg.CORSAllowedOriginsList(),
		APIKeyConfigured: strings.TrimSpace(cfg.GoogleAPIKey) != "",
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}
