package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lushai-labs/mizodict/internal/cli"
	"github.com/lushai-labs/mizodict/internal/config"
	"github.com/lushai-labs/mizodict/internal/dictionary"
	"github.com/lushai-labs/mizodict/internal/logging"
	"github.com/lushai-labs/mizodict/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	directionFlag := fs.String("direction", "mizo-to-en", "Translation direction (mizo-to-en or en-to-mizo)")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "translate requires at least one word")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: mizodict translate [--direction mizo-to-en|en-to-mizo] <word>...")
		return 2
	}

	direction, err := dictionary.ParseDirection(*directionFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --direction: %v\n", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	failures := 0
	for _, word := range fs.Args() {
		result, translateErr := dict.Translate(ctx, word, direction)
		if translateErr != nil {
			failures++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", word, translateErr)
			continue
		}
		fmt.Printf("%s = %s\n", result.Input, result.Output)
	}

	if failures > 0 {
		return 1
	}
	return 0
}
