package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvOverrideVar points at an alternative .env file and wins over the --env flag.
const EnvOverrideVar = "MIZODICT_ENV_FILE"

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

// Load resolves and loads environment variables using the configured flag
// value. Variables already present in the process environment win, since
// godotenv.Load never overwrites existing values.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	if custom := strings.TrimSpace(os.Getenv(EnvOverrideVar)); custom != "" {
		if err := godotenv.Load(custom); err == nil {
			log.Printf("Loaded environment from %s: %s", EnvOverrideVar, custom)
			return custom, nil
		}
		log.Printf("Warning: failed to load %s=%s", EnvOverrideVar, custom)
	}

	requested := l.defaultPath
	if l.value != nil && strings.TrimSpace(*l.value) != "" {
		requested = strings.TrimSpace(*l.value)
	}

	if err := godotenv.Load(requested); err == nil {
		log.Printf("Loaded environment from: %s", requested)
		return requested, nil
	}

	if requested != l.defaultPath {
		if err := godotenv.Load(l.defaultPath); err == nil {
			log.Printf("Loaded environment from fallback: %s", l.defaultPath)
			return l.defaultPath, nil
		}
	}

	return "", fmt.Errorf("failed to load env file from %s", requested)
}
