package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

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
// value. LANGID_ENV_FILE takes precedence over the flag. A missing default
// file is not an error: deployments usually configure the process through
// real environment variables.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	if custom := strings.TrimSpace(os.Getenv("LANGID_ENV_FILE")); custom != "" {
		if err := godotenv.Overload(custom); err != nil {
			return "", fmt.Errorf("load LANGID_ENV_FILE=%s: %w", custom, err)
		}
		log.Printf("Loaded environment from LANGID_ENV_FILE: %s", custom)
		return custom, nil
	}

	requested := strings.TrimSpace(derefString(l.value))
	if requested == "" {
		requested = l.defaultPath
	}

	err := godotenv.Overload(requested)
	if err == nil {
		log.Printf("Loaded environment from: %s", requested)
		return requested, nil
	}
	if requested == l.defaultPath && errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	base := filepath.Base(requested)
	if base != "" && base != requested {
		if err := godotenv.Overload(base); err == nil {
			log.Printf("Loaded environment from basename fallback: %s", base)
			return base, nil
		}
	}

	return "", fmt.Errorf("failed to load env file from %s: %w", requested, err)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
