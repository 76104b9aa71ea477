package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "PIXMASTER_"

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment win over the file.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: load env file %s: %v", ErrConfig, path, err)
	}
	return nil
}

// ApplyEnv applies PIXMASTER_* variables from the process environment onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("INPUT_DIR"); ok {
		cfg.InputDir = NormalizeDirArg(v)
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		cfg.OutputDir = NormalizeDirArg(v)
	}
	if v, ok := get("EXTENSIONS"); ok {
		cfg.Extensions = SplitList(v)
	}
	if v, ok := get("FORMAT"); ok {
		f, err := ParseFormat(v)
		if err != nil {
			return err
		}
		cfg.TargetFormat = f
	}
	if v, ok := get("QUALITY"); ok {
		q, err := parseInt(v, EnvPrefix+"QUALITY")
		if err != nil {
			return err
		}
		cfg.Quality = q
	}
	if v, ok := get("MAX_WIDTH"); ok {
		w, err := parseInt(v, EnvPrefix+"MAX_WIDTH")
		if err != nil {
			return err
		}
		cfg.MaxWidth = w
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: invalid %sTIMEOUT %q", ErrConfig, EnvPrefix, v)
		}
		cfg.FileTimeout = d
	}
	for key, dst := range map[string]*bool{
		"LOSSLESS":  &cfg.Lossless,
		"OVERWRITE": &cfg.Overwrite,
		"DRY_RUN":   &cfg.DryRun,
		"STRICT":    &cfg.StrictMode,
		"VERBOSE":   &cfg.Verbose,
	} {
		v, ok := get(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s must be a boolean (got %q)", ErrConfig, EnvPrefix, key, v)
		}
		*dst = b
	}
	if v, ok := get("LOG"); ok {
		cfg.LogFile = v
	}
	return nil
}
