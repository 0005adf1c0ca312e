package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int, errs []error) (int, []error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, errs
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, append(errs, fmt.Errorf("parse %s: %w", key, err))
	}
	return i, errs
}

func envDuration(key string, def time.Duration, errs []error) (time.Duration, []error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, errs
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def, append(errs, fmt.Errorf("parse %s: %w", key, err))
	}
	return d, errs
}

// envList splits a comma-separated variable. It returns nil when the variable
// is unset or blank.
func envList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
