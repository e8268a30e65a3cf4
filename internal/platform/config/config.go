// Package config reads typed settings from prefixed environment variables.
// Must* panics through the logger when a value is missing or malformed;
// May* logs a warning and falls back to the default
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"textprep/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("TEXTPREP_")
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

func must[T any](c Conf, key string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(key)).Str("value", s).Msg("invalid env value")
	}
	return v
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(key)).Str("value", s).
			Interface("default", def).Msg("invalid env value; using default")
		return def
	}
	return v
}

func str(s string) (string, error) { return s, nil }

func port(s string) (string, error) {
	p, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	if err != nil || p < 1 || p > 65535 {
		return "", fmt.Errorf("port %q outside 1..65535", s)
	}
	return ":" + strconv.Itoa(p), nil
}

// MustString returns the value or panics when it is unset or blank
func (c Conf) MustString(key string) string { return must(c, key, str) }

// MustInt returns the value or panics when it is unset or not an int
func (c Conf) MustInt(key string) int { return must(c, key, strconv.Atoi) }

// MustBool returns the value or panics when it is unset or not a bool
func (c Conf) MustBool(key string) bool { return must(c, key, strconv.ParseBool) }

// MustDuration returns the value or panics when it is unset or not a duration
func (c Conf) MustDuration(key string) time.Duration { return must(c, key, time.ParseDuration) }

// MustPort returns a listen address like ":8080"; "8080" and ":8080" are both accepted
func (c Conf) MustPort(key string) string { return must(c, key, port) }

// Require panics on the first key that is unset or blank
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		_ = c.MustString(k)
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, def, str) }

// MayInt returns the value or def, warning when it does not parse
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayInt64 returns the value or def, warning when it does not parse
func (c Conf) MayInt64(key string, def int64) int64 {
	return may(c, key, def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

// MayBool returns the value or def, warning when it does not parse
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def, warning when it does not parse
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayPort returns a listen address or def
func (c Conf) MayPort(key, def string) string { return may(c, key, def, port) }

// MayCSV splits a comma separated value, dropping blank items. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lowercased value or def, and panics on a value outside allowed
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(key, def))
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if v == strings.ToLower(a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
