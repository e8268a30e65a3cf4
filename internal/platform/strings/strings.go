// Package strings holds small string helpers used by module wiring and repos
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a route prefix to one leading slash and no trailing
// slash. The bare root is rejected
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/")
	if s == "/" {
		panic("route prefix is required")
	}
	return s
}

// NullIfBlank returns nil for blank s so SQL stores NULL
func NullIfBlank(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}
