// Package locale derives the locale segment that prefixes every xwallet
// console route and builds locale-scoped routes from it.
package locale

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// ZhCN is simplified Chinese, the console's default locale.
	ZhCN = "zh-CN"
	// EnUS is US English.
	EnUS = "en-US"
)

// localeSegment matches route segments shaped like a locale tag, e.g. zh-CN.
var localeSegment = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

// Config describes the locales a console deployment serves.
type Config struct {
	// Supported lists the recognized locales.
	Supported []string
	// Default is used whenever a path carries no recognized locale.
	Default string
}

// DefaultConfig returns the stock console locale configuration.
func DefaultConfig() Config {
	return Config{
		Supported: []string{ZhCN, EnUS},
		Default:   ZhCN,
	}
}

// FromPath returns the locale named by the first segment of path, or the
// default locale if the segment is missing or unrecognized.
func (c Config) FromPath(path string) string {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(segment, "/?#"); i >= 0 {
		segment = segment[:i]
	}
	if localeSegment.MatchString(segment) && c.supports(segment) {
		return segment
	}
	return c.fallback()
}

// LoginRoute returns the login route scoped to the locale of path.
func (c Config) LoginRoute(path string) string {
	return fmt.Sprintf("/%s/login", c.FromPath(path))
}

func (c Config) supports(locale string) bool {
	// An empty list means that any well-formed locale is accepted.
	if len(c.Supported) == 0 {
		return true
	}
	for _, supported := range c.Supported {
		if supported == locale {
			return true
		}
	}
	return false
}

func (c Config) fallback() string {
	if c.Default != "" {
		return c.Default
	}
	return ZhCN
}
