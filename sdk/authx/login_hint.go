package authx

import (
	"regexp"
	"strconv"
	"strings"
)

// LoginHint carries retry details the backend embeds in the message of a
// failed login. Either field may be nil when the message doesn't mention it.
type LoginHint struct {
	// RemainingAttempts is how many more failed attempts are allowed before
	// the account is locked.
	RemainingAttempts *int
	// LockoutSeconds is how long the account remains locked.
	LockoutSeconds *int
}

// Empty returns true when the hint carries no details.
func (l LoginHint) Empty() bool {
	return l.RemainingAttempts == nil && l.LockoutSeconds == nil
}

var (
	remainingAttemptsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`剩余\s*(\d+)\s*次`),
		regexp.MustCompile(`还(?:有|可(?:以)?(?:尝试)?)\s*(\d+)\s*次`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:more\s+)?(?:attempts?|tries)\s+(?:remaining|left)`),
		regexp.MustCompile(`(?i)(?:remaining\s+attempts?|attempts?\s+remaining)\s*[:：]?\s*(\d+)`),
	}
	lockoutPatterns = []*regexp.Regexp{
		regexp.MustCompile(`锁定\s*(\d+)\s*(秒|分钟|分|小时|时)`),
		regexp.MustCompile(`(\d+)\s*(秒|分钟|分|小时)\s*后(?:再)?(?:重试|再试)`),
		regexp.MustCompile(`(?i)locked\s+(?:out\s+)?for\s+(\d+)\s*(seconds?|secs?|minutes?|mins?|hours?|hrs?)`),
		regexp.MustCompile(`(?i)try\s+again\s+in\s+(\d+)\s*(seconds?|secs?|minutes?|mins?|hours?|hrs?)`),
	}
)

// ParseLoginHint extracts retry details from a failed login's message. It is
// best-effort; an unrecognized message yields an empty LoginHint.
func ParseLoginHint(message string) LoginHint {
	hint := LoginHint{}
	for _, pattern := range remainingAttemptsPatterns {
		if match := pattern.FindStringSubmatch(message); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil {
				hint.RemainingAttempts = &n
				break
			}
		}
	}
	for _, pattern := range lockoutPatterns {
		if match := pattern.FindStringSubmatch(message); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil {
				seconds := n * unitSeconds(match[2])
				hint.LockoutSeconds = &seconds
				break
			}
		}
	}
	return hint
}

func unitSeconds(unit string) int {
	unit = strings.ToLower(unit)
	switch {
	case unit == "小时" || unit == "时" || strings.HasPrefix(unit, "h"):
		return 3600
	case unit == "分钟" || unit == "分" || strings.HasPrefix(unit, "m"):
		return 60
	default:
		return 1
	}
}
