package utils

import (
	"fmt"
	"time"
)

// Age computes full years since a YYYY-MM-DD birth date.
func Age(dateNaissance string) (int, error) {
	birth, err := time.Parse("2006-01-02", dateNaissance)
	if err != nil {
		return 0, fmt.Errorf("invalid birth date %q: %w", dateNaissance, err)
	}

	now := time.Now()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, fmt.Errorf("birth date %q is in the future", dateNaissance)
	}
	return age, nil
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
