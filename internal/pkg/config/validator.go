// Package config holds the fail-open configuration loader shared by the portal
// and its stats refresher: values that fail validation fall back to their
// defaults with a warning and a metric instead of stopping the process.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five-field format.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression ("*/5 * * * *").
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks an IANA timezone name.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}
	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}
	return nil
}

// MinSecretLength is the shortest accepted signing secret (256 bits).
const MinSecretLength = 32

var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme"}

// ValidateSecret rejects signing secrets that are short or a well-known value.
func ValidateSecret(secret string) error {
	if len(secret) < MinSecretLength {
		return fmt.Errorf("secret must be at least %d characters", MinSecretLength)
	}
	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.HasPrefix(lower, weak) && strings.Trim(lower[len(weak):], "0123456789!") == "" {
			return fmt.Errorf("secret must not be a common weak value")
		}
	}
	if isRepeated(secret) {
		return fmt.Errorf("secret must not be a single repeated character")
	}
	return nil
}

func isRepeated(s string) bool {
	r := []rune(s)
	return len(r) > 0 && !slices.ContainsFunc(r, func(c rune) bool { return c != r[0] })
}
