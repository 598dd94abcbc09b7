package config

import (
	"fmt"
	"time"
)

// ValidateDurationRange reports whether d lies in [min, max].
// It is used for upstream timeouts read from the environment.
func ValidateDurationRange(d, min, max time.Duration) error {
	switch {
	case min > max:
		return fmt.Errorf("invalid range: min %v > max %v", min, max)
	case d < min:
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	case d > max:
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
