package configuration

import (
	"fmt"
)

// Validate checks the current configuration for values that would make
// the daemon misbehave at runtime.
func Validate(config Configuration) error {
	if len(config.Device.Address) <= 0 {
		return fmt.Errorf("no device address configured")
	}
	if err := validatePort("device", config.Device.Port); err != nil {
		return err
	}
	if err := validatePort("api", config.Api.Port); err != nil {
		return err
	}
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}

	if config.TargetPower < 0 || config.TargetPower > 10000 {
		return fmt.Errorf("target power must be in [0, 10000], got: %d", config.TargetPower)
	}

	c := config.Controller
	if c.PowerWindowSize <= 0 {
		return fmt.Errorf("power window size must be > 0, got: %d", c.PowerWindowSize)
	}
	if c.SwrWindowSize <= 0 {
		return fmt.Errorf("swr window size must be > 0, got: %d", c.SwrWindowSize)
	}
	if c.PollingRate <= 0 {
		return fmt.Errorf("polling rate must be > 0, got: %s", c.PollingRate)
	}
	if c.ErrorBackoff <= 0 {
		return fmt.Errorf("error backoff must be > 0, got: %s", c.ErrorBackoff)
	}
	if c.Deadband < 0 {
		return fmt.Errorf("deadband must be >= 0, got: %f", c.Deadband)
	}
	if c.StableTolerance <= 0 {
		return fmt.Errorf("stable tolerance must be > 0, got: %f", c.StableTolerance)
	}
	if c.PowerFallingRatio <= 0 || c.PowerFallingRatio >= 1 {
		return fmt.Errorf("power falling ratio must be in (0, 1), got: %f", c.PowerFallingRatio)
	}

	return nil
}

func validatePort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid %s port: %d", name, port)
	}
	return nil
}
