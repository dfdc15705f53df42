package models

import (
	"errors"
	"fmt"
	"math"
)

// Bounds accepted for the target temperature (°C).
const (
	MinTargetTemp = -50.0
	MaxTargetTemp = 60.0
)

// ErrInvalidConfig is returned when a configuration document fails validation.
var ErrInvalidConfig = errors.New("invalid heater configuration")

// HeaterConfig is the user-editable heater configuration.
type HeaterConfig struct {
	MasterSwitch bool    `json:"master_switch"`
	Force        bool    `json:"force"`
	TargetTemp   float64 `json:"target_temp"` // °C
	CO2Target    *int    `json:"co2_target"`  // ppm; nil disables the CO2 condition
}

// DefaultHeaterConfig returns the configuration used when nothing is persisted.
func DefaultHeaterConfig() HeaterConfig {
	return HeaterConfig{
		MasterSwitch: true,
		Force:        false,
		TargetTemp:   28.0,
		CO2Target:    IntPtr(500),
	}
}

// Validate checks value ranges.
func (c HeaterConfig) Validate() error {
	if math.IsNaN(c.TargetTemp) || c.TargetTemp < MinTargetTemp || c.TargetTemp > MaxTargetTemp {
		return fmt.Errorf("%w: target_temp %.1f outside [%.0f, %.0f]",
			ErrInvalidConfig, c.TargetTemp, MinTargetTemp, MaxTargetTemp)
	}
	if c.CO2Target != nil && *c.CO2Target < 0 {
		return fmt.Errorf("%w: co2_target %d is negative", ErrInvalidConfig, *c.CO2Target)
	}
	return nil
}

// Clone returns a deep copy so callers never share the CO2Target pointer.
func (c HeaterConfig) Clone() HeaterConfig {
	if c.CO2Target != nil {
		c.CO2Target = IntPtr(*c.CO2Target)
	}
	return c
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
