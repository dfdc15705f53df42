// Package policy decides whether the heater should run.
package policy

import "heatman/internal/models"

// Decide reports whether the heater should be on.
//
// Force wins over every other input. Otherwise the room must be below target,
// CO2 must have reached its threshold (when one is set), and the companion
// computer must be on and not locked. An unknown lock state counts as unlocked.
func Decide(cfg models.HeaterConfig, r models.Reading, poweredOn bool, lock models.LockStatus) bool {
	if cfg.Force {
		return true
	}
	return r.Temperature < cfg.TargetTemp &&
		(cfg.CO2Target == nil || r.CO2 >= *cfg.CO2Target) &&
		poweredOn &&
		lock != models.LockLocked
}
