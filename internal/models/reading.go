package models

import "time"

// Reading is one sample of the room metrics.
type Reading struct {
	Temperature float64 `json:"temperature"` // °C
	CO2         int     `json:"co2"`         // ppm
}

// LockStatus is the lock state of the companion computer.
type LockStatus int

const (
	LockUnknown LockStatus = iota
	LockUnlocked
	LockLocked
)

func (s LockStatus) String() string {
	switch s {
	case LockLocked:
		return "locked"
	case LockUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

func (s LockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText. Anything else
// decodes as LockUnknown.
func (s *LockStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "locked":
		*s = LockLocked
	case "unlocked":
		*s = LockUnlocked
	default:
		*s = LockUnknown
	}
	return nil
}

// HeaterStatus is the live view served by the API.
type HeaterStatus struct {
	Temperature float64       `json:"temperature"`
	CO2         int           `json:"co2"`
	IsHeating   bool          `json:"is_heating"`
	Available   bool          `json:"available"`
	Config      *HeaterConfig `json:"config,omitempty"`
}

// TickReport summarizes the most recent reconciliation pass.
type TickReport struct {
	TickID    string     `json:"tick_id"`
	At        time.Time  `json:"at"`
	Skipped   bool       `json:"skipped"`
	Reading   *Reading   `json:"reading,omitempty"`
	PoweredOn bool       `json:"powered_on"`
	Lock      LockStatus `json:"lock"`
	Desired   bool       `json:"desired"`
	Observed  bool       `json:"observed"`
	Switched  bool       `json:"switched"`
	Failed    bool       `json:"failed"`
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Config    HeaterConfig `json:"config"`
	Available bool         `json:"available"`
	LastTick  *TickReport  `json:"last_tick,omitempty"`
}
