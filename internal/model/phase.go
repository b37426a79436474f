package model

// Phase names one conductor of a three-phase feeder.
// Keep these values stable; they appear verbatim in diagnostic reports.
type Phase string

const (
	PhaseRed    Phase = "Red"
	PhaseYellow Phase = "Yellow"
	PhaseBlue   Phase = "Blue"
)

// Phases lists the three phases in reporting order.
var Phases = [3]Phase{PhaseRed, PhaseYellow, PhaseBlue}

// WarningLevel is the severity attached to a derived quantity.
type WarningLevel string

const (
	LevelNormal   WarningLevel = "normal"
	LevelWarning  WarningLevel = "warning"
	LevelCritical WarningLevel = "critical"
)

// Rank orders levels so that callers can compare severities.
func (l WarningLevel) Rank() int {
	switch l {
	case LevelCritical:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}

// WorseOf returns the more severe of two levels.
func WorseOf(a, b WarningLevel) WarningLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	if a == "" {
		return LevelNormal
	}
	return a
}
