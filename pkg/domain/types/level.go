package types

import "github.com/m-mizutani/goerr/v2"

// Level is the three-valued ordinal scale used for both the probability and
// severity axes of a risk.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// AllLevels returns all valid levels in ascending order
func AllLevels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh}
}

// IsValid checks if the level is one of the known values
func (x Level) IsValid() bool {
	switch x {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the level
func (x Level) String() string {
	return string(x)
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) (Level, error) {
	lv := Level(s)
	if !lv.IsValid() {
		return "", goerr.New("invalid level", goerr.V("level", s), goerr.T(ErrTagValidation))
	}
	return lv, nil
}
