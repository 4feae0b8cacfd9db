package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// RiskLevel represents how urgent an entity is considered.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var (
	ErrUnknownRiskLevel = errors.New("unknown risk level")
)

var riskNames = map[RiskLevel]string{
	RiskNone:     "none",
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

var riskValues = map[string]RiskLevel{
	"none":     RiskNone,
	"low":      RiskLow,
	"medium":   RiskMedium,
	"high":     RiskHigh,
	"critical": RiskCritical,
}

// riskScores maps each level to its factor score. The mapping is monotonically
// increasing and spans the full 0-100 range.
var riskScores = map[RiskLevel]float64{
	RiskNone:     0,
	RiskLow:      25,
	RiskMedium:   50,
	RiskHigh:     75,
	RiskCritical: 100,
}

// ParseRiskLevel creates a RiskLevel from a string.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r, ok := riskValues[strings.ToLower(s)]
	if !ok {
		return RiskNone, fmt.Errorf("%w: %q", ErrUnknownRiskLevel, s)
	}
	return r, nil
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the risk level is a known value.
func (r RiskLevel) IsValid() bool {
	_, ok := riskNames[r]
	return ok
}

// Score returns the 0-100 factor score for the level. Unknown levels are an
// error rather than a silent zero so a corrupt record cannot skew a ranking
// unnoticed.
func (r RiskLevel) Score() (float64, error) {
	score, ok := riskScores[r]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRiskLevel, int(r))
	}
	return score, nil
}
