package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// Stage represents where a contact or deal sits in the pipeline.
type Stage int

const (
	StageLead Stage = iota
	StageNurture
	StageActive
	StageOffer
	StageContract
	StageSold
)

var (
	ErrUnknownStage = errors.New("unknown stage")
)

// StageTarget describes the engagement expected of an entity at a given stage.
type StageTarget struct {
	// BaseTarget is the minimum engagement score considered "on track".
	BaseTarget float64
	// MomentumExpectation labels the activity trend expected at this stage.
	MomentumExpectation string
	// ContextLabel is a short human-readable description for UI surfaces.
	ContextLabel string
}

var stageNames = map[Stage]string{
	StageLead:     "lead",
	StageNurture:  "nurture",
	StageActive:   "active",
	StageOffer:    "offer",
	StageContract: "contract",
	StageSold:     "sold",
}

var stageValues = map[string]Stage{
	"lead":     StageLead,
	"nurture":  StageNurture,
	"active":   StageActive,
	"offer":    StageOffer,
	"contract": StageContract,
	"sold":     StageSold,
}

// stageTargets is the static stage configuration. A sold contact going quiet is
// normal; a fresh lead going quiet is a problem.
var stageTargets = map[Stage]StageTarget{
	StageLead:     {BaseTarget: 60, MomentumExpectation: "high", ContextLabel: "new lead, expect rapid engagement"},
	StageNurture:  {BaseTarget: 40, MomentumExpectation: "stable", ContextLabel: "long-term nurture"},
	StageActive:   {BaseTarget: 70, MomentumExpectation: "high", ContextLabel: "actively searching"},
	StageOffer:    {BaseTarget: 75, MomentumExpectation: "high", ContextLabel: "offer in play"},
	StageContract: {BaseTarget: 65, MomentumExpectation: "stable", ContextLabel: "under contract"},
	StageSold:     {BaseTarget: 30, MomentumExpectation: "low", ContextLabel: "recently settled"},
}

// ParseStage creates a Stage from a string.
func ParseStage(s string) (Stage, error) {
	st, ok := stageValues[strings.ToLower(s)]
	if !ok {
		return StageLead, fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	return st, nil
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the stage is a known value.
func (s Stage) IsValid() bool {
	_, ok := stageNames[s]
	return ok
}

// Target returns the engagement target configuration for the stage.
func (s Stage) Target() (StageTarget, error) {
	target, ok := stageTargets[s]
	if !ok {
		return StageTarget{}, fmt.Errorf("%w: %d", ErrUnknownStage, int(s))
	}
	return target, nil
}
