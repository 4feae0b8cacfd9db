package services

import (
	"fmt"
	"math"
	"time"

	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

const (
	// StalenessHorizonHours is the age after which an item is overdue. The age
	// factor plateaus near this horizon so stale items always float to the top.
	StalenessHorizonHours = 48.0

	// agePlateauScore is the age factor reached exactly at the staleness
	// horizon. Beyond it the factor keeps climbing toward 100.
	agePlateauScore = 85.0

	// WeightSumTolerance is how far from 1.0 a config's weight sum may drift
	// before Validate rejects it.
	WeightSumTolerance = 0.01
)

// PriorityConfig tunes how the factor scores combine into a priority score.
// Weights are expected to sum to 1.0; the engine computes the weighted sum as
// given and does not renormalize, so callers own that invariant (Validate is
// provided for the ones that want to check).
type PriorityConfig struct {
	RiskWeight           float64
	AgeWeight            float64
	ClassificationWeight float64
}

// DefaultPriorityConfig returns the system default weighting.
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		RiskWeight:           0.4,
		AgeWeight:            0.3,
		ClassificationWeight: 0.3,
	}
}

// Sum returns the total of all weights.
func (c PriorityConfig) Sum() float64 {
	return c.RiskWeight + c.AgeWeight + c.ClassificationWeight
}

// Validate checks that the weights are non-negative and sum to 1.0 within
// tolerance.
func (c PriorityConfig) Validate() error {
	if c.RiskWeight < 0 || c.AgeWeight < 0 || c.ClassificationWeight < 0 {
		return fmt.Errorf("priority config has negative weight: %+v", c)
	}
	if math.Abs(c.Sum()-1.0) > WeightSumTolerance {
		return fmt.Errorf("priority config weights sum to %.4f, must sum to 1.0", c.Sum())
	}
	return nil
}

// PriorityInput contains the signals used to score one entity. The same shape
// serves threads, contacts, and deals; callers map their records into it.
type PriorityInput struct {
	// ID identifies the entity being scored.
	ID uuid.UUID

	// Risk is the entity's current risk level.
	Risk value_objects.RiskLevel

	// Classification is the categorical tag (thread classification or an
	// equivalent mapped from a contact role or deal side).
	Classification value_objects.Classification

	// ReferenceTime is the timestamp age decay is measured from, e.g. the last
	// message or last activity time.
	ReferenceTime time.Time
}

// PriorityFactors holds the named 0-100 sub-scores behind a priority score.
// They are surfaced for tests and UI explanation.
type PriorityFactors struct {
	Risk           float64
	Age            float64
	Classification float64
}

// PriorityResult is the outcome of scoring a single entity.
type PriorityResult struct {
	// Score is the weighted sum of the factor scores, 0-100 for valid configs.
	Score float64

	// Factors are the component scores before weighting.
	Factors PriorityFactors

	// IsOverdue is true when the entity's age exceeds the staleness horizon.
	// It is derived from elapsed time alone, independent of the weighted score.
	IsOverdue bool
}

// Engine computes priority scores from weighted factors. It is pure: no I/O,
// no shared state, and the clock is injectable so tests can freeze time.
type Engine struct {
	config PriorityConfig
	now    func() time.Time
}

// NewEngine creates an engine with the given configuration and the wall clock.
func NewEngine(cfg PriorityConfig) *Engine {
	return NewEngineWithClock(cfg, time.Now)
}

// NewEngineWithClock creates an engine with an explicit clock.
func NewEngineWithClock(cfg PriorityConfig, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{config: cfg, now: now}
}

// Score computes the priority score for a single input. The clock is sampled
// once per call, so the factors and the score always agree.
func (e *Engine) Score(input PriorityInput) (PriorityResult, error) {
	return e.scoreAt(input, e.now())
}

func (e *Engine) scoreAt(input PriorityInput, now time.Time) (PriorityResult, error) {
	riskScore, err := input.Risk.Score()
	if err != nil {
		return PriorityResult{}, fmt.Errorf("score %s: %w", input.ID, err)
	}

	classScore, err := input.Classification.Score()
	if err != nil {
		return PriorityResult{}, fmt.Errorf("score %s: %w", input.ID, err)
	}

	elapsedHours := now.Sub(input.ReferenceTime).Hours()
	ageScore := ageScore(elapsedHours)

	factors := PriorityFactors{
		Risk:           riskScore,
		Age:            ageScore,
		Classification: classScore,
	}

	score := riskScore*e.config.RiskWeight +
		ageScore*e.config.AgeWeight +
		classScore*e.config.ClassificationWeight

	return PriorityResult{
		Score:     score,
		Factors:   factors,
		IsOverdue: elapsedHours > StalenessHorizonHours,
	}, nil
}

// ageScore maps elapsed hours to a 0-100 factor. It is 0 at zero elapsed time,
// reaches the plateau at the staleness horizon, and never decreases.
func ageScore(elapsedHours float64) float64 {
	if elapsedHours <= 0 {
		return 0
	}
	return math.Min(100, elapsedHours/StalenessHorizonHours*agePlateauScore)
}
