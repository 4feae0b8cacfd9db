package services

import (
	"fmt"
	"math"
	"time"

	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

const (
	// Point budgets for the additive engagement model. They sum to 100, and the
	// total is clamped there regardless.
	profileNamePoints  = 5.0
	profileEmailPoints = 10.0
	profilePhonePoints = 10.0
	profileRolePoints  = 5.0

	activityPointsPerUnit = 5.0
	activityPointsCap     = 30.0

	responseHealthyPoints = 20.0
	responsePartialPoints = 10.0

	depthPointsPerUnit = 5.0
	depthViewingsCap   = 10.0
	depthOffersCap     = 10.0

	// Healthy response-ratio window: received/sent inside it earns full credit.
	responseRatioMin = 0.3
	responseRatioMax = 2.0

	// Inactivity decay: after this grace period, momentum goes negative by
	// decayPerWeek for every week since the last activity, down to -decayFloor.
	inactivityGraceDays = 14.0
	decayPerWeek        = 10
	decayFloor          = 50

	// coldStartMomentum is the momentum assigned when activity appears after a
	// silent prior window. New activity from a cold start is a moderate
	// positive signal, not an infinite one.
	coldStartMomentum = 50

	// settledRecentDays/settledRecentDrop: contacts this close to a completed
	// transaction are expected to go quiet, so their target drops.
	settledRecentDays   = 30.0
	settledRecentDrop   = 20.0
	settledCoolingDays  = 180.0
	settledCoolingDrop  = 10.0
	adjustedTargetFloor = 10.0

	maxImprovementTips = 3
	lowActivityCutoff  = 3
)

// EngagementInput contains everything needed to score a contact's engagement.
type EngagementInput struct {
	// ID identifies the contact.
	ID uuid.UUID

	// Role is the contact's relationship to the agent.
	Role value_objects.ContactRole

	// Stage is the contact's pipeline stage, used for the adjusted target.
	Stage value_objects.Stage

	// Profile completeness flags.
	HasName  bool
	HasEmail bool
	HasPhone bool
	HasRole  bool

	// RecentActivityCount is the activity count in the current window.
	RecentActivityCount int

	// PriorActivityCount is the activity count in the preceding window of the
	// same length, used for momentum.
	PriorActivityCount int

	// Message volumes for the response-ratio band.
	MessagesSent     int
	MessagesReceived int

	// Engagement-depth signals.
	ViewingsAttended int
	OffersMade       int

	// LastActivityAt is the most recent activity timestamp; zero if the
	// contact has never been active.
	LastActivityAt time.Time

	// LastTransactionAt is when the contact last completed a transaction, if
	// ever.
	LastTransactionAt *time.Time
}

// EngagementScore is the contact-level scoring result.
type EngagementScore struct {
	// Score is the additive-capped engagement score, 0-100.
	Score float64

	// Momentum compares the current activity window to the prior one,
	// clamped to [-100, 100].
	Momentum int

	// AdjustedTarget is the stage-aware expected score after the
	// recently-settled reduction.
	AdjustedTarget float64

	// IsOnTrack is true when Score >= AdjustedTarget.
	IsOnTrack bool

	// MomentumExpectation and ContextLabel come from the stage configuration.
	MomentumExpectation string
	ContextLabel        string

	// Tips is an ordered list of at most three suggested next actions.
	Tips []string
}

// roleTips holds the one role-specific suggestion offered to below-target
// contacts.
var roleTips = map[value_objects.ContactRole]string{
	value_objects.RoleBuyer:        "Send matching listings to restart the search conversation",
	value_objects.RoleVendor:       "Share a market appraisal update on their property",
	value_objects.RoleAgent:        "Check in on shared listings and referral opportunities",
	value_objects.RoleInvestor:     "Send a yield comparison for recent comparable sales",
	value_objects.RoleTradesperson: "Confirm availability for upcoming maintenance jobs",
	value_objects.RoleMarket:       "Offer a suburb report to gauge real interest",
	value_objects.RoleOther:        "Qualify this contact to place them in the pipeline",
}

// EngagementEngine computes the contact Intel/Momentum scores. Like Engine it
// is pure and carries an injectable clock.
type EngagementEngine struct {
	now func() time.Time
}

// NewEngagementEngine creates an engagement engine using the wall clock.
func NewEngagementEngine() *EngagementEngine {
	return NewEngagementEngineWithClock(time.Now)
}

// NewEngagementEngineWithClock creates an engagement engine with an explicit
// clock.
func NewEngagementEngineWithClock(now func() time.Time) *EngagementEngine {
	if now == nil {
		now = time.Now
	}
	return &EngagementEngine{now: now}
}

// Score computes the engagement score, momentum, stage-aware target, and
// improvement tips for a contact.
func (e *EngagementEngine) Score(input EngagementInput) (EngagementScore, error) {
	target, err := input.Stage.Target()
	if err != nil {
		return EngagementScore{}, fmt.Errorf("engagement %s: %w", input.ID, err)
	}
	if !input.Role.IsValid() {
		return EngagementScore{}, fmt.Errorf("engagement %s: %w: %d",
			input.ID, value_objects.ErrUnknownContactRole, int(input.Role))
	}

	now := e.now()

	score := clamp(e.profilePoints(input)+
		e.activityPoints(input)+
		e.responsePoints(input)+
		e.depthPoints(input), 0, 100)

	momentum := e.momentum(input, now)
	adjusted := e.adjustedTarget(target.BaseTarget, input.LastTransactionAt, now)

	result := EngagementScore{
		Score:               score,
		Momentum:            momentum,
		AdjustedTarget:      adjusted,
		IsOnTrack:           score >= adjusted,
		MomentumExpectation: target.MomentumExpectation,
		ContextLabel:        target.ContextLabel,
	}
	result.Tips = e.buildTips(input, score, adjusted)

	return result, nil
}

func (e *EngagementEngine) profilePoints(input EngagementInput) float64 {
	points := 0.0
	if input.HasName {
		points += profileNamePoints
	}
	if input.HasEmail {
		points += profileEmailPoints
	}
	if input.HasPhone {
		points += profilePhonePoints
	}
	if input.HasRole {
		points += profileRolePoints
	}
	return points
}

func (e *EngagementEngine) activityPoints(input EngagementInput) float64 {
	return math.Min(activityPointsCap, float64(input.RecentActivityCount)*activityPointsPerUnit)
}

// responsePoints awards full credit only when the received/sent ratio falls in
// the healthy window; a one-sided conversation earns partial credit.
func (e *EngagementEngine) responsePoints(input EngagementInput) float64 {
	if input.MessagesSent == 0 && input.MessagesReceived == 0 {
		return 0
	}
	if input.MessagesSent == 0 {
		return responsePartialPoints
	}
	ratio := float64(input.MessagesReceived) / float64(input.MessagesSent)
	if ratio >= responseRatioMin && ratio <= responseRatioMax {
		return responseHealthyPoints
	}
	return responsePartialPoints
}

func (e *EngagementEngine) depthPoints(input EngagementInput) float64 {
	viewings := math.Min(depthViewingsCap, float64(input.ViewingsAttended)*depthPointsPerUnit)
	offers := math.Min(depthOffersCap, float64(input.OffersMade)*depthPointsPerUnit)
	return viewings + offers
}

// momentum is the percent change between the current and prior activity
// windows. prev==0 is not a division error: fresh activity from a cold start
// reads as a moderate positive, and sustained silence decays toward -decayFloor
// by the week.
func (e *EngagementEngine) momentum(input EngagementInput, now time.Time) int {
	curr, prev := input.RecentActivityCount, input.PriorActivityCount

	var m int
	switch {
	case prev > 0:
		m = int(math.Round(float64(curr-prev) / float64(prev) * 100))
	case curr > 0:
		m = coldStartMomentum
	default:
		m = e.inactivityDecay(input.LastActivityAt, now)
	}

	if m > 100 {
		return 100
	}
	if m < -100 {
		return -100
	}
	return m
}

func (e *EngagementEngine) inactivityDecay(lastActivity time.Time, now time.Time) int {
	if lastActivity.IsZero() {
		return 0
	}
	days := now.Sub(lastActivity).Hours() / 24
	if days <= inactivityGraceDays {
		return 0
	}
	weeks := int(days / 7)
	decay := weeks * decayPerWeek
	if decay > decayFloor {
		decay = decayFloor
	}
	return -decay
}

func (e *EngagementEngine) adjustedTarget(base float64, lastTransaction *time.Time, now time.Time) float64 {
	adjusted := base
	if lastTransaction != nil {
		days := now.Sub(*lastTransaction).Hours() / 24
		switch {
		case days >= 0 && days <= settledRecentDays:
			adjusted -= settledRecentDrop
		case days > settledRecentDays && days <= settledCoolingDays:
			adjusted -= settledCoolingDrop
		}
	}
	if adjusted < adjustedTargetFloor {
		adjusted = adjustedTargetFloor
	}
	return adjusted
}

// buildTips assembles at most three suggestions: profile gaps first, then
// activity gaps, then one role-specific tip for below-target contacts.
func (e *EngagementEngine) buildTips(input EngagementInput, score, adjustedTarget float64) []string {
	tips := make([]string, 0, maxImprovementTips)
	seen := make(map[string]bool)

	add := func(tip string) {
		if len(tips) >= maxImprovementTips || seen[tip] {
			return
		}
		seen[tip] = true
		tips = append(tips, tip)
	}

	if !input.HasPhone {
		add("Add a phone number so you can follow up by call or SMS")
	}
	if !input.HasEmail {
		add("Add an email address to include them in campaigns")
	}
	if input.RecentActivityCount < lowActivityCutoff {
		add("Schedule a touchpoint; recent activity is low")
	}
	if score < adjustedTarget {
		if tip, ok := roleTips[input.Role]; ok {
			add(tip)
		}
	}

	return tips
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
