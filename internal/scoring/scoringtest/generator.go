// Package scoringtest provides deterministic fixtures for demos and tests.
// Nothing in here belongs in a production scoring path.
package scoringtest

import (
	"math/rand"
	"time"

	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

var demoRoles = []value_objects.ContactRole{
	value_objects.RoleBuyer,
	value_objects.RoleVendor,
	value_objects.RoleAgent,
	value_objects.RoleInvestor,
	value_objects.RoleTradesperson,
	value_objects.RoleMarket,
	value_objects.RoleOther,
}

var demoStages = []value_objects.Stage{
	value_objects.StageLead,
	value_objects.StageNurture,
	value_objects.StageActive,
	value_objects.StageOffer,
	value_objects.StageContract,
	value_objects.StageSold,
}

// Generator produces pseudo-random engagement inputs from a fixed seed, so the
// same seed always yields the same sequence.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator anchored at the given instant.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// EngagementInput returns the next deterministic engagement fixture.
func (g *Generator) EngagementInput() services.EngagementInput {
	input := services.EngagementInput{
		ID:                  g.nextID(),
		Role:                demoRoles[g.rng.Intn(len(demoRoles))],
		Stage:               demoStages[g.rng.Intn(len(demoStages))],
		HasName:             g.rng.Intn(10) < 9,
		HasEmail:            g.rng.Intn(10) < 8,
		HasPhone:            g.rng.Intn(10) < 6,
		HasRole:             g.rng.Intn(10) < 7,
		RecentActivityCount: g.rng.Intn(12),
		PriorActivityCount:  g.rng.Intn(12),
		MessagesSent:        g.rng.Intn(20),
		MessagesReceived:    g.rng.Intn(20),
		ViewingsAttended:    g.rng.Intn(4),
		OffersMade:          g.rng.Intn(2),
	}

	if input.RecentActivityCount > 0 || input.PriorActivityCount > 0 {
		input.LastActivityAt = g.now.Add(-time.Duration(g.rng.Intn(45*24)) * time.Hour)
	}
	if input.Stage == value_objects.StageSold && g.rng.Intn(2) == 0 {
		settled := g.now.Add(-time.Duration(g.rng.Intn(200*24)) * time.Hour)
		input.LastTransactionAt = &settled
	}

	return input
}

// nextID derives a version-4 UUID from the seeded stream, so fixture IDs are
// as reproducible as the rest of the fixture.
func (g *Generator) nextID() uuid.UUID {
	var id uuid.UUID
	g.rng.Read(id[:])
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// EngagementInputs returns n deterministic fixtures.
func (g *Generator) EngagementInputs(n int) []services.EngagementInput {
	inputs := make([]services.EngagementInput, 0, n)
	for i := 0; i < n; i++ {
		inputs = append(inputs, g.EngagementInput())
	}
	return inputs
}
