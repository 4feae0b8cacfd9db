package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockContactRepo is a mock implementation of domain.ContactRepository.
type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Contact, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *mockContactRepo) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Contact, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func frozenEngagementEngine(now time.Time) *services.EngagementEngine {
	return services.NewEngagementEngineWithClock(func() time.Time { return now })
}

func TestContactEngagementHandler_Handle(t *testing.T) {
	workspaceID := uuid.New()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("scores an engaged buyer", func(t *testing.T) {
		repo := new(mockContactRepo)
		handler := NewContactEngagementHandler(repo, frozenEngagementEngine(now))

		contact := &domain.Contact{
			ID:                  uuid.New(),
			WorkspaceID:         workspaceID,
			Name:                "Ana Moreno",
			Email:               "ana@example.com",
			Phone:               "+61 400 000 000",
			Role:                value_objects.RoleBuyer,
			Stage:               value_objects.StageActive,
			RecentActivityCount: 6,
			PriorActivityCount:  4,
			MessagesSent:        10,
			MessagesReceived:    8,
			ViewingsAttended:    2,
			OffersMade:          1,
			LastActivityAt:      now.Add(-24 * time.Hour),
		}
		repo.On("FindByID", mock.Anything, workspaceID, contact.ID).Return(contact, nil)

		result, err := handler.Handle(context.Background(), ContactEngagementQuery{
			WorkspaceID: workspaceID,
			ContactID:   contact.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Ana Moreno", result.Name)
		assert.Equal(t, "buyer", result.Role)
		assert.Equal(t, "active", result.Stage)
		// full profile 30 + capped activity 30 + healthy responses 20 + 2 viewings 10 + 1 offer 5
		assert.InDelta(t, 95.0, result.Score, 1e-9)
		assert.Equal(t, 50, result.Momentum)
		assert.InDelta(t, 70.0, result.AdjustedTarget, 1e-9)
		assert.True(t, result.IsOnTrack)
		assert.Empty(t, result.Tips)

		repo.AssertExpectations(t)
	})

	t.Run("surfaces tips for a sparse contact", func(t *testing.T) {
		repo := new(mockContactRepo)
		handler := NewContactEngagementHandler(repo, frozenEngagementEngine(now))

		contact := &domain.Contact{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        "B. Seller",
			Role:        value_objects.RoleVendor,
			Stage:       value_objects.StageLead,
		}
		repo.On("FindByID", mock.Anything, workspaceID, contact.ID).Return(contact, nil)

		result, err := handler.Handle(context.Background(), ContactEngagementQuery{
			WorkspaceID: workspaceID,
			ContactID:   contact.ID,
		})

		require.NoError(t, err)
		assert.False(t, result.IsOnTrack)
		require.Len(t, result.Tips, 3)
		assert.Contains(t, result.Tips[0], "phone")
		assert.Contains(t, result.Tips[1], "email")

		repo.AssertExpectations(t)
	})

	t.Run("maps an unassigned role to no profile credit", func(t *testing.T) {
		repo := new(mockContactRepo)
		handler := NewContactEngagementHandler(repo, frozenEngagementEngine(now))

		contact := &domain.Contact{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        "Walk-in",
			Email:       "walkin@example.com",
			Phone:       "+61 400 111 111",
			Role:        value_objects.RoleOther,
			Stage:       value_objects.StageLead,
		}
		repo.On("FindByID", mock.Anything, workspaceID, contact.ID).Return(contact, nil)

		result, err := handler.Handle(context.Background(), ContactEngagementQuery{
			WorkspaceID: workspaceID,
			ContactID:   contact.ID,
		})

		require.NoError(t, err)
		// name 5 + email 10 + phone 10, no role bonus
		assert.InDelta(t, 25.0, result.Score, 1e-9)

		repo.AssertExpectations(t)
	})

	t.Run("fails when contact not found", func(t *testing.T) {
		repo := new(mockContactRepo)
		handler := NewContactEngagementHandler(repo, frozenEngagementEngine(now))

		contactID := uuid.New()
		repo.On("FindByID", mock.Anything, workspaceID, contactID).Return(nil, nil)

		result, err := handler.Handle(context.Background(), ContactEngagementQuery{
			WorkspaceID: workspaceID,
			ContactID:   contactID,
		})

		assert.Error(t, err)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})

	t.Run("fails when repository error", func(t *testing.T) {
		repo := new(mockContactRepo)
		handler := NewContactEngagementHandler(repo, frozenEngagementEngine(now))

		contactID := uuid.New()
		repo.On("FindByID", mock.Anything, workspaceID, contactID).
			Return(nil, errors.New("database error"))

		result, err := handler.Handle(context.Background(), ContactEngagementQuery{
			WorkspaceID: workspaceID,
			ContactID:   contactID,
		})

		assert.Error(t, err)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})
}
