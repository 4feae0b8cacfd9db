package value_objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Target(t *testing.T) {
	t.Run("every stage has a configured target", func(t *testing.T) {
		for stage := range stageNames {
			target, err := stage.Target()
			require.NoError(t, err)
			assert.Greater(t, target.BaseTarget, 0.0)
			assert.NotEmpty(t, target.MomentumExpectation)
			assert.NotEmpty(t, target.ContextLabel)
		}
	})

	t.Run("active pipeline stages expect more than settled ones", func(t *testing.T) {
		offer, err := StageOffer.Target()
		require.NoError(t, err)
		sold, err := StageSold.Target()
		require.NoError(t, err)

		assert.Greater(t, offer.BaseTarget, sold.BaseTarget)
	})

	t.Run("fails on unknown stage", func(t *testing.T) {
		_, err := Stage(42).Target()
		assert.ErrorIs(t, err, ErrUnknownStage)
	})
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage("contract")
	require.NoError(t, err)
	assert.Equal(t, StageContract, stage)

	_, err = ParseStage("limbo")
	assert.ErrorIs(t, err, ErrUnknownStage)
}
