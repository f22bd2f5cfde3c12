package services

import (
	"testing"

	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingMatch() *models.Match {
	return &models.Match{
		ID:            "m1",
		UserID:        "initiator",
		MatchedUserID: "recipient",
		Status:        models.MatchPending,
	}
}

func TestCanTransitionRecipientAccepts(t *testing.T) {
	err := CanTransition(pendingMatch(), "recipient", models.MatchAccepted)
	assert.NoError(t, err)
}

func TestCanTransitionInitiatorCannotAccept(t *testing.T) {
	err := CanTransition(pendingMatch(), "initiator", models.MatchAccepted)

	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.MatchPending, transitionErr.From)
	assert.Equal(t, models.MatchAccepted, transitionErr.To)
}

func TestCanTransitionEitherSideDeclines(t *testing.T) {
	assert.NoError(t, CanTransition(pendingMatch(), "initiator", models.MatchDeclined))
	assert.NoError(t, CanTransition(pendingMatch(), "recipient", models.MatchDeclined))
}

func TestCanTransitionNonParticipantForbidden(t *testing.T) {
	err := CanTransition(pendingMatch(), "stranger", models.MatchAccepted)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCanTransitionTerminalStates(t *testing.T) {
	for _, from := range []models.MatchStatus{models.MatchAccepted, models.MatchDeclined} {
		for _, next := range []models.MatchStatus{models.MatchPending, models.MatchAccepted, models.MatchDeclined} {
			match := pendingMatch()
			match.Status = from

			err := CanTransition(match, "recipient", next)

			var transitionErr *IllegalTransitionError
			require.ErrorAs(t, err, &transitionErr, "expected %s -> %s to be rejected", from, next)
			assert.Equal(t, from, transitionErr.From)
			assert.Equal(t, next, transitionErr.To)
		}
	}
}

func TestCanTransitionPendingBackToPendingRejected(t *testing.T) {
	err := CanTransition(pendingMatch(), "recipient", models.MatchPending)

	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
}
