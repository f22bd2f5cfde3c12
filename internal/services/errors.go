package services

import (
	"errors"
	"fmt"

	"github.com/saeid-a/FitBuddyBack/internal/models"
)

var (
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserNotFound         = errors.New("user not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrDuplicateMatch       = errors.New("match already exists for this pair")
	ErrMatchNotAccepted     = errors.New("users do not have an accepted match")
	ErrPostNotFound         = errors.New("post not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrNotParticipant       = errors.New("user has not joined this challenge")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrWorkoutNotFound      = errors.New("workout not found")
)

// IllegalTransitionError reports a match status change that the lifecycle
// does not permit, keeping the attempted states for caller diagnostics.
type IllegalTransitionError struct {
	From models.MatchStatus
	To   models.MatchStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal match transition from %s to %s", e.From, e.To)
}
