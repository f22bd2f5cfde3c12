package services

import "github.com/saeid-a/FitBuddyBack/internal/models"

// CanTransition decides whether actorID may move the match to next.
//
// A pending match may be accepted only by the matched (non-initiating) user
// and declined by either participant. Accepted and declined are terminal;
// there is no reopening a declined match. Non-participants get ErrForbidden,
// every other violation an IllegalTransitionError.
func CanTransition(match *models.Match, actorID string, next models.MatchStatus) error {
	if !match.HasParticipant(actorID) {
		return ErrForbidden
	}

	if match.Status == models.MatchPending {
		switch next {
		case models.MatchAccepted:
			if actorID != match.MatchedUserID {
				return &IllegalTransitionError{From: match.Status, To: next}
			}
			return nil
		case models.MatchDeclined:
			return nil
		}
	}

	return &IllegalTransitionError{From: match.Status, To: next}
}
