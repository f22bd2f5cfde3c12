package services

import (
	"sort"

	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const (
	baseMatchScore          = 70
	maxMatchScore           = 99
	pointsPerSharedInterest = 5
	maxInterestPoints       = 20
	sameLevelPoints         = 5
	bothLocatedPoints       = 5
)

// CompatibilityScore rates two users as workout partners. The function is
// symmetric in its arguments and always lands in [70, 99]: shared exercise
// interests add 5 points each up to 20, matching fitness levels add 5, and
// both profiles carrying a location adds 5. Location is a presence check
// only; no distance is computed.
func CompatibilityScore(a, b *models.User) (int, []string) {
	common := commonInterests(a.PreferredExercises, b.PreferredExercises)

	score := baseMatchScore

	interestPoints := len(common) * pointsPerSharedInterest
	if interestPoints > maxInterestPoints {
		interestPoints = maxInterestPoints
	}
	score += interestPoints

	if a.FitnessLevel != nil && b.FitnessLevel != nil && *a.FitnessLevel == *b.FitnessLevel {
		score += sameLevelPoints
	}

	if a.Location != nil && b.Location != nil {
		score += bothLocatedPoints
	}

	if score > maxMatchScore {
		score = maxMatchScore
	}
	if score < baseMatchScore {
		score = baseMatchScore
	}

	return score, common
}

// commonInterests intersects two tag lists as sets, case-sensitive. The
// result is sorted so both argument orders produce identical output.
func commonInterests(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	inB := make(map[string]struct{}, len(b))
	for _, tag := range b {
		inB[tag] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	shared := make([]string, 0)
	for _, tag := range a {
		if _, ok := inB[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		shared = append(shared, tag)
	}
	if len(shared) == 0 {
		return nil
	}

	sort.Strings(shared)
	return shared
}
