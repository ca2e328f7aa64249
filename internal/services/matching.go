package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

// intersect returns the elements of a that also appear in b, preserving a's
// order. Matching is exact and case-sensitive.
func intersect(a, b []string) []string {
	out := []string{}
	for _, s := range a {
		for _, t := range b {
			if s == t {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// MatchUsers computes the reciprocal skill matches between current and the
// given candidates. A candidate only qualifies when skills flow in both
// directions. Pure and side-effect free; results are sorted descending by
// score with ties keeping encounter order.
func MatchUsers(current models.User, candidates []models.User) []models.UserMatch {
	var matches []models.UserMatch

	for _, other := range candidates {
		if other.ID == current.ID {
			continue
		}

		canTeachYou := intersect(other.TeachSkills, current.LearnSkills)
		youCanTeach := intersect(current.TeachSkills, other.LearnSkills)

		// A match requires at least one skill in each direction
		if len(canTeachYou) == 0 || len(youCanTeach) == 0 {
			continue
		}

		totalPossible := len(current.TeachSkills) + len(current.LearnSkills)
		if otherTotal := len(other.TeachSkills) + len(other.LearnSkills); otherTotal > totalPossible {
			totalPossible = otherTotal
		}

		matching := len(canTeachYou) + len(youCanTeach)
		score := int(float64(matching)/float64(totalPossible)*100 + 0.5)

		matches = append(matches, models.UserMatch{
			ID:             other.ID,
			Name:           other.Name,
			Email:          other.Email,
			ProfilePicture: other.ProfilePicture,
			MatchScore:     score,
			CanTeachYou:    canTeachYou,
			YouCanTeach:    youCanTeach,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return matches
}

// FindSkillMatches reads the full user collection and returns the current
// user's matches. Recomputed on every call; match lists are never persisted.
func FindSkillMatches(ctx context.Context, current models.User) ([]models.UserMatch, error) {
	others, err := ListUsersExcept(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	return MatchUsers(current, others), nil
}

// SearchProfiles filters candidates by a case-insensitive substring query over
// name and both skill lists. An empty query returns everything.
func SearchProfiles(candidates []models.User, query string) []models.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return candidates
	}

	var out []models.User
	for _, u := range candidates {
		if profileMatchesQuery(u, query) {
			out = append(out, u)
		}
	}
	return out
}

func profileMatchesQuery(u models.User, query string) bool {
	if strings.Contains(strings.ToLower(u.Name), query) {
		return true
	}
	for _, s := range u.TeachSkills {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	for _, s := range u.LearnSkills {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// BrowseProfiles lists every other user, optionally filtered by query.
func BrowseProfiles(ctx context.Context, currentID uuid.UUID, query string) ([]models.User, error) {
	others, err := ListUsersExcept(ctx, currentID)
	if err != nil {
		return nil, err
	}
	return SearchProfiles(others, query), nil
}
