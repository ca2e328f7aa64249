package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

func testUser(name string, teach, learn []string) models.User {
	return models.User{
		ID:          uuid.New(),
		Name:        name,
		TeachSkills: teach,
		LearnSkills: learn,
	}
}

func TestMatchUsersReciprocal(t *testing.T) {
	current := testUser("Alex", []string{"JavaScript", "React"}, []string{"Python"})
	mutual := testUser("Taylor", []string{"Python"}, []string{"JavaScript"})
	oneWay := testUser("Jordan", []string{"Python"}, []string{"Rust"})
	unrelated := testUser("Casey", []string{"Figma"}, []string{"Swift"})

	matches := MatchUsers(current, []models.User{mutual, oneWay, unrelated})

	require.Len(t, matches, 1)
	assert.Equal(t, mutual.ID, matches[0].ID)
	assert.Equal(t, []string{"Python"}, matches[0].CanTeachYou)
	assert.Equal(t, []string{"JavaScript"}, matches[0].YouCanTeach)
}

func TestMatchUsersScore(t *testing.T) {
	// 1 skill each way, current has 3 total skills, other has 2:
	// round(2/3*100) = 67
	current := testUser("Alex", []string{"JavaScript", "React"}, []string{"Python"})
	other := testUser("Taylor", []string{"Python"}, []string{"JavaScript"})

	matches := MatchUsers(current, []models.User{other})
	require.Len(t, matches, 1)
	assert.Equal(t, 67, matches[0].MatchScore)
}

func TestMatchUsersScoreUsesLargerProfile(t *testing.T) {
	// The denominator is the larger of the two skill totals, so a sparse
	// profile cannot inflate its score against a rich one.
	current := testUser("Alex", []string{"Go"}, []string{"Python"})
	other := testUser("Taylor",
		[]string{"Python", "SQL", "R"},
		[]string{"Go", "Rust", "C"})

	matches := MatchUsers(current, []models.User{other})
	require.Len(t, matches, 1)
	// 2 matching out of max(2, 6) = round(33.3) = 33
	assert.Equal(t, 33, matches[0].MatchScore)
}

func TestMatchUsersSortedDescending(t *testing.T) {
	current := testUser("Alex",
		[]string{"JavaScript", "React"},
		[]string{"Python", "SQL"})

	weak := testUser("Weak", []string{"Python"}, []string{"JavaScript"})
	strong := testUser("Strong",
		[]string{"Python", "SQL"},
		[]string{"JavaScript", "React"})

	matches := MatchUsers(current, []models.User{weak, strong})
	require.Len(t, matches, 2)
	assert.Equal(t, "Strong", matches[0].Name)
	assert.Equal(t, "Weak", matches[1].Name)
	assert.GreaterOrEqual(t, matches[0].MatchScore, matches[1].MatchScore)
}

func TestMatchUsersExcludesSelf(t *testing.T) {
	current := testUser("Alex", []string{"Go"}, []string{"Go"})
	matches := MatchUsers(current, []models.User{current})
	assert.Empty(t, matches)
}

func TestMatchUsersCaseSensitiveSkills(t *testing.T) {
	current := testUser("Alex", []string{"javascript"}, []string{"python"})
	other := testUser("Taylor", []string{"Python"}, []string{"JavaScript"})

	matches := MatchUsers(current, []models.User{other})
	assert.Empty(t, matches)
}

func TestMatchUsersScoreBounds(t *testing.T) {
	current := testUser("Alex", []string{"Go", "SQL"}, []string{"Rust", "C"})
	other := testUser("Taylor", []string{"Rust", "C"}, []string{"Go", "SQL"})

	matches := MatchUsers(current, []models.User{other})
	require.Len(t, matches, 1)
	assert.Equal(t, 100, matches[0].MatchScore)
}

func TestSearchProfiles(t *testing.T) {
	users := []models.User{
		testUser("Alex Johnson", []string{"JavaScript"}, []string{"Python"}),
		testUser("Taylor Smith", []string{"Python"}, []string{"Web Design"}),
		testUser("Jordan Lee", []string{"Figma"}, []string{"Swift"}),
	}

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, SearchProfiles(users, ""), 3)
		assert.Len(t, SearchProfiles(users, "   "), 3)
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := SearchProfiles(users, "taylor")
		require.Len(t, got, 1)
		assert.Equal(t, "Taylor Smith", got[0].Name)
	})

	t.Run("matches teach and learn skills", func(t *testing.T) {
		got := SearchProfiles(users, "python")
		assert.Len(t, got, 2)

		got = SearchProfiles(users, "swift")
		require.Len(t, got, 1)
		assert.Equal(t, "Jordan Lee", got[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, SearchProfiles(users, "haskell"))
	})
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))

	ratings := []models.UserRating{
		{Rating: 5},
		{Rating: 4},
		{Rating: 4},
	}
	assert.InDelta(t, 4.33, AverageRating(ratings), 0.01)
}
