package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

func TestStampRatingFillsIdentity(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	submitted := models.UserRating{
		UserID:    uuid.New(),
		RatedByID: uuid.New(),
		RaterName: "Taylor",
		Rating:    5,
	}

	first := stampRating(submitted, now)
	second := stampRating(submitted, now)

	require.NotEqual(t, uuid.Nil, first.ID)
	require.NotEqual(t, uuid.Nil, second.ID)
	assert.NotEqual(t, first.ID, second.ID, "each stored rating needs its own primary key")
	assert.Equal(t, now, first.CreatedAt)

	// The submitted fields pass through untouched.
	assert.Equal(t, submitted.UserID, first.UserID)
	assert.Equal(t, submitted.RatedByID, first.RatedByID)
	assert.Equal(t, 5, first.Rating)
}

func TestStampRatingKeepsExistingIdentity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rating := models.UserRating{ID: id, CreatedAt: created, Rating: 3}

	stamped := stampRating(rating, time.Now())

	assert.Equal(t, id, stamped.ID)
	assert.Equal(t, created, stamped.CreatedAt)
}
