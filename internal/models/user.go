package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // Argon2id hash, never returned in JSON

	TeachSkills    []string `json:"teach_skills"`
	LearnSkills    []string `json:"learn_skills"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Bio            string   `json:"bio,omitempty"`

	Subscription *UserSubscriptionInfo `json:"subscription,omitempty"`
}

// UserSubscriptionInfo mirrors the user's current plan on the user row so
// profile reads don't need to join the subscriptions table.
type UserSubscriptionInfo struct {
	PlanID string `json:"plan_id"`
	Status string `json:"status"` // free, active, canceled, expired, trial
}

// UserRating is a review left on a user's profile by another user.
type UserRating struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `json:"user_id"`
	RatedByID uuid.UUID `json:"rated_by_id"`
	RaterName string    `json:"rater_name"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
}

// UserMatch is a derived projection, recomputed on every query and never stored.
type UserMatch struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	MatchScore     int       `json:"match_score"` // 0-100
	CanTeachYou    []string  `json:"can_teach_you"`
	YouCanTeach    []string  `json:"you_can_teach"`
}
