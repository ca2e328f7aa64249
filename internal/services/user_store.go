package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/skillswap-app/skillswap-backend/internal/database"
	"github.com/skillswap-app/skillswap-backend/internal/models"
)

const userColumns = `id, created_at, updated_at, name, email, password_hash,
	teach_skills, learn_skills, profile_picture, bio,
	subscription_plan_id, subscription_status`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var picture, bio sql.NullString
	var planID, status string

	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &u.Password,
		pq.Array(&u.TeachSkills), pq.Array(&u.LearnSkills), &picture, &bio,
		&planID, &status)
	if err != nil {
		return nil, err
	}

	u.ProfilePicture = picture.String
	u.Bio = bio.String
	if status != "" && status != "free" {
		u.Subscription = &models.UserSubscriptionInfo{PlanID: planID, Status: status}
	}
	return &u, nil
}

// CreateUser inserts a new account. The password must already be hashed.
func CreateUser(ctx context.Context, name, email, passwordHash string, teachSkills, learnSkills []string) (*models.User, error) {
	u := &models.User{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Name:        name,
		Email:       email,
		Password:    passwordHash,
		TeachSkills: teachSkills,
		LearnSkills: learnSkills,
	}
	if u.TeachSkills == nil {
		u.TeachSkills = []string{}
	}
	if u.LearnSkills == nil {
		u.LearnSkills = []string{}
	}

	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, name, email, password_hash, teach_skills, learn_skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.CreatedAt, u.UpdatedAt, u.Name, u.Email, u.Password,
		pq.Array(u.TeachSkills), pq.Array(u.LearnSkills))
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail returns nil without error when no account exists.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := database.PostgresDB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// GetUserByID returns nil without error when no account exists.
func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := database.PostgresDB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// ListUsersExcept returns every account except the given one, in insertion order.
func ListUsersExcept(ctx context.Context, excludeID uuid.UUID) ([]models.User, error) {
	rows, err := database.PostgresDB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id != $1 ORDER BY created_at`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateProfile replaces the user's editable profile fields.
func UpdateProfile(ctx context.Context, id uuid.UUID, name, bio, profilePicture string, teachSkills, learnSkills []string) error {
	if teachSkills == nil {
		teachSkills = []string{}
	}
	if learnSkills == nil {
		learnSkills = []string{}
	}
	_, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE users
		SET updated_at = NOW(), name = $2, bio = $3, profile_picture = $4,
		    teach_skills = $5, learn_skills = $6
		WHERE id = $1
	`, id, name, bio, profilePicture, pq.Array(teachSkills), pq.Array(learnSkills))
	return err
}

// SetUserSubscriptionInfo mirrors the current plan/status onto the user row.
func SetUserSubscriptionInfo(ctx context.Context, id uuid.UUID, planID, status string) error {
	_, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE users SET updated_at = NOW(), subscription_plan_id = $2, subscription_status = $3
		WHERE id = $1
	`, id, planID, status)
	return err
}

// InsertRating records a 1-5 review on a user's profile.
func InsertRating(ctx context.Context, rating models.UserRating) error {
	rating = stampRating(rating, time.Now())
	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO user_ratings (id, created_at, user_id, rated_by, rater_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rating.ID, rating.CreatedAt, rating.UserID, rating.RatedByID, rating.RaterName, rating.Rating, rating.Comment)
	return err
}

// stampRating fills the identity columns of a freshly submitted rating.
// Callers build ratings from request bodies, which never carry an id or
// creation time.
func stampRating(rating models.UserRating, now time.Time) models.UserRating {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = now
	}
	return rating
}

// ListRatings returns a user's ratings, newest first.
func ListRatings(ctx context.Context, userID uuid.UUID) ([]models.UserRating, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, created_at, user_id, rated_by, rater_name, rating, comment
		FROM user_ratings WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.UserRating
	for rows.Next() {
		var r models.UserRating
		var comment sql.NullString
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.UserID, &r.RatedByID, &r.RaterName, &r.Rating, &comment); err != nil {
			return nil, err
		}
		r.Comment = comment.String
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// AverageRating returns the mean of a user's ratings, or 0 when unrated.
func AverageRating(ratings []models.UserRating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	return float64(total) / float64(len(ratings))
}

// AddManualMatch records a browse-page pick. Adding the same profile twice is
// a no-op; the bool reports whether a new row was written.
func AddManualMatch(ctx context.Context, userID, matchedUserID uuid.UUID) (bool, error) {
	res, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO manual_matches (user_id, matched_user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, matched_user_id) DO NOTHING
	`, userID, matchedUserID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListManualMatches returns the ids a user picked manually, oldest first.
func ListManualMatches(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT matched_user_id FROM manual_matches WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
