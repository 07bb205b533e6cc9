package repository

import (
	"context"
	"errors"
	"fmt"

	"teach-trade/internal/data/entity"
	"teach-trade/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, email, password, role, avatar, skills_offered, skills_wanted,
	rating, bio, linkedin_url, github_url, portfolio_url,
	certifications, experience, education, profile_completed, created_at, updated_at`

func scanUser(row rowScanner, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Avatar,
		&user.SkillsOffered,
		&user.SkillsWanted,
		&user.Rating,
		&user.Bio,
		&user.LinkedinURL,
		&user.GithubURL,
		&user.PortfolioURL,
		&user.Certifications,
		&user.Experience,
		&user.Education,
		&user.ProfileCompleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Avatar,
		nonNilStrings(user.SkillsOffered),
		nonNilStrings(user.SkillsWanted),
		user.Rating,
		user.Bio,
		user.LinkedinURL,
		user.GithubURL,
		user.PortfolioURL,
		nonNilSlice(user.Certifications),
		nonNilSlice(user.Experience),
		nonNilSlice(user.Education),
		user.ProfileCompleted,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, id), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, email), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return &user, nil
}

// UpdateProfile writes the owner-editable profile fields and the derived completion flag
func (ur *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET bio = $2, linkedin_url = $3, github_url = $4, portfolio_url = $5,
		    certifications = $6, experience = $7, education = $8,
		    skills_offered = $9, profile_completed = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Bio,
		user.LinkedinURL,
		user.GithubURL,
		user.PortfolioURL,
		nonNilSlice(user.Certifications),
		nonNilSlice(user.Experience),
		nonNilSlice(user.Education),
		nonNilStrings(user.SkillsOffered),
		user.ProfileCompleted,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user profile",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID.String(), ErrUserMissing)
	}

	return nil
}

// ErrUserMissing is returned when an update matched no user row
var ErrUserMissing = errors.New("user not found")

// IsUserMissing reports whether err came from updating a user that does not exist
func IsUserMissing(err error) bool {
	return errors.Is(err, ErrUserMissing)
}

// Postgres array and jsonb columns are NOT NULL; nil slices go in as empty ones
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
