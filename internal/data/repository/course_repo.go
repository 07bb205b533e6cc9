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

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CourseWithTrainer, error)
	FindAll(ctx context.Context) ([]*entity.CourseWithTrainer, error)
	FindIDsByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]uuid.UUID, error)
	FindTrainerID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, bool, error)
}

type courseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourseRepository(db database.PgxIface, log *zap.Logger) CourseRepository {
	return &courseRepository{
		db:  db,
		log: log.With(zap.String("repository", "course")),
	}
}

const courseWithTrainerSelect = `
	SELECT c.id, c.trainer_id, c.title, c.description, c.category, c.price,
	       c.is_barter_enabled, c.barter_skills_wanted, c.duration, c.location,
	       c.rating, c.reviews_count, c.image_url, c.tags, c.created_at, c.updated_at,
	       u.name, u.avatar, u.rating
	FROM courses c
	JOIN users u ON u.id = c.trainer_id
`

func scanCourseWithTrainer(row rowScanner, c *entity.CourseWithTrainer) error {
	return row.Scan(
		&c.ID,
		&c.TrainerID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Price,
		&c.IsBarterEnabled,
		&c.BarterSkillsWanted,
		&c.Duration,
		&c.Location,
		&c.Rating,
		&c.ReviewsCount,
		&c.ImageURL,
		&c.Tags,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.TrainerName,
		&c.TrainerAvatar,
		&c.TrainerRating,
	)
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	query := `
		INSERT INTO courses (id, trainer_id, title, description, category, price,
		                     is_barter_enabled, barter_skills_wanted, duration, location,
		                     rating, reviews_count, image_url, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.TrainerID,
		course.Title,
		course.Description,
		course.Category,
		course.Price,
		course.IsBarterEnabled,
		course.BarterSkillsWanted,
		course.Duration,
		course.Location,
		course.Rating,
		course.ReviewsCount,
		course.ImageURL,
		course.Tags,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create course",
			zap.Error(err),
			zap.String("trainer_id", course.TrainerID.String()),
			zap.String("title", course.Title),
		)
		return fmt.Errorf("create course %s: %w", course.Title, err)
	}

	return nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CourseWithTrainer, error) {
	query := courseWithTrainerSelect + ` WHERE c.id = $1`

	var course entity.CourseWithTrainer
	err := scanCourseWithTrainer(r.db.QueryRow(ctx, query, id), &course)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course by ID",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return nil, fmt.Errorf("find course by ID %s: %w", id.String(), err)
	}

	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*entity.CourseWithTrainer, error) {
	query := courseWithTrainerSelect + ` ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all courses", zap.Error(err))
		return nil, fmt.Errorf("find all courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*entity.CourseWithTrainer, 0)
	for rows.Next() {
		var course entity.CourseWithTrainer
		if err := scanCourseWithTrainer(rows, &course); err != nil {
			r.log.Error("Failed to scan course row", zap.Error(err))
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) FindIDsByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM courses WHERE trainer_id = $1`

	rows, err := r.db.Query(ctx, query, trainerID)
	if err != nil {
		r.log.Error("Failed to find course IDs by trainer",
			zap.Error(err),
			zap.String("trainer_id", trainerID.String()),
		)
		return nil, fmt.Errorf("find course IDs by trainer %s: %w", trainerID.String(), err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan course ID", zap.Error(err))
			return nil, fmt.Errorf("scan course ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course IDs: %w", err)
	}

	return ids, nil
}

// FindTrainerID resolves the owner of a course; ok is false when the course is gone
func (r *courseRepository) FindTrainerID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, bool, error) {
	query := `SELECT trainer_id FROM courses WHERE id = $1`

	var trainerID uuid.UUID
	err := r.db.QueryRow(ctx, query, courseID).Scan(&trainerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to find course trainer",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return uuid.Nil, false, fmt.Errorf("find trainer of course %s: %w", courseID.String(), err)
	}

	return trainerID, true, nil
}
