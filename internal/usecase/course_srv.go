package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teach-trade/internal/data/entity"
	"teach-trade/internal/data/repository"
	"teach-trade/internal/dto/request"
	"teach-trade/internal/dto/response"
	"teach-trade/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseService interface {
	GetCourses(ctx context.Context) ([]response.CourseResponse, error)
	GetCourseByID(ctx context.Context, courseID string) (*response.CourseResponse, error)
	CreateCourse(ctx context.Context, trainerID string, req *request.CreateCourseRequest) (*response.CourseResponse, error)
	SearchCourses(ctx context.Context, query string) ([]response.CourseResponse, error)
}

type courseService struct {
	repo *repository.Repository // courses and their trainers
	log  *zap.Logger
}

func NewCourseService(repo *repository.Repository, log *zap.Logger) CourseService {
	return &courseService{
		repo: repo,
		log:  log.With(zap.String("service", "course")),
	}
}

func (s *courseService) GetCourses(ctx context.Context) ([]response.CourseResponse, error) {
	courses, err := s.repo.Course.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get courses", zap.Error(err))
		return nil, fmt.Errorf("get courses: %w", err)
	}

	return coursesToResponse(courses), nil
}

func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*response.CourseResponse, error) {
	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: course %s", utils.ErrNotFound, courseID)
	}

	course, err := s.repo.Course.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course %s", utils.ErrNotFound, courseID)
	}

	resp := response.CourseToResponse(course)
	return &resp, nil
}

// CreateCourse stores a course owned by the caller
func (s *courseService) CreateCourse(ctx context.Context, trainerID string, req *request.CreateCourseRequest) (*response.CourseResponse, error) {
	errs := utils.ValidateStruct(req)
	if !req.IsBarterEnabled && len(req.BarterSkillsWanted) > 0 {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["barter_skills_wanted"] = "Only allowed when is_barter_enabled is true"
	}
	if len(errs) > 0 {
		s.log.Warn("Create course validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	trainerUUID, err := uuid.Parse(trainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trainer ID %s", utils.ErrValidation, trainerID)
	}

	trainer, err := s.repo.User.FindByID(ctx, trainerUUID)
	if err != nil {
		s.log.Error("Failed to find trainer", zap.Error(err), zap.String("trainer_id", trainerID))
		return nil, fmt.Errorf("find trainer: %w", err)
	}
	if trainer == nil {
		return nil, fmt.Errorf("%w: user %s", utils.ErrNotFound, trainerID)
	}

	now := time.Now()
	course := &entity.Course{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TrainerID:          trainerUUID,
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Price:              req.Price,
		IsBarterEnabled:    req.IsBarterEnabled,
		BarterSkillsWanted: nonNil(req.BarterSkillsWanted),
		Duration:           req.Duration,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
		Tags:               nonNil(req.Tags),
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.log.Error("Failed to create course", zap.Error(err), zap.String("trainer_id", trainerID))
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("trainer_id", trainerID),
		zap.String("title", course.Title),
	)

	resp := response.CourseToResponse(&entity.CourseWithTrainer{
		Course:        *course,
		TrainerName:   trainer.Name,
		TrainerAvatar: trainer.Avatar,
		TrainerRating: trainer.Rating,
	})
	return &resp, nil
}

// SearchCourses matches the query against title, description and tags, ignoring case.
// An empty query returns every course.
func (s *courseService) SearchCourses(ctx context.Context, query string) ([]response.CourseResponse, error) {
	courses, err := s.repo.Course.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get courses for search", zap.Error(err))
		return nil, fmt.Errorf("search courses: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return coursesToResponse(courses), nil
	}

	matched := make([]*entity.CourseWithTrainer, 0, len(courses))
	for _, c := range courses {
		if courseMatches(&c.Course, query) {
			matched = append(matched, c)
		}
	}

	s.log.Debug("Courses searched",
		zap.String("query", query),
		zap.Int("matched", len(matched)),
		zap.Int("total", len(courses)),
	)

	return coursesToResponse(matched), nil
}

func courseMatches(c *entity.Course, query string) bool {
	if utils.ContainsFold(c.Title, query) || utils.ContainsFold(c.Description, query) {
		return true
	}
	for _, tag := range c.Tags {
		if utils.ContainsFold(tag, query) {
			return true
		}
	}
	return false
}

func coursesToResponse(courses []*entity.CourseWithTrainer) []response.CourseResponse {
	result := make([]response.CourseResponse, len(courses))
	for i, c := range courses {
		result[i] = response.CourseToResponse(c)
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
