package usecase

import (
	"context"
	"fmt"
	"time"

	"teach-trade/internal/data/repository"
	"teach-trade/internal/dto/request"
	"teach-trade/internal/dto/response"
	"teach-trade/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		// unparseable IDs cannot name a user
		return nil, fmt.Errorf("%w: user %s", utils.ErrNotFound, userID)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", utils.ErrNotFound, userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile applies the fields present in req and re-derives profile_completed
func (us *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", utils.ErrValidation, userID)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user for update", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", utils.ErrNotFound, userID)
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = req.LinkedinURL
	}
	if req.GithubURL != nil {
		user.GithubURL = req.GithubURL
	}
	if req.PortfolioURL != nil {
		user.PortfolioURL = req.PortfolioURL
	}
	if req.Certifications != nil {
		user.Certifications = *req.Certifications
	}
	if req.Experience != nil {
		user.Experience = *req.Experience
	}
	if req.Education != nil {
		user.Education = *req.Education
	}
	if req.SkillsOffered != nil {
		user.SkillsOffered = *req.SkillsOffered
	}

	user.RefreshProfileCompleted()
	user.UpdatedAt = time.Now()

	if err := us.userRepo.UpdateProfile(ctx, user); err != nil {
		if repository.IsUserMissing(err) {
			return nil, fmt.Errorf("%w: user %s", utils.ErrNotFound, userID)
		}
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	us.log.Info("Profile updated",
		zap.String("user_id", userID),
		zap.Bool("profile_completed", user.ProfileCompleted),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
