package usecase

import (
	"teach-trade/internal/data/repository"
	"teach-trade/pkg/cache"
	"teach-trade/pkg/events"
	"teach-trade/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Course  CourseService
	Booking BookingService
}

// Deps are the optional collaborators; nil values fall back to no-op implementations
type Deps struct {
	StatsCache cache.StatsCache
	Publisher  events.Publisher
}

func NewService(repo *repository.Repository, tokens *utils.TokenIssuer, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, log),
		Course:  NewCourseService(repo, log),
		Booking: NewBookingService(repo, deps.StatsCache, deps.Publisher, config.Stats, log),
	}
}
