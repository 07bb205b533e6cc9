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

// ClientInfo describes where a login came from; both fields are optional
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository // users and sessions
	tokens *utils.TokenIssuer
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be unused
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already exists", utils.ErrAlreadyExists)
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := entity.RoleLearner
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	// 4. Build and save user
	now := s.now()
	avatar := utils.AvatarURL(req.Name)
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hashed,
		Role:          role,
		Avatar:        &avatar,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	}
	user.RefreshProfileCompleted()

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 5. Log in right away
	resp, err := s.issue(ctx, user, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", email))
		return nil, utils.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrInvalidCredentials
	}

	resp, err := s.issue(ctx, user, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("session_id", sessionID.String()))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out", zap.String("session_id", sessionID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

// issue stores a session row and signs a token whose jti is that row's ID
func (s *authService) issue(ctx context.Context, user *entity.User, client ClientInfo) (*response.AuthResponse, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.tokens.TTL()),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role), session.ID, now)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
