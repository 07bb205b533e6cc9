package response

import (
	"time"

	"teach-trade/internal/data/entity"
)

// UserResponse never carries the password hash
type UserResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Role             entity.UserRole        `json:"role"`
	Avatar           *string                `json:"avatar,omitempty"`
	SkillsOffered    []string               `json:"skills_offered"`
	SkillsWanted     []string               `json:"skills_wanted"`
	Rating           float64                `json:"rating"`
	Bio              string                 `json:"bio"`
	LinkedinURL      *string                `json:"linkedin_url,omitempty"`
	GithubURL        *string                `json:"github_url,omitempty"`
	PortfolioURL     *string                `json:"portfolio_url,omitempty"`
	Certifications   []entity.Certification `json:"certifications"`
	Experience       []entity.Experience    `json:"experience"`
	Education        []entity.Education     `json:"education"`
	ProfileCompleted bool                   `json:"profile_completed"`
	CreatedAt        time.Time              `json:"createdAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		Avatar:           user.Avatar,
		SkillsOffered:    orEmpty(user.SkillsOffered),
		SkillsWanted:     orEmpty(user.SkillsWanted),
		Rating:           user.Rating,
		Bio:              user.Bio,
		LinkedinURL:      user.LinkedinURL,
		GithubURL:        user.GithubURL,
		PortfolioURL:     user.PortfolioURL,
		Certifications:   orEmpty(user.Certifications),
		Experience:       orEmpty(user.Experience),
		Education:        orEmpty(user.Education),
		ProfileCompleted: user.ProfileCompleted,
		CreatedAt:        user.CreatedAt,
	}
}

// orEmpty keeps list fields serialised as [] rather than null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
