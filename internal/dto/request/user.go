package request

import "teach-trade/internal/data/entity"

// UpdateProfileRequest is a partial update; nil fields are left untouched
type UpdateProfileRequest struct {
	Bio            *string                 `json:"bio,omitempty"`
	LinkedinURL    *string                 `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL      *string                 `json:"github_url,omitempty" validate:"omitempty,url"`
	PortfolioURL   *string                 `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	Certifications *[]entity.Certification `json:"certifications,omitempty"`
	Experience     *[]entity.Experience    `json:"experience,omitempty"`
	Education      *[]entity.Education     `json:"education,omitempty"`
	SkillsOffered  *[]string               `json:"skills_offered,omitempty"`
}
