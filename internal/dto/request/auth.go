package request

type SignupRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=6"`
	Role          string   `json:"role,omitempty" validate:"omitempty,oneof=LEARNER TRAINER ADMIN"`
	SkillsOffered []string `json:"skills_offered,omitempty"`
	SkillsWanted  []string `json:"skills_wanted,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
