package request

type CreateCourseRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description"`
	Category           string   `json:"category" validate:"max=100"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsBarterEnabled    bool     `json:"is_barter_enabled"`
	BarterSkillsWanted []string `json:"barter_skills_wanted,omitempty"`
	Duration           string   `json:"duration" validate:"max=100"`
	Location           string   `json:"location" validate:"max=200"`
	ImageURL           *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags               []string `json:"tags,omitempty"`
}
