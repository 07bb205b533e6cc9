package response

import (
	"time"

	"teach-trade/internal/data/entity"
)

type TrainerRef struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
	Rating float64 `json:"rating"`
}

type CourseResponse struct {
	ID                 string     `json:"id"`
	Trainer            TrainerRef `json:"trainer"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Price              float64    `json:"price"`
	IsBarterEnabled    bool       `json:"is_barter_enabled"`
	BarterSkillsWanted []string   `json:"barter_skills_wanted"`
	Duration           string     `json:"duration"`
	Location           string     `json:"location"`
	Rating             float64    `json:"rating"`
	ReviewsCount       int        `json:"reviews_count"`
	ImageURL           *string    `json:"image_url,omitempty"`
	Tags               []string   `json:"tags"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func CourseToResponse(c *entity.CourseWithTrainer) CourseResponse {
	return CourseResponse{
		ID: c.ID.String(),
		Trainer: TrainerRef{
			ID:     c.TrainerID.String(),
			Name:   c.TrainerName,
			Avatar: c.TrainerAvatar,
			Rating: c.TrainerRating,
		},
		Title:              c.Title,
		Description:        c.Description,
		Category:           c.Category,
		Price:              c.EffectivePrice(),
		IsBarterEnabled:    c.IsBarterEnabled,
		BarterSkillsWanted: orEmpty(c.BarterSkillsWanted),
		Duration:           c.Duration,
		Location:           c.Location,
		Rating:             c.Rating,
		ReviewsCount:       c.ReviewsCount,
		ImageURL:           c.ImageURL,
		Tags:               orEmpty(c.Tags),
		CreatedAt:          c.CreatedAt,
	}
}
