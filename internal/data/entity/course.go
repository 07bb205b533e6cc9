package entity

import "github.com/google/uuid"

type Course struct {
	Base
	TrainerID          uuid.UUID `db:"trainer_id"`
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	Category           string    `db:"category"`
	Price              *float64  `db:"price"`
	IsBarterEnabled    bool      `db:"is_barter_enabled"`
	BarterSkillsWanted []string  `db:"barter_skills_wanted"`
	Duration           string    `db:"duration"`
	Location           string    `db:"location"`
	Rating             float64   `db:"rating"`
	ReviewsCount       int       `db:"reviews_count"`
	ImageURL           *string   `db:"image_url"`
	Tags               []string  `db:"tags"`
}

// EffectivePrice treats an absent price as free
func (c *Course) EffectivePrice() float64 {
	if c.Price == nil {
		return 0
	}
	return *c.Price
}

// CourseWithTrainer is a course joined with the public trainer fields
type CourseWithTrainer struct {
	Course
	TrainerName   string
	TrainerAvatar *string
	TrainerRating float64
}
