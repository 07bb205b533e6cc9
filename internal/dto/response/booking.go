package response

import (
	"time"

	"teach-trade/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	Course      string               `json:"course"`
	CourseTitle string               `json:"course_title"`
	Learner     string               `json:"learner"`
	Status      entity.BookingStatus `json:"status"`
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	Type        entity.BookingType   `json:"type"`
	PricePaid   *float64             `json:"price_paid"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// CourseRef is the course projection shown on a learner's booking list
type CourseRef struct {
	ID       string  `json:"id"`
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	Duration *string `json:"duration"`
	Location *string `json:"location"`
}

type LearnerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MyBookingResponse struct {
	ID          string               `json:"id"`
	Course      CourseRef            `json:"course"`
	CourseTitle string               `json:"course_title"`
	Learner     LearnerRef           `json:"learner"`
	Status      entity.BookingStatus `json:"status"`
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	Type        entity.BookingType   `json:"type"`
	PricePaid   *float64             `json:"price_paid"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type MonthlyEarning struct {
	Name     string  `json:"name"`
	Earnings float64 `json:"earnings"`
}

type StatsResponse struct {
	TotalEarnings         float64          `json:"totalEarnings"`
	MonthlyEarnings       []MonthlyEarning `json:"monthlyEarnings"`
	TotalBookingsReceived int              `json:"totalBookingsReceived"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		Course:      b.CourseID.String(),
		CourseTitle: b.CourseTitle,
		Learner:     b.LearnerID.String(),
		Status:      b.Status,
		Date:        b.Date,
		Time:        b.Time,
		Type:        b.Type,
		PricePaid:   b.PricePaid,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func MyBookingToResponse(b *entity.BookingWithRefs) MyBookingResponse {
	return MyBookingResponse{
		ID: b.ID.String(),
		Course: CourseRef{
			ID:       b.CourseID.String(),
			Title:    b.CourseRefTitle,
			ImageURL: b.CourseImageURL,
			Duration: b.CourseDuration,
			Location: b.CourseLocation,
		},
		CourseTitle: b.CourseTitle,
		Learner: LearnerRef{
			ID:    b.LearnerID.String(),
			Name:  b.LearnerName,
			Email: b.LearnerEmail,
		},
		Status:    b.Status,
		Date:      b.Date,
		Time:      b.Time,
		Type:      b.Type,
		PricePaid: b.PricePaid,
		CreatedAt: b.CreatedAt,
	}
}
