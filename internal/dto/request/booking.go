package request

type CreateBookingRequest struct {
	Course      string   `json:"course" validate:"required,uuid"`
	CourseTitle string   `json:"course_title" validate:"max=200"`
	Date        string   `json:"date" validate:"max=50"`
	Time        string   `json:"time" validate:"max=50"`
	Type        string   `json:"type,omitempty" validate:"omitempty,oneof=PAID BARTER FREE"`
	PricePaid   *float64 `json:"price_paid,omitempty" validate:"omitempty,gte=0"`
	Status      string   `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

// RescheduleBookingRequest carries the only two fields a reschedule may touch
type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required,max=50"`
	Time string `json:"time" validate:"required,max=50"`
}
