package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type BookingType string

const (
	BookingTypePaid   BookingType = "PAID"
	BookingTypeBarter BookingType = "BARTER"
	BookingTypeFree   BookingType = "FREE"
)

// bookingTransitions lists the states each status may move to
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking in status s may move to next
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is created by a learner against a course. CourseID, LearnerID,
// Type and PricePaid are fixed at creation; only Date, Time and Status change.
type Booking struct {
	Base
	CourseID    uuid.UUID     `db:"course_id"`
	CourseTitle string        `db:"course_title"`
	LearnerID   uuid.UUID     `db:"learner_id"`
	Status      BookingStatus `db:"status"`
	Date        string        `db:"date"`
	Time        string        `db:"time"`
	Type        BookingType   `db:"type"`
	PricePaid   *float64      `db:"price_paid"`
}

// Amount is the settled price, zero when none was recorded
func (b *Booking) Amount() float64 {
	if b.PricePaid == nil {
		return 0
	}
	return *b.PricePaid
}

// BookingWithRefs is a booking joined with the course and learner projections
// shown in the learner's booking list. Course fields are nil when the course is gone.
type BookingWithRefs struct {
	Booking
	CourseRefTitle *string
	CourseImageURL *string
	CourseDuration *string
	CourseLocation *string
	LearnerName    string
	LearnerEmail   string
}
