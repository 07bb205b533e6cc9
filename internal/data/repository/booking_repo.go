package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teach-trade/internal/data/entity"
	"teach-trade/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByLearnerID(ctx context.Context, learnerID uuid.UUID) ([]*entity.BookingWithRefs, error)
	FindByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) ([]*entity.Booking, error)

	// UpdateSchedule rewrites date and time only; returns nil when the booking is missing
	UpdateSchedule(ctx context.Context, id uuid.UUID, date, clock string, updatedAt time.Time) (*entity.Booking, error)
	// UpdateStatus moves a booking from one status to another; returns nil when the
	// booking is missing or no longer in the from status
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, course_id, course_title, learner_id, status, date, time, type, price_paid, created_at, updated_at`

func scanBooking(row rowScanner, booking *entity.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.CourseID,
		&booking.CourseTitle,
		&booking.LearnerID,
		&booking.Status,
		&booking.Date,
		&booking.Time,
		&booking.Type,
		&booking.PricePaid,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CourseID,
		booking.CourseTitle,
		booking.LearnerID,
		booking.Status,
		booking.Date,
		booking.Time,
		booking.Type,
		booking.PricePaid,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("course_id", booking.CourseID.String()),
			zap.String("learner_id", booking.LearnerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

// FindByLearnerID returns the learner's bookings in creation order with the
// course (title, image, duration, location) and learner (name, email) projections
func (r *bookingRepository) FindByLearnerID(ctx context.Context, learnerID uuid.UUID) ([]*entity.BookingWithRefs, error) {
	query := `
		SELECT b.id, b.course_id, b.course_title, b.learner_id, b.status, b.date, b.time,
		       b.type, b.price_paid, b.created_at, b.updated_at,
		       c.title, c.image_url, c.duration, c.location,
		       u.name, u.email
		FROM bookings b
		LEFT JOIN courses c ON c.id = b.course_id
		JOIN users u ON u.id = b.learner_id
		WHERE b.learner_id = $1
		ORDER BY b.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		r.log.Error("Failed to find bookings by learner ID",
			zap.Error(err),
			zap.String("learner_id", learnerID.String()),
		)
		return nil, fmt.Errorf("find bookings by learner ID %s: %w", learnerID.String(), err)
	}
	defer rows.Close()

	bookings := make([]*entity.BookingWithRefs, 0)
	for rows.Next() {
		var b entity.BookingWithRefs
		err := rows.Scan(
			&b.ID,
			&b.CourseID,
			&b.CourseTitle,
			&b.LearnerID,
			&b.Status,
			&b.Date,
			&b.Time,
			&b.Type,
			&b.PricePaid,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.CourseRefTitle,
			&b.CourseImageURL,
			&b.CourseDuration,
			&b.CourseLocation,
			&b.LearnerName,
			&b.LearnerEmail,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

// FindByCourseIDs returns every booking, whatever its status, placed on any of the courses
func (r *bookingRepository) FindByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) ([]*entity.Booking, error) {
	if len(courseIDs) == 0 {
		return []*entity.Booking{}, nil
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE course_id = ANY($1::uuid[])
		ORDER BY created_at ASC
	`

	ids := make([]string, len(courseIDs))
	for i, id := range courseIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find bookings by course IDs",
			zap.Error(err),
			zap.Int("course_count", len(courseIDs)),
		)
		return nil, fmt.Errorf("find bookings by %d course IDs: %w", len(courseIDs), err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		var booking entity.Booking
		if err := scanBooking(rows, &booking); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, date, clock string, updatedAt time.Time) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET date = $2, time = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + bookingColumns

	var booking entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id, date, clock, updatedAt), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("reschedule booking %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns

	var booking entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id, from, to, updatedAt), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return &booking, nil
}
