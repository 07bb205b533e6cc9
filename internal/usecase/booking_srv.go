package usecase

import (
	"context"
	"fmt"
	"time"

	"teach-trade/internal/data/entity"
	"teach-trade/internal/data/repository"
	"teach-trade/internal/dto/request"
	"teach-trade/internal/dto/response"
	"teach-trade/pkg/cache"
	"teach-trade/pkg/events"
	"teach-trade/pkg/metrics"
	"teach-trade/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, learnerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, learnerID string) ([]response.MyBookingResponse, error)
	GetBookingByID(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error)
	RescheduleBooking(ctx context.Context, callerID, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)

	// Status transitions
	ConfirmBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error)

	GetTrainerStats(ctx context.Context, trainerID string) (*response.StatsResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	cache     cache.StatsCache
	publisher events.Publisher
	stats     utils.StatsConfig
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	statsCache cache.StatsCache,
	publisher events.Publisher,
	stats utils.StatsConfig,
	log *zap.Logger,
) BookingService {
	if statsCache == nil {
		statsCache = cache.Noop{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &bookingService{
		repo:      repo,
		cache:     statsCache,
		publisher: publisher,
		stats:     stats,
		now:       time.Now,
		log:       log.With(zap.String("service", "booking")),
	}
}

// party is the caller's relation to a booking
type party struct {
	learner bool
	trainer bool
	// trainerID is uuid.Nil when the course no longer exists
	trainerID uuid.UUID
}

func (s *bookingService) CreateBooking(ctx context.Context, learnerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	learnerUUID, err := uuid.Parse(learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid learner ID %s", utils.ErrValidation, learnerID)
	}

	courseUUID, err := uuid.Parse(req.Course)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid course ID %s", utils.ErrValidation, req.Course)
	}

	status := entity.BookingStatusPending
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
	}

	bookingType := entity.BookingTypePaid
	if req.Type != "" {
		bookingType = entity.BookingType(req.Type)
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CourseID:    courseUUID,
		CourseTitle: req.CourseTitle,
		LearnerID:   learnerUUID,
		Status:      status,
		Date:        req.Date,
		Time:        req.Time,
		Type:        bookingType,
		PricePaid:   req.PricePaid,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("learner_id", learnerID),
			zap.String("course_id", req.Course),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreated.WithLabelValues(string(booking.Type)).Inc()
	s.evictStatsForCourse(ctx, booking.CourseID)
	s.publish(ctx, events.BookingCreated, booking)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("learner_id", learnerID),
		zap.String("course_id", req.Course),
		zap.String("status", string(booking.Status)),
		zap.String("type", string(booking.Type)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, learnerID string) ([]response.MyBookingResponse, error) {
	learnerUUID, err := uuid.Parse(learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid learner ID %s", utils.ErrValidation, learnerID)
	}

	bookings, err := s.repo.Booking.FindByLearnerID(ctx, learnerUUID)
	if err != nil {
		s.log.Error("Failed to get learner bookings", zap.Error(err), zap.String("learner_id", learnerID))
		return nil, fmt.Errorf("get learner bookings: %w", err)
	}

	result := make([]response.MyBookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = response.MyBookingToResponse(b)
	}

	s.log.Debug("Learner bookings retrieved",
		zap.String("learner_id", learnerID),
		zap.Int("count", len(result)),
	)

	return result, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error) {
	booking, p, err := s.loadForParty(ctx, callerID, bookingID)
	if err != nil {
		return nil, err
	}

	if !p.learner && !p.trainer {
		return nil, fmt.Errorf("%w: booking %s belongs to another user", utils.ErrForbidden, bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// RescheduleBooking changes date and time only. The booking must exist and the
// caller must be its learner or the trainer of its course; nothing is written otherwise.
func (s *bookingService) RescheduleBooking(ctx context.Context, callerID, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reschedule validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	booking, p, err := s.loadForParty(ctx, callerID, bookingID)
	if err != nil {
		return nil, err
	}

	if !p.learner && !p.trainer {
		s.log.Warn("Reschedule rejected for non-party caller",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID),
		)
		return nil, fmt.Errorf("%w: only the learner or the trainer may reschedule booking %s", utils.ErrForbidden, bookingID)
	}

	updated, err := s.repo.Booking.UpdateSchedule(ctx, booking.ID, req.Date, req.Time, s.now())
	if err != nil {
		s.log.Error("Failed to reschedule booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking %s", utils.ErrNotFound, bookingID)
	}

	s.publish(ctx, events.BookingRescheduled, updated)

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("caller_id", callerID),
		zap.String("date", updated.Date),
		zap.String("time", updated.Time),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, callerID, bookingID, entity.BookingStatusConfirmed, events.BookingConfirmed,
		func(p party) bool { return p.trainer })
}

func (s *bookingService) CompleteBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, callerID, bookingID, entity.BookingStatusCompleted, events.BookingCompleted,
		func(p party) bool { return p.trainer })
}

func (s *bookingService) CancelBooking(ctx context.Context, callerID, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, callerID, bookingID, entity.BookingStatusCancelled, events.BookingCancelled,
		func(p party) bool { return p.learner || p.trainer })
}

func (s *bookingService) transition(
	ctx context.Context,
	callerID, bookingID string,
	to entity.BookingStatus,
	eventType string,
	allowed func(p party) bool,
) (*response.BookingResponse, error) {
	booking, p, err := s.loadForParty(ctx, callerID, bookingID)
	if err != nil {
		return nil, err
	}

	if !allowed(p) {
		s.log.Warn("Status change rejected",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("%w: caller may not mark booking %s as %s", utils.ErrForbidden, bookingID, to)
	}

	from := booking.Status
	if !from.CanTransition(to) {
		return nil, fmt.Errorf("%w: cannot move booking from %s to %s", utils.ErrConflict, from, to)
	}

	updated, err := s.repo.Booking.UpdateStatus(ctx, booking.ID, from, to, s.now())
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if updated == nil {
		// status changed between the read and the conditional update
		return nil, fmt.Errorf("%w: booking %s is no longer %s", utils.ErrConflict, bookingID, from)
	}

	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	if p.trainerID != uuid.Nil {
		s.evictStats(ctx, p.trainerID)
	}
	s.publish(ctx, eventType, updated)

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("caller_id", callerID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// GetTrainerStats reports earnings over every booking placed on the trainer's courses
func (s *bookingService) GetTrainerStats(ctx context.Context, trainerID string) (*response.StatsResponse, error) {
	trainerUUID, err := uuid.Parse(trainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trainer ID %s", utils.ErrValidation, trainerID)
	}

	// generation is read before the bookings so an eviction racing this
	// computation makes the Set below a no-op
	var cached response.StatsResponse
	generation, hit, err := s.cache.Get(ctx, trainerUUID, &cached)
	cacheable := err == nil
	switch {
	case err != nil:
		metrics.StatsCacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("Stats cache read failed", zap.Error(err), zap.String("trainer_id", trainerID))
	case hit:
		metrics.StatsCacheLookups.WithLabelValues("hit").Inc()
		return &cached, nil
	default:
		metrics.StatsCacheLookups.WithLabelValues("miss").Inc()
	}

	courseIDs, err := s.repo.Course.FindIDsByTrainerID(ctx, trainerUUID)
	if err != nil {
		s.log.Error("Failed to get trainer courses", zap.Error(err), zap.String("trainer_id", trainerID))
		return nil, fmt.Errorf("get trainer courses: %w", err)
	}

	bookings := []*entity.Booking{}
	if len(courseIDs) > 0 {
		bookings, err = s.repo.Booking.FindByCourseIDs(ctx, courseIDs)
		if err != nil {
			s.log.Error("Failed to get trainer bookings", zap.Error(err), zap.String("trainer_id", trainerID))
			return nil, fmt.Errorf("get trainer bookings: %w", err)
		}
	}

	stats := AggregateEarnings(bookings, s.stats.ExcludeCancelled)

	if cacheable {
		if err := s.cache.Set(ctx, trainerUUID, generation, stats); err != nil {
			s.log.Warn("Stats cache write failed", zap.Error(err), zap.String("trainer_id", trainerID))
		}
	}

	s.log.Debug("Trainer stats computed",
		zap.String("trainer_id", trainerID),
		zap.Int("courses", len(courseIDs)),
		zap.Int("bookings", stats.TotalBookingsReceived),
		zap.Float64("total_earnings", stats.TotalEarnings),
	)

	return &stats, nil
}

// ==================== HELPER METHODS ====================

// loadForParty resolves the booking and the caller's relation to it
func (s *bookingService) loadForParty(ctx context.Context, callerID, bookingID string) (*entity.Booking, party, error) {
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, party{}, fmt.Errorf("%w: invalid user ID %s", utils.ErrValidation, callerID)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, party{}, fmt.Errorf("%w: invalid booking ID %s", utils.ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, party{}, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, party{}, fmt.Errorf("%w: booking %s", utils.ErrNotFound, bookingID)
	}

	trainerID, ok, err := s.repo.Course.FindTrainerID(ctx, booking.CourseID)
	if err != nil {
		return nil, party{}, fmt.Errorf("resolve course trainer: %w", err)
	}

	p := party{learner: booking.LearnerID == callerUUID}
	if ok {
		p.trainerID = trainerID
		p.trainer = trainerID == callerUUID
	}

	return booking, p, nil
}

func (s *bookingService) evictStatsForCourse(ctx context.Context, courseID uuid.UUID) {
	if _, disabled := s.cache.(cache.Noop); disabled {
		return
	}

	trainerID, ok, err := s.repo.Course.FindTrainerID(ctx, courseID)
	if err != nil {
		s.log.Warn("Failed to resolve trainer for cache eviction", zap.Error(err), zap.String("course_id", courseID.String()))
		return
	}
	if ok {
		s.evictStats(ctx, trainerID)
	}
}

func (s *bookingService) evictStats(ctx context.Context, trainerID uuid.UUID) {
	if err := s.cache.Delete(ctx, trainerID); err != nil {
		s.log.Warn("Failed to evict stats cache", zap.Error(err), zap.String("trainer_id", trainerID.String()))
	}
}

// publish never fails the request; a lost event is logged and counted
func (s *bookingService) publish(ctx context.Context, eventType string, b *entity.Booking) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID.String(),
		CourseID:   b.CourseID.String(),
		LearnerID:  b.LearnerID.String(),
		Status:     string(b.Status),
		Date:       b.Date,
		Time:       b.Time,
		OccurredAt: s.now(),
	}

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("booking_id", event.BookingID),
		)
	}
}
