package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"teach-trade/internal/data/entity"
	"teach-trade/internal/dto/request"
	"teach-trade/internal/dto/response"
	"teach-trade/pkg/cache"
	"teach-trade/pkg/events"
	"teach-trade/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

func newTestBookingService(statsCache cache.StatsCache, stats utils.StatsConfig) (*bookingService, *repoMocks, *recordingPublisher) {
	repo, m := newRepoMocks()
	pub := &recordingPublisher{}
	svc := NewBookingService(repo, statsCache, pub, stats, testLogger).(*bookingService)
	svc.now = fixedClock(testNow)
	return svc, m, pub
}

func sampleBooking(courseID, learnerID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	created := time.Date(2025, time.January, 3, 8, 0, 0, 0, time.UTC)
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: created,
			UpdatedAt: created,
		},
		CourseID:    courseID,
		CourseTitle: "Intro to Go",
		LearnerID:   learnerID,
		Status:      status,
		Date:        "2025-01-10",
		Time:        "09:00",
		Type:        entity.BookingTypePaid,
		PricePaid:   ptr(40.0),
	}
}

// ==================== CREATE ====================

func TestBookingService_CreateBooking_SnapshotsLearnerAndTitle(t *testing.T) {
	svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	learnerID := uuid.New()
	courseID := uuid.New()

	var saved *entity.Booking
	m.booking.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Booking) }).
		Return(nil)

	req := &request.CreateBookingRequest{
		Course:      courseID.String(),
		CourseTitle: "Intro to Go",
		Date:        "2025-01-10",
		Time:        "09:00",
		Type:        "PAID",
		PricePaid:   ptr(40.0),
	}

	resp, err := svc.CreateBooking(context.Background(), learnerID.String(), req)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, learnerID, saved.LearnerID)
	assert.Equal(t, courseID, saved.CourseID)
	assert.Equal(t, "Intro to Go", saved.CourseTitle)
	assert.Equal(t, entity.BookingStatusPending, saved.Status)
	assert.Equal(t, entity.BookingTypePaid, saved.Type)
	assert.Equal(t, 40.0, saved.Amount())
	assert.Equal(t, testNow, saved.CreatedAt)

	assert.Equal(t, learnerID.String(), resp.Learner)
	assert.Equal(t, "Intro to Go", resp.CourseTitle)
	assert.Equal(t, "2025-01-10", resp.Date)
	assert.Equal(t, "09:00", resp.Time)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)

	assert.Equal(t, []string{events.BookingCreated}, pub.types())
	m.booking.AssertExpectations(t)
	// no cache configured, so the trainer is never looked up
	m.course.AssertNotCalled(t, "FindTrainerID", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_KeepsExplicitStatus(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	m.booking.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), uuid.NewString(), &request.CreateBookingRequest{
		Course: uuid.NewString(),
		Status: "CONFIRMED",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, entity.BookingTypePaid, resp.Type)
	assert.Nil(t, resp.PricePaid)
}

func TestBookingService_CreateBooking_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		learnerID string
		req       *request.CreateBookingRequest
	}{
		{"missing course", uuid.NewString(), &request.CreateBookingRequest{Date: "2025-01-10"}},
		{"malformed course", uuid.NewString(), &request.CreateBookingRequest{Course: "C1"}},
		{"unknown type", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), Type: "GIFT"}},
		{"unknown status", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), Status: "DONE"}},
		{"negative price", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), PricePaid: ptr(-1.0)}},
		{"malformed learner", "nobody", &request.CreateBookingRequest{Course: uuid.NewString()}},
		{"title longer than column", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), CourseTitle: strings.Repeat("t", 201)}},
		{"date longer than column", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), Date: strings.Repeat("d", 51)}},
		{"time longer than column", uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString(), Time: strings.Repeat("9", 51)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})

			_, err := svc.CreateBooking(context.Background(), tt.learnerID, tt.req)

			assert.ErrorIs(t, err, utils.ErrValidation)
			m.booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, pub.types())
		})
	}
}

func TestBookingService_CreateBooking_StoreError(t *testing.T) {
	svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	storeErr := errors.New("connection refused")
	m.booking.On("Create", mock.Anything, mock.Anything).Return(storeErr)

	_, err := svc.CreateBooking(context.Background(), uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString()})

	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, pub.types())
}

func TestBookingService_CreateBooking_PublishFailureIsIgnored(t *testing.T) {
	svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	pub.err = errors.New("broker down")
	m.booking.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), uuid.NewString(), &request.CreateBookingRequest{Course: uuid.NewString()})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestBookingService_CreateBooking_EvictsTrainerStats(t *testing.T) {
	statsCache := &MockStatsCache{}
	svc, m, _ := newTestBookingService(statsCache, utils.StatsConfig{})
	courseID := uuid.New()
	trainerID := uuid.New()

	m.booking.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.course.On("FindTrainerID", mock.Anything, courseID).Return(trainerID, true, nil)
	statsCache.On("Delete", mock.Anything, []uuid.UUID{trainerID}).Return(nil)

	_, err := svc.CreateBooking(context.Background(), uuid.NewString(), &request.CreateBookingRequest{Course: courseID.String()})

	require.NoError(t, err)
	statsCache.AssertExpectations(t)
}

// ==================== MINE ====================

func TestBookingService_GetMyBookings(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	learnerID := uuid.New()
	courseID := uuid.New()

	b := sampleBooking(courseID, learnerID, entity.BookingStatusPending)
	rows := []*entity.BookingWithRefs{{
		Booking:        *b,
		CourseRefTitle: ptr("Intro to Go"),
		CourseDuration: ptr("4 weeks"),
		LearnerName:    "Lena",
		LearnerEmail:   "lena@example.com",
	}}
	m.booking.On("FindByLearnerID", mock.Anything, learnerID).Return(rows, nil)

	result, err := svc.GetMyBookings(context.Background(), learnerID.String())

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, b.ID.String(), result[0].ID)
	assert.Equal(t, courseID.String(), result[0].Course.ID)
	assert.Equal(t, "Intro to Go", *result[0].Course.Title)
	assert.Nil(t, result[0].Course.ImageURL)
	assert.Equal(t, "Lena", result[0].Learner.Name)
	assert.Equal(t, "lena@example.com", result[0].Learner.Email)
	assert.Equal(t, entity.BookingStatusPending, result[0].Status)
	assert.Equal(t, 40.0, *result[0].PricePaid)
}

func TestBookingService_GetMyBookings_Empty(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	learnerID := uuid.New()
	m.booking.On("FindByLearnerID", mock.Anything, learnerID).Return([]*entity.BookingWithRefs{}, nil)

	result, err := svc.GetMyBookings(context.Background(), learnerID.String())

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestBookingService_GetMyBookings_StoreError(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	m.booking.On("FindByLearnerID", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.GetMyBookings(context.Background(), uuid.NewString())

	assert.Error(t, err)
}

// ==================== GET BY ID ====================

func TestBookingService_GetBookingByID_AccessRules(t *testing.T) {
	learnerID := uuid.New()
	trainerID := uuid.New()
	courseID := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		wantErr error
	}{
		{"learner", learnerID, nil},
		{"trainer", trainerID, nil},
		{"stranger", uuid.New(), utils.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
			b := sampleBooking(courseID, learnerID, entity.BookingStatusPending)
			m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
			m.course.On("FindTrainerID", mock.Anything, courseID).Return(trainerID, true, nil)

			resp, err := svc.GetBookingByID(context.Background(), tt.caller.String(), b.ID.String())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID.String(), resp.ID)
		})
	}
}

func TestBookingService_GetBookingByID_InvalidID(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})

	_, err := svc.GetBookingByID(context.Background(), uuid.NewString(), "not-a-uuid")

	assert.ErrorIs(t, err, utils.ErrValidation)
	m.booking.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// ==================== RESCHEDULE ====================

func TestBookingService_Reschedule_NotFoundPerformsNoWrite(t *testing.T) {
	svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	id := uuid.New()
	m.booking.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.RescheduleBooking(context.Background(), uuid.NewString(), id.String(),
		&request.RescheduleBookingRequest{Date: "2025-02-01", Time: "10:00"})

	assert.ErrorIs(t, err, utils.ErrNotFound)
	m.booking.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.types())
}

func TestBookingService_Reschedule_StrangerIsForbidden(t *testing.T) {
	svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	courseID := uuid.New()
	b := sampleBooking(courseID, uuid.New(), entity.BookingStatusConfirmed)
	m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	m.course.On("FindTrainerID", mock.Anything, courseID).Return(uuid.New(), true, nil)

	_, err := svc.RescheduleBooking(context.Background(), uuid.NewString(), b.ID.String(),
		&request.RescheduleBookingRequest{Date: "2025-02-01", Time: "10:00"})

	assert.ErrorIs(t, err, utils.ErrForbidden)
	m.booking.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.types())
}

func TestBookingService_Reschedule_ChangesOnlyDateAndTime(t *testing.T) {
	for _, caller := range []string{"learner", "trainer"} {
		t.Run(caller, func(t *testing.T) {
			svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
			learnerID := uuid.New()
			trainerID := uuid.New()
			courseID := uuid.New()

			before := sampleBooking(courseID, learnerID, entity.BookingStatusConfirmed)
			after := *before
			after.Date = "2025-02-01"
			after.Time = "10:00"
			after.UpdatedAt = testNow

			m.booking.On("FindByID", mock.Anything, before.ID).Return(before, nil)
			m.course.On("FindTrainerID", mock.Anything, courseID).Return(trainerID, true, nil)
			m.booking.On("UpdateSchedule", mock.Anything, before.ID, "2025-02-01", "10:00", testNow).Return(&after, nil)

			callerID := learnerID
			if caller == "trainer" {
				callerID = trainerID
			}

			resp, err := svc.RescheduleBooking(context.Background(), callerID.String(), before.ID.String(),
				&request.RescheduleBookingRequest{Date: "2025-02-01", Time: "10:00"})
			require.NoError(t, err)

			assert.Equal(t, "2025-02-01", resp.Date)
			assert.Equal(t, "10:00", resp.Time)

			// everything else is carried through untouched
			assert.Equal(t, before.ID.String(), resp.ID)
			assert.Equal(t, before.Status, resp.Status)
			assert.Equal(t, before.Type, resp.Type)
			assert.Equal(t, before.PricePaid, resp.PricePaid)
			assert.Equal(t, before.LearnerID.String(), resp.Learner)
			assert.Equal(t, before.CourseID.String(), resp.Course)
			assert.Equal(t, before.CourseTitle, resp.CourseTitle)
			assert.Equal(t, before.CreatedAt, resp.CreatedAt)

			assert.Equal(t, []string{events.BookingRescheduled}, pub.types())
			m.booking.AssertExpectations(t)
		})
	}
}

func TestBookingService_Reschedule_DeletedBeforeWrite(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	learnerID := uuid.New()
	b := sampleBooking(uuid.New(), learnerID, entity.BookingStatusPending)
	m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	m.course.On("FindTrainerID", mock.Anything, b.CourseID).Return(uuid.Nil, false, nil)
	m.booking.On("UpdateSchedule", mock.Anything, b.ID, "2025-02-01", "10:00", testNow).Return(nil, nil)

	_, err := svc.RescheduleBooking(context.Background(), learnerID.String(), b.ID.String(),
		&request.RescheduleBookingRequest{Date: "2025-02-01", Time: "10:00"})

	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestBookingService_Reschedule_RequiresDateAndTime(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})

	_, err := svc.RescheduleBooking(context.Background(), uuid.NewString(), uuid.NewString(),
		&request.RescheduleBookingRequest{Date: "2025-02-01"})

	assert.ErrorIs(t, err, utils.ErrValidation)
	m.booking.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestBookingService_Reschedule_RejectsOverlongFields(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})

	_, err := svc.RescheduleBooking(context.Background(), uuid.NewString(), uuid.NewString(),
		&request.RescheduleBookingRequest{Date: strings.Repeat("d", 51), Time: "10:00"})

	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "date: Maximum length is 50")
	m.booking.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// ==================== STATUS TRANSITIONS ====================

func TestBookingService_Transitions(t *testing.T) {
	type action func(s *bookingService, callerID, bookingID string) (*response.BookingResponse, error)

	confirm := func(s *bookingService, c, b string) (*response.BookingResponse, error) {
		return s.ConfirmBooking(context.Background(), c, b)
	}
	complete := func(s *bookingService, c, b string) (*response.BookingResponse, error) {
		return s.CompleteBooking(context.Background(), c, b)
	}
	cancel := func(s *bookingService, c, b string) (*response.BookingResponse, error) {
		return s.CancelBooking(context.Background(), c, b)
	}

	tests := []struct {
		name      string
		act       action
		from      entity.BookingStatus
		to        entity.BookingStatus
		byTrainer bool
		wantErr   error
		wantEvent string
	}{
		{"trainer confirms pending", confirm, entity.BookingStatusPending, entity.BookingStatusConfirmed, true, nil, events.BookingConfirmed},
		{"learner cannot confirm", confirm, entity.BookingStatusPending, entity.BookingStatusConfirmed, false, utils.ErrForbidden, ""},
		{"confirm twice", confirm, entity.BookingStatusConfirmed, entity.BookingStatusConfirmed, true, utils.ErrConflict, ""},
		{"trainer completes confirmed", complete, entity.BookingStatusConfirmed, entity.BookingStatusCompleted, true, nil, events.BookingCompleted},
		{"complete skips confirmation", complete, entity.BookingStatusPending, entity.BookingStatusCompleted, true, utils.ErrConflict, ""},
		{"learner cannot complete", complete, entity.BookingStatusConfirmed, entity.BookingStatusCompleted, false, utils.ErrForbidden, ""},
		{"learner cancels pending", cancel, entity.BookingStatusPending, entity.BookingStatusCancelled, false, nil, events.BookingCancelled},
		{"trainer cancels confirmed", cancel, entity.BookingStatusConfirmed, entity.BookingStatusCancelled, true, nil, events.BookingCancelled},
		{"completed cannot be cancelled", cancel, entity.BookingStatusCompleted, entity.BookingStatusCancelled, false, utils.ErrConflict, ""},
		{"cancelled is final", cancel, entity.BookingStatusCancelled, entity.BookingStatusCancelled, false, utils.ErrConflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, pub := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
			learnerID := uuid.New()
			trainerID := uuid.New()
			courseID := uuid.New()
			b := sampleBooking(courseID, learnerID, tt.from)

			m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
			m.course.On("FindTrainerID", mock.Anything, courseID).Return(trainerID, true, nil)

			updated := *b
			updated.Status = tt.to
			m.booking.On("UpdateStatus", mock.Anything, b.ID, tt.from, tt.to, testNow).Return(&updated, nil).Maybe()

			caller := learnerID
			if tt.byTrainer {
				caller = trainerID
			}

			resp, err := tt.act(svc, caller.String(), b.ID.String())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				m.booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				assert.Empty(t, pub.types())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, []string{tt.wantEvent}, pub.types())
		})
	}
}

func TestBookingService_Transition_LostRace(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	trainerID := uuid.New()
	b := sampleBooking(uuid.New(), uuid.New(), entity.BookingStatusPending)

	m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	m.course.On("FindTrainerID", mock.Anything, b.CourseID).Return(trainerID, true, nil)
	m.booking.On("UpdateStatus", mock.Anything, b.ID, entity.BookingStatusPending, entity.BookingStatusConfirmed, testNow).Return(nil, nil)

	_, err := svc.ConfirmBooking(context.Background(), trainerID.String(), b.ID.String())

	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestBookingService_Transition_EvictsStats(t *testing.T) {
	statsCache := &MockStatsCache{}
	svc, m, _ := newTestBookingService(statsCache, utils.StatsConfig{})
	trainerID := uuid.New()
	b := sampleBooking(uuid.New(), uuid.New(), entity.BookingStatusPending)
	updated := *b
	updated.Status = entity.BookingStatusCancelled

	m.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	m.course.On("FindTrainerID", mock.Anything, b.CourseID).Return(trainerID, true, nil)
	m.booking.On("UpdateStatus", mock.Anything, b.ID, entity.BookingStatusPending, entity.BookingStatusCancelled, testNow).Return(&updated, nil)
	statsCache.On("Delete", mock.Anything, []uuid.UUID{trainerID}).Return(nil)

	_, err := svc.CancelBooking(context.Background(), trainerID.String(), b.ID.String())

	require.NoError(t, err)
	statsCache.AssertExpectations(t)
}

// ==================== STATS ====================

func TestBookingService_GetTrainerStats_NoCourses(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	trainerID := uuid.New()
	m.course.On("FindIDsByTrainerID", mock.Anything, trainerID).Return([]uuid.UUID{}, nil)

	stats, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalEarnings)
	assert.Equal(t, 0, stats.TotalBookingsReceived)
	assert.NotNil(t, stats.MonthlyEarnings)
	assert.Empty(t, stats.MonthlyEarnings)
	m.booking.AssertNotCalled(t, "FindByCourseIDs", mock.Anything, mock.Anything)
}

func TestBookingService_GetTrainerStats_TwoMarchBookings(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
	trainerID := uuid.New()
	courseA, courseB := uuid.New(), uuid.New()

	first := sampleBooking(courseA, uuid.New(), entity.BookingStatusPending)
	first.CreatedAt = time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC)
	first.PricePaid = ptr(40.0)
	second := sampleBooking(courseB, uuid.New(), entity.BookingStatusConfirmed)
	second.CreatedAt = time.Date(2025, time.March, 28, 12, 0, 0, 0, time.UTC)
	second.PricePaid = ptr(60.0)

	m.course.On("FindIDsByTrainerID", mock.Anything, trainerID).Return([]uuid.UUID{courseA, courseB}, nil)
	m.booking.On("FindByCourseIDs", mock.Anything, []uuid.UUID{courseA, courseB}).Return([]*entity.Booking{first, second}, nil)

	stats, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	assert.Equal(t, &response.StatsResponse{
		TotalEarnings:         100,
		MonthlyEarnings:       []response.MonthlyEarning{{Name: "Mar", Earnings: 100}},
		TotalBookingsReceived: 2,
	}, stats)
}

func TestBookingService_GetTrainerStats_ExcludeCancelled(t *testing.T) {
	svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{ExcludeCancelled: true})
	trainerID := uuid.New()
	courseID := uuid.New()

	kept := sampleBooking(courseID, uuid.New(), entity.BookingStatusCompleted)
	dropped := sampleBooking(courseID, uuid.New(), entity.BookingStatusCancelled)

	m.course.On("FindIDsByTrainerID", mock.Anything, trainerID).Return([]uuid.UUID{courseID}, nil)
	m.booking.On("FindByCourseIDs", mock.Anything, []uuid.UUID{courseID}).Return([]*entity.Booking{kept, dropped}, nil)

	stats, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	assert.Equal(t, 40.0, stats.TotalEarnings)
	assert.Equal(t, 1, stats.TotalBookingsReceived)
}

func TestBookingService_GetTrainerStats_CacheHit(t *testing.T) {
	statsCache := &MockStatsCache{}
	svc, m, _ := newTestBookingService(statsCache, utils.StatsConfig{})
	trainerID := uuid.New()
	cached := response.StatsResponse{
		TotalEarnings:         75,
		MonthlyEarnings:       []response.MonthlyEarning{{Name: "Feb", Earnings: 75}},
		TotalBookingsReceived: 3,
	}

	statsCache.On("Get", mock.Anything, trainerID, mock.AnythingOfType("*response.StatsResponse")).
		Run(func(args mock.Arguments) { *args.Get(2).(*response.StatsResponse) = cached }).
		Return(int64(4), true, nil)

	stats, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	assert.Equal(t, cached, *stats)
	m.course.AssertNotCalled(t, "FindIDsByTrainerID", mock.Anything, mock.Anything)
}

func TestBookingService_GetTrainerStats_CacheMissStoresResult(t *testing.T) {
	statsCache := &MockStatsCache{}
	svc, m, _ := newTestBookingService(statsCache, utils.StatsConfig{})
	trainerID := uuid.New()
	courseID := uuid.New()
	b := sampleBooking(courseID, uuid.New(), entity.BookingStatusPending)

	// the report is stored under the generation seen before the bookings were read
	statsCache.On("Get", mock.Anything, trainerID, mock.Anything).Return(int64(7), false, nil)
	m.course.On("FindIDsByTrainerID", mock.Anything, trainerID).Return([]uuid.UUID{courseID}, nil)
	m.booking.On("FindByCourseIDs", mock.Anything, []uuid.UUID{courseID}).Return([]*entity.Booking{b}, nil)
	statsCache.On("Set", mock.Anything, trainerID, int64(7), response.StatsResponse{
		TotalEarnings:         40,
		MonthlyEarnings:       []response.MonthlyEarning{{Name: "Jan", Earnings: 40}},
		TotalBookingsReceived: 1,
	}).Return(nil)

	_, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	statsCache.AssertExpectations(t)
}

func TestBookingService_GetTrainerStats_CacheErrorFallsThrough(t *testing.T) {
	statsCache := &MockStatsCache{}
	svc, m, _ := newTestBookingService(statsCache, utils.StatsConfig{})
	trainerID := uuid.New()

	statsCache.On("Get", mock.Anything, trainerID, mock.Anything).Return(int64(0), false, errors.New("redis down"))
	m.course.On("FindIDsByTrainerID", mock.Anything, trainerID).Return([]uuid.UUID{}, nil)

	stats, err := svc.GetTrainerStats(context.Background(), trainerID.String())

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalBookingsReceived)
	// without a generation the report is not written back
	statsCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_GetTrainerStats_StoreErrors(t *testing.T) {
	t.Run("courses", func(t *testing.T) {
		svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
		m.course.On("FindIDsByTrainerID", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := svc.GetTrainerStats(context.Background(), uuid.NewString())
		assert.Error(t, err)
	})

	t.Run("bookings", func(t *testing.T) {
		svc, m, _ := newTestBookingService(cache.Noop{}, utils.StatsConfig{})
		m.course.On("FindIDsByTrainerID", mock.Anything, mock.Anything).Return([]uuid.UUID{uuid.New()}, nil)
		m.booking.On("FindByCourseIDs", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := svc.GetTrainerStats(context.Background(), uuid.NewString())
		assert.Error(t, err)
	})
}
