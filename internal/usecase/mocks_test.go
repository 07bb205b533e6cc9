package usecase

import (
	"context"
	"sync"
	"time"

	"teach-trade/internal/data/entity"
	"teach-trade/internal/data/repository"
	"teach-trade/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByLearnerID(ctx context.Context, learnerID uuid.UUID) ([]*entity.BookingWithRefs, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingWithRefs), args.Error(1)
}

func (m *MockBookingRepository) FindByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, courseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, date, clock string, updatedAt time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, date, clock, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, from, to, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CourseWithTrainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CourseWithTrainer), args.Error(1)
}

func (m *MockCourseRepository) FindAll(ctx context.Context) ([]*entity.CourseWithTrainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CourseWithTrainer), args.Error(1)
}

func (m *MockCourseRepository) FindIDsByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCourseRepository) FindTrainerID(ctx context.Context, courseID uuid.UUID) (uuid.UUID, bool, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, trainerID uuid.UUID, dest any) (int64, bool, error) {
	args := m.Called(ctx, trainerID, dest)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockStatsCache) Set(ctx context.Context, trainerID uuid.UUID, generation int64, value any) error {
	args := m.Called(ctx, trainerID, generation, value)
	return args.Error(0)
}

func (m *MockStatsCache) Delete(ctx context.Context, trainerIDs ...uuid.UUID) error {
	args := m.Called(ctx, trainerIDs)
	return args.Error(0)
}

func (m *MockStatsCache) Close() error {
	return nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type repoMocks struct {
	user    *MockUserRepository
	session *MockSessionRepository
	course  *MockCourseRepository
	booking *MockBookingRepository
}

func newRepoMocks() (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		user:    &MockUserRepository{},
		session: &MockSessionRepository{},
		course:  &MockCourseRepository{},
		booking: &MockBookingRepository{},
	}
	repo := &repository.Repository{
		User:    m.user,
		Session: m.session,
		Course:  m.course,
		Booking: m.booking,
	}
	return repo, m
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

var testLogger = zap.NewNop()
