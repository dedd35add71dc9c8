package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Contact, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Contact), args.Int(1), args.Error(2)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, upd ContactUpdate) (*entity.Contact, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Contact, error) {
	args := m.Called(ctx, id, text, addedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockContactRepository) GroupByInterest(ctx context.Context) ([]StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatusCount), args.Error(1)
}

func (m *MockContactRepository) Recent(ctx context.Context, limit int) ([]*entity.Contact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

// MockBookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) Update(ctx context.Context, id string, upd BookingUpdate) (*entity.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, text, addedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetReminder(ctx context.Context, id string, r entity.Reminder) (*entity.Booking, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) GroupByDepartment(ctx context.Context) ([]StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatusCount), args.Error(1)
}

func (m *MockBookingRepository) Recent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

// MockBlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, filter BlogFilter) ([]*entity.BlogPost, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.BlogPost), args.Int(1), args.Error(2)
}

func (m *MockBlogRepository) Save(ctx context.Context, p *entity.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAlertPublisher
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishAlert(ctx context.Context, payload queue.AlertPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendUserConfirmation(to, name, kind string) error {
	args := m.Called(to, name, kind)
	return args.Error(0)
}
