package usecase

import (
	"context"
	"time"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Contact, int, error)
	Update(ctx context.Context, id string, upd ContactUpdate) (*entity.Contact, error)
	AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Contact, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
	GroupByInterest(ctx context.Context) ([]StatusCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.Contact, error)
}

type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *entity.Booking) error
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Booking, int, error)
	Update(ctx context.Context, id string, upd BookingUpdate) (*entity.Booking, error)
	AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Booking, error)
	SetReminder(ctx context.Context, id string, r entity.Reminder) (*entity.Booking, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
	GroupByDepartment(ctx context.Context) ([]StatusCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.Booking, error)
}

type BlogRepositoryInterface interface {
	Create(ctx context.Context, p *entity.BlogPost) error
	FindByID(ctx context.Context, id string) (*entity.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, filter BlogFilter) ([]*entity.BlogPost, int, error)
	Save(ctx context.Context, p *entity.BlogPost) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AlertPublisherInterface hands a lead alert to the notification queue.
// Publishing is best-effort: callers log failures and move on.
type AlertPublisherInterface interface {
	PublishAlert(ctx context.Context, payload queue.AlertPayload) error
}

// EmailService sends the thank-you confirmation to the lead, if they
// left an email address.
type EmailService interface {
	SendUserConfirmation(to, name, kind string) error
}
