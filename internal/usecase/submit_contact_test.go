package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

// capturingPublisher records payloads on a channel so tests can wait for
// the fire-and-forget alert goroutine deterministically.
type capturingPublisher struct {
	payloads chan queue.AlertPayload
	err      error
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{payloads: make(chan queue.AlertPayload, 1)}
}

func (p *capturingPublisher) PublishAlert(ctx context.Context, payload queue.AlertPayload) error {
	p.payloads <- payload
	return p.err
}

func (p *capturingPublisher) wait(t *testing.T) queue.AlertPayload {
	t.Helper()
	select {
	case payload := <-p.payloads:
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("no alert published")
		return queue.AlertPayload{}
	}
}

func TestSubmitContactSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)
	publisher := newCapturingPublisher()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewSubmitContactUseCase(mockRepo, publisher, nil)
	output, err := uc.Execute(ctx, SubmitContactInput{
		FirstName: "Priya",
		LastName:  "Sharma",
		Phone:     "+919876543210",
		Interest:  "Health Insurance",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.NotEmpty(t, output.ID)
	assert.Equal(t, "Thank you! We will contact you within 24 hours.", output.Message)
	mockRepo.AssertCalled(t, "Create", ctx, mock.Anything)

	payload := publisher.wait(t)
	assert.Equal(t, queue.AlertKindContact, payload.Kind)
	assert.Equal(t, output.ID, payload.LeadID)
	assert.Equal(t, "Priya Sharma", payload.Name)
	assert.Equal(t, "Health Insurance", payload.Topic)
}

func TestSubmitContactValidationFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)

	uc := NewSubmitContactUseCase(mockRepo, nil, nil)
	output, err := uc.Execute(ctx, SubmitContactInput{
		FirstName: "Priya",
		Phone:     "nope",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsDomainError(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestSubmitContactDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

	uc := NewSubmitContactUseCase(mockRepo, nil, nil)
	output, err := uc.Execute(ctx, SubmitContactInput{
		FirstName: "Priya",
		Phone:     "+919876543210",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
}

func TestSubmitContactDefaultsApplied(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockContactRepository)

	var created *entity.Contact
	mockRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Contact)
	}).Return(nil)

	uc := NewSubmitContactUseCase(mockRepo, nil, nil)
	_, err := uc.Execute(ctx, SubmitContactInput{
		FirstName: "Priya",
		Phone:     "+919876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Other", created.Interest)
	assert.Equal(t, entity.ContactStatusNew, created.Status)
	assert.Equal(t, "contact-form", created.Source)
	assert.NotNil(t, created.AdminNotes)
	assert.Empty(t, created.AdminNotes)
}
