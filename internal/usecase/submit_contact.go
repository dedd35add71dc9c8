package usecase

import (
	"context"
	"log"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

type SubmitContactUseCase struct {
	Repo   ContactRepositoryInterface
	Alerts AlertPublisherInterface
	Email  EmailService
}

func NewSubmitContactUseCase(repo ContactRepositoryInterface, alerts AlertPublisherInterface, email EmailService) *SubmitContactUseCase {
	return &SubmitContactUseCase{Repo: repo, Alerts: alerts, Email: email}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, input SubmitContactInput) (*SubmitContactOutput, error) {
	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	contact := entity.NewContact(
		input.FirstName, input.LastName, input.Phone, input.Email,
		input.Interest, input.Message, input.IPAddress,
	)

	if err := uc.Repo.Create(ctx, contact); err != nil {
		return nil, newDatabaseError(err)
	}

	// Alerts never block the submission response. The goroutine gets its
	// own context so request cancellation cannot abort a dispatched send.
	go func() {
		if uc.Alerts != nil {
			err := uc.Alerts.PublishAlert(context.Background(), queue.AlertPayload{
				Kind:    queue.AlertKindContact,
				LeadID:  contact.ID,
				Name:    contact.FirstName + " " + contact.LastName,
				Phone:   contact.Phone,
				Email:   contact.Email,
				Topic:   contact.Interest,
				Message: contact.Message,
			})
			if err != nil {
				log.Printf("⚠️ contact alert publish failed for %s: %v", contact.ID, err)
			}
		}
		if uc.Email != nil && contact.Email != "" {
			if err := uc.Email.SendUserConfirmation(contact.Email, contact.FirstName, "contact"); err != nil {
				log.Printf("⚠️ confirmation email failed for %s: %v", contact.ID, err)
			}
		}
	}()

	return &SubmitContactOutput{
		ID:      contact.ID,
		Message: "Thank you! We will contact you within 24 hours.",
	}, nil
}
