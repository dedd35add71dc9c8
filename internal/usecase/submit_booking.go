package usecase

import (
	"context"
	"log"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

type SubmitBookingUseCase struct {
	Repo   BookingRepositoryInterface
	Alerts AlertPublisherInterface
	Email  EmailService
}

func NewSubmitBookingUseCase(repo BookingRepositoryInterface, alerts AlertPublisherInterface, email EmailService) *SubmitBookingUseCase {
	return &SubmitBookingUseCase{Repo: repo, Alerts: alerts, Email: email}
}

func (uc *SubmitBookingUseCase) Execute(ctx context.Context, input SubmitBookingInput) (*SubmitBookingOutput, error) {
	if errs := ValidateBookingInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	booking := entity.NewBooking(
		input.Name, input.Phone, input.Email, input.City,
		input.Department, input.Details,
		input.ContactMethod, input.TimeSlot, input.Notes,
		input.ReferredFrom, input.IPAddress,
	)

	if err := uc.Repo.Create(ctx, booking); err != nil {
		return nil, newDatabaseError(err)
	}

	go func() {
		if uc.Alerts != nil {
			err := uc.Alerts.PublishAlert(context.Background(), queue.AlertPayload{
				Kind:      queue.AlertKindBooking,
				LeadID:    booking.ID,
				Reference: booking.Reference,
				Name:      booking.Name,
				Phone:     booking.Phone,
				Email:     booking.Email,
				City:      booking.City,
				Topic:     booking.Department,
				Message:   booking.Notes,
				Details:   booking.Details,
			})
			if err != nil {
				log.Printf("⚠️ booking alert publish failed for %s: %v", booking.ID, err)
			}
		}
		if uc.Email != nil && booking.Email != "" {
			if err := uc.Email.SendUserConfirmation(booking.Email, booking.Name, "booking"); err != nil {
				log.Printf("⚠️ confirmation email failed for %s: %v", booking.ID, err)
			}
		}
	}()

	return &SubmitBookingOutput{
		ID:        booking.ID,
		Reference: booking.Reference,
		Message:   "Booking confirmed! We will call you shortly to confirm your time slot.",
	}, nil
}
