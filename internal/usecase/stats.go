package usecase

import (
	"context"

	"github.com/covercredit/cover-credit-backend/internal/entity"
)

type DashboardStats struct {
	TotalContacts int `json:"totalContacts"`
	TotalBookings int `json:"totalBookings"`
	TotalLeads    int `json:"totalLeads"`
	NewContacts   int `json:"newContacts"`
	NewBookings   int `json:"newBookings"`
	NewLeads      int `json:"newLeads"`
}

type DashboardOutput struct {
	Stats                DashboardStats    `json:"stats"`
	ContactsByInterest   []StatusCount     `json:"contactsByInterest"`
	BookingsByDepartment []StatusCount     `json:"bookingsByDepartment"`
	RecentContacts       []*entity.Contact `json:"recentContacts"`
	RecentBookings       []*entity.Booking `json:"recentBookings"`
}

type StatsUseCase struct {
	Contacts ContactRepositoryInterface
	Bookings BookingRepositoryInterface
}

func NewStatsUseCase(contacts ContactRepositoryInterface, bookings BookingRepositoryInterface) *StatsUseCase {
	return &StatsUseCase{Contacts: contacts, Bookings: bookings}
}

func (uc *StatsUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	totalContacts, err := uc.Contacts.CountByStatus(ctx, "")
	if err != nil {
		return nil, newDatabaseError(err)
	}
	totalBookings, err := uc.Bookings.CountByStatus(ctx, "")
	if err != nil {
		return nil, newDatabaseError(err)
	}
	newContacts, err := uc.Contacts.CountByStatus(ctx, entity.ContactStatusNew)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	newBookings, err := uc.Bookings.CountByStatus(ctx, entity.BookingStatusNew)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	byInterest, err := uc.Contacts.GroupByInterest(ctx)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	byDepartment, err := uc.Bookings.GroupByDepartment(ctx)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	recentContacts, err := uc.Contacts.Recent(ctx, 5)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	recentBookings, err := uc.Bookings.Recent(ctx, 5)
	if err != nil {
		return nil, newDatabaseError(err)
	}

	return &DashboardOutput{
		Stats: DashboardStats{
			TotalContacts: totalContacts,
			TotalBookings: totalBookings,
			TotalLeads:    totalContacts + totalBookings,
			NewContacts:   newContacts,
			NewBookings:   newBookings,
			NewLeads:      newContacts + newBookings,
		},
		ContactsByInterest:   byInterest,
		BookingsByDepartment: byDepartment,
		RecentContacts:       recentContacts,
		RecentBookings:       recentBookings,
	}, nil
}
