package worker

import (
	"context"
	"log"
	"time"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
)

// BookingStore is the slice of the booking repository the scheduler
// needs: the due scan and the compare-and-set mark.
type BookingStore interface {
	FindDueReminders(ctx context.Context, now time.Time) ([]*entity.Booking, error)
	MarkReminderSent(ctx context.Context, id string, scheduledAt, sentAt time.Time) (bool, error)
}

// ReminderNotifier delivers the "call now" ping for a due reminder.
type ReminderNotifier interface {
	SendReminderDue(b *entity.Booking) error
}

// ReminderWorker polls for due, unsent reminders and fires them.
// Single goroutine, so ticks never overlap; delivery is at-least-once:
// a crash or send failure leaves the reminder pending for the next tick.
type ReminderWorker struct {
	store        BookingStore
	notifier     ReminderNotifier
	tickInterval time.Duration
}

func NewReminderWorker(store BookingStore, notifier ReminderNotifier) *ReminderWorker {
	return &ReminderWorker{
		store:        store,
		notifier:     notifier,
		tickInterval: time.Minute,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Println("⏰ Reminder worker started (checks every 60s)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⏰ Reminder worker stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one pass: fetch everything due as of tick start, then
// notify-and-mark each booking. A single booking's failure never aborts
// the rest of the tick.
func (w *ReminderWorker) Tick(ctx context.Context) {
	now := time.Now()

	due, err := w.store.FindDueReminders(ctx, now)
	if err != nil {
		log.Printf("❌ Reminder scan failed: %v", err)
		return
	}

	for _, booking := range due {
		// Shutdown between bookings; the one in flight finishes so the
		// gateway call and the mark stay paired.
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.process(ctx, booking)
	}
}

func (w *ReminderWorker) process(ctx context.Context, booking *entity.Booking) {
	if booking.Reminder == nil {
		return
	}

	if err := w.notifier.SendReminderDue(booking); err != nil {
		// Left pending: the next tick retries delivery.
		log.Printf("⚠️ Reminder delivery failed for %s (%s): %v", booking.Name, booking.ID, err)
		middleware.RecordNotificationError("reminder")
		return
	}

	marked, err := w.store.MarkReminderSent(ctx, booking.ID, booking.Reminder.ScheduledAt, time.Now())
	if err != nil {
		log.Printf("❌ Reminder mark-sent failed for %s: %v", booking.ID, err)
		return
	}
	if !marked {
		// An admin replaced the reminder mid-flight; the new one is
		// untouched and this delivery is treated as already handled.
		log.Printf("↩️ Reminder for %s replaced mid-flight, leaving new one pending", booking.ID)
		return
	}

	middleware.RecordReminderFired()
	log.Printf("⏰ Reminder fired for: %s (%s)", booking.Name, booking.ID)
}
