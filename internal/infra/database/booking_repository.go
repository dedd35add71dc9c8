package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, reference, name, phone, email, city, department, details,
	contact_method, time_slot, notes, referred_from, status, scheduled_at, confirmed_at,
	reminder_scheduled_at, reminder_note, reminder_sent, reminder_sent_at,
	source, ip_address, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	details, err := json.Marshal(b.Details)
	if err != nil {
		return err
	}
	if b.Details == nil {
		details = []byte("{}")
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
	`
	var remScheduledAt, remSentAt *time.Time
	remNote, remSent := "", false
	if b.Reminder != nil {
		remScheduledAt = &b.Reminder.ScheduledAt
		remNote = b.Reminder.Note
		remSent = b.Reminder.Sent
		remSentAt = b.Reminder.SentAt
	}

	_, err = r.DB.ExecContext(ctx, query,
		b.ID, b.Reference, b.Name, b.Phone, b.Email, b.City, b.Department, details,
		b.ContactMethod, b.TimeSlot, b.Notes, b.ReferredFrom, b.Status, b.ScheduledAt, b.ConfirmedAt,
		remScheduledAt, remNote, remSent, remSentAt,
		b.Source, b.IPAddress, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	notes, err := r.loadNotes(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	booking.AdminNotes = notes[id]
	return booking, nil
}

func (r *BookingRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*entity.Booking, int, error) {
	where, args := bookingFilterClauses(filter)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT `+bookingColumns+` FROM bookings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	var ids []string
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	notes, err := r.loadNotes(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range bookings {
		b.AdminNotes = notes[b.ID]
	}

	return bookings, total, nil
}

func (r *BookingRepository) Update(ctx context.Context, id string, upd usecase.BookingUpdate) (*entity.Booking, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	if upd.Status != nil {
		args = append(args, *upd.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.StampConfirmed {
		// One-way stamp: survives later confirm transitions untouched.
		set = append(set, "confirmed_at = COALESCE(confirmed_at, NOW())")
	}
	if upd.SetScheduledAt {
		args = append(args, upd.ScheduledAt)
		set = append(set, fmt.Sprintf("scheduled_at = $%d", len(args)))
	}

	query := `UPDATE bookings SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *BookingRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE bookings SET updated_at = $2 WHERE id = $1`, id, addedAt)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO booking_notes (booking_id, text, added_at) VALUES ($1, $2, $3)`,
		id, text, addedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// SetReminder replaces the reminder wholesale, discarding the previous
// one regardless of its sent state.
func (r *BookingRepository) SetReminder(ctx context.Context, id string, rem entity.Reminder) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET reminder_scheduled_at = $2,
			reminder_note = $3,
			reminder_sent = FALSE,
			reminder_sent_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, rem.ScheduledAt, rem.Note)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// FindDueReminders returns bookings whose reminder is unsent and due as
// of now. Backed by the partial index on (reminder_scheduled_at).
func (r *BookingRepository) FindDueReminders(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE reminder_sent = FALSE
			AND reminder_scheduled_at IS NOT NULL
			AND reminder_scheduled_at <= $1
	`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// MarkReminderSent is a compare-and-set: it only fires when the stored
// reminder is still the exact unsent instance the scheduler read as due.
// A zero-row update means an admin replaced it mid-flight, which is
// treated as already handled.
func (r *BookingRepository) MarkReminderSent(ctx context.Context, id string, scheduledAt, sentAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET reminder_sent = TRUE,
			reminder_sent_at = $3,
			updated_at = NOW()
		WHERE id = $1
			AND reminder_scheduled_at = $2
			AND reminder_sent = FALSE
	`
	res, err := r.DB.ExecContext(ctx, query, id, scheduledAt, sentAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	}
	return count, err
}

func (r *BookingRepository) GroupByDepartment(ctx context.Context) ([]usecase.StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT department, COUNT(*) FROM bookings GROUP BY department ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroups(rows)
}

func (r *BookingRepository) Recent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	items, _, err := r.List(ctx, usecase.ListFilter{Page: 1, Limit: limit})
	return items, err
}

func (r *BookingRepository) loadNotes(ctx context.Context, ids []string) (map[string][]entity.CallNote, error) {
	notes := make(map[string][]entity.CallNote, len(ids))
	for _, id := range ids {
		notes[id] = []entity.CallNote{}
	}
	if len(ids) == 0 {
		return notes, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT booking_id, text, added_at FROM booking_notes WHERE booking_id = ANY($1) ORDER BY added_at, id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var note entity.CallNote
		if err := rows.Scan(&id, &note.Text, &note.AddedAt); err != nil {
			return nil, err
		}
		notes[id] = append(notes[id], note)
	}
	return notes, rows.Err()
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	var details []byte
	var scheduledAt, confirmedAt, remScheduledAt, remSentAt sql.NullTime
	var remNote string
	var remSent bool

	err := row.Scan(
		&b.ID, &b.Reference, &b.Name, &b.Phone, &b.Email, &b.City, &b.Department, &details,
		&b.ContactMethod, &b.TimeSlot, &b.Notes, &b.ReferredFrom, &b.Status, &scheduledAt, &confirmedAt,
		&remScheduledAt, &remNote, &remSent, &remSentAt,
		&b.Source, &b.IPAddress, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &b.Details); err != nil {
			return nil, err
		}
	}
	if scheduledAt.Valid {
		b.ScheduledAt = &scheduledAt.Time
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}
	if remScheduledAt.Valid {
		b.Reminder = &entity.Reminder{
			ScheduledAt: remScheduledAt.Time,
			Note:        remNote,
			Sent:        remSent,
		}
		if remSentAt.Valid {
			b.Reminder.SentAt = &remSentAt.Time
		}
	}
	b.AdminNotes = []entity.CallNote{}
	return &b, nil
}

func bookingFilterClauses(filter usecase.ListFilter) (string, []interface{}) {
	var where []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d OR city ILIKE $%d OR department ILIKE $%d)",
			n, n, n, n, n,
		))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
