package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `id, first_name, last_name, phone, email, interest, message,
	status, contacted_at, source, ip_address, created_at, updated_at`

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.Interest, c.Message,
		c.Status, c.ContactedAt, c.Source, c.IPAddress, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	contact, err := scanContact(row)
	if err != nil {
		return nil, err
	}
	notes, err := r.loadNotes(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	contact.AdminNotes = notes[id]
	return contact, nil
}

func (r *ContactRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*entity.Contact, int, error) {
	where, args := contactFilterClauses(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM contacts` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT `+contactColumns+` FROM contacts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	var ids []string
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	notes, err := r.loadNotes(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range contacts {
		c.AdminNotes = notes[c.ID]
	}

	return contacts, total, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, upd usecase.ContactUpdate) (*entity.Contact, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	if upd.Status != nil {
		args = append(args, *upd.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.StampContacted {
		// One-way stamp: only the first transition into "contacted" sets it.
		set = append(set, "contacted_at = COALESCE(contacted_at, NOW())")
	}

	query := `UPDATE contacts SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *ContactRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Contact, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE contacts SET updated_at = $2 WHERE id = $1`, id, addedAt)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contact_notes (contact_id, text, added_at) VALUES ($1, $2, $3)`,
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

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

// CountByStatus with an empty status counts everything.
func (r *ContactRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE status = $1`, status).Scan(&count)
	}
	return count, err
}

func (r *ContactRepository) GroupByInterest(ctx context.Context) ([]usecase.StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT interest, COUNT(*) FROM contacts GROUP BY interest ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroups(rows)
}

func (r *ContactRepository) Recent(ctx context.Context, limit int) ([]*entity.Contact, error) {
	items, _, err := r.List(ctx, usecase.ListFilter{Page: 1, Limit: limit})
	return items, err
}

func (r *ContactRepository) loadNotes(ctx context.Context, ids []string) (map[string][]entity.CallNote, error) {
	notes := make(map[string][]entity.CallNote, len(ids))
	for _, id := range ids {
		notes[id] = []entity.CallNote{}
	}
	if len(ids) == 0 {
		return notes, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT contact_id, text, added_at FROM contact_notes WHERE contact_id = ANY($1) ORDER BY added_at, id`,
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	var contactedAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Interest, &c.Message,
		&c.Status, &contactedAt, &c.Source, &c.IPAddress, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if contactedAt.Valid {
		c.ContactedAt = &contactedAt.Time
	}
	c.AdminNotes = []entity.CallNote{}
	return &c, nil
}

func scanGroups(rows *sql.Rows) ([]usecase.StatusCount, error) {
	var groups []usecase.StatusCount
	for rows.Next() {
		var g usecase.StatusCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func contactFilterClauses(filter usecase.ListFilter) (string, []interface{}) {
	var where []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n,
		))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
