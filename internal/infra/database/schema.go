package database

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id           UUID PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	interest     TEXT NOT NULL DEFAULT 'Other',
	message      TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'new',
	contacted_at TIMESTAMPTZ,
	source       TEXT NOT NULL DEFAULT 'contact-form',
	ip_address   TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts (status);
CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts (phone);

CREATE TABLE IF NOT EXISTS contact_notes (
	id         BIGSERIAL PRIMARY KEY,
	contact_id UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	text       TEXT NOT NULL,
	added_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contact_notes_contact ON contact_notes (contact_id, added_at);

CREATE TABLE IF NOT EXISTS bookings (
	id                    UUID PRIMARY KEY,
	reference             TEXT NOT NULL,
	name                  TEXT NOT NULL,
	phone                 TEXT NOT NULL,
	email                 TEXT NOT NULL DEFAULT '',
	city                  TEXT NOT NULL DEFAULT '',
	department            TEXT NOT NULL,
	details               JSONB NOT NULL DEFAULT '{}',
	contact_method        TEXT NOT NULL DEFAULT '',
	time_slot             TEXT NOT NULL DEFAULT '',
	notes                 TEXT NOT NULL DEFAULT '',
	referred_from         TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL DEFAULT 'new',
	scheduled_at          TIMESTAMPTZ,
	confirmed_at          TIMESTAMPTZ,
	reminder_scheduled_at TIMESTAMPTZ,
	reminder_note         TEXT NOT NULL DEFAULT '',
	reminder_sent         BOOLEAN NOT NULL DEFAULT FALSE,
	reminder_sent_at      TIMESTAMPTZ,
	source                TEXT NOT NULL DEFAULT 'book-form',
	ip_address            TEXT NOT NULL DEFAULT '',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status);
CREATE INDEX IF NOT EXISTS idx_bookings_phone ON bookings (phone);
CREATE INDEX IF NOT EXISTS idx_bookings_reminder_due ON bookings (reminder_scheduled_at)
	WHERE reminder_sent = FALSE AND reminder_scheduled_at IS NOT NULL;

CREATE TABLE IF NOT EXISTS booking_notes (
	id         BIGSERIAL PRIMARY KEY,
	booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	text       TEXT NOT NULL,
	added_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_booking_notes_booking ON booking_notes (booking_id, added_at);

CREATE TABLE IF NOT EXISTS blog_posts (
	id           UUID PRIMARY KEY,
	title        TEXT NOT NULL,
	slug         TEXT NOT NULL UNIQUE,
	excerpt      TEXT NOT NULL,
	content      TEXT NOT NULL,
	cover_image  TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL,
	tags         TEXT[] NOT NULL DEFAULT '{}',
	author       TEXT NOT NULL DEFAULT 'Cover Credit Team',
	status       TEXT NOT NULL DEFAULT 'draft',
	published_at TIMESTAMPTZ,
	views        BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_blog_posts_status_published ON blog_posts (status, published_at DESC);
CREATE INDEX IF NOT EXISTS idx_blog_posts_category ON blog_posts (category);
`

// EnsureSchema creates tables and indexes on startup. Every statement
// is idempotent, so re-running on boot is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
