package usecase

import "time"

type SubmitContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Interest  string `json:"interest"`
	Message   string `json:"message"`

	IPAddress string `json:"-"`
}

type SubmitContactOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type SubmitBookingInput struct {
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	City          string            `json:"city"`
	Department    string            `json:"department"`
	Details       map[string]string `json:"details"`
	ContactMethod string            `json:"contactMethod"`
	TimeSlot      string            `json:"timeSlot"`
	Notes         string            `json:"notes"`
	ReferredFrom  string            `json:"referredFrom"`

	IPAddress string `json:"-"`
}

type SubmitBookingOutput struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

type AppendNoteInput struct {
	Text string `json:"text"`
}

type SetReminderInput struct {
	ScheduledAt string `json:"scheduledAt"`
	Note        string `json:"note"`
}

type SaveBlogPostInput struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Author     string   `json:"author"`
	Status     string   `json:"status"`
}

// Pagination is the envelope block returned next to every admin listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ContactUpdate and BookingUpdate carry only the columns the PATCH
// allow-lists permit. Stamp flags are set by the usecase when a status
// transition crosses into its one-way state for the first time.
type ContactUpdate struct {
	Status         *string
	StampContacted bool
}

type BookingUpdate struct {
	Status         *string
	StampConfirmed bool
	ScheduledAt    *time.Time
	SetScheduledAt bool
}

type StatusCount struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}
