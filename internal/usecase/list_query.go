package usecase

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/covercredit/cover-credit-backend/internal/entity"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ListFilter is the typed form of the admin listing query string.
// Status and Department are exact-match filters; Search is applied as a
// case-insensitive substring match across the variant's searchable fields.
type ListFilter struct {
	Status     string
	Department string
	Search     string
	Page       int
	Limit      int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ParseContactListQuery maps raw query params to a contact filter.
// Unknown status values mean "all"; page/limit fall back to 1/20 and
// limit is clamped to 1..100.
func ParseContactListQuery(q url.Values) ListFilter {
	f := parseCommon(q)
	if s := q.Get("status"); entity.IsValidContactStatus(s) {
		f.Status = s
	}
	return f
}

// ParseBookingListQuery additionally understands the department filter.
func ParseBookingListQuery(q url.Values) ListFilter {
	f := parseCommon(q)
	if s := q.Get("status"); entity.IsValidBookingStatus(s) {
		f.Status = s
	}
	if d := q.Get("department"); entity.IsValidDepartment(d) {
		f.Department = d
	}
	return f
}

func parseCommon(q url.Values) ListFilter {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return ListFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Page:   page,
		Limit:  limit,
	}
}

// BlogFilter drives public and admin blog listings. Public listings pin
// Status to "published".
type BlogFilter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

func (f BlogFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func ParseBlogListQuery(q url.Values, publicOnly bool) BlogFilter {
	common := parseCommon(q)
	f := BlogFilter{Page: common.Page, Limit: common.Limit}
	if c := q.Get("category"); entity.IsValidBlogCategory(c) {
		f.Category = c
	}
	if publicOnly {
		f.Status = entity.BlogStatusPublished
	} else if s := q.Get("status"); entity.IsValidBlogStatus(s) {
		f.Status = s
	}
	return f
}
