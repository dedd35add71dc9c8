package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

var BlogCategories = []string{"health", "life", "vehicle", "loans", "tips", "news", "guides"}

type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int64      `json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewBlogPost(title, excerpt, content, coverImage, category, author string, tags []string) *BlogPost {
	if author == "" {
		author = "Cover Credit Team"
	}
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return &BlogPost{
		ID:         uuid.New().String(),
		Title:      title,
		Slug:       Slugify(title),
		Excerpt:    excerpt,
		Content:    content,
		CoverImage: coverImage,
		Category:   category,
		Tags:       tags,
		Author:     author,
		Status:     BlogStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaces = regexp.MustCompile(`\s+`)
var slugDashes = regexp.MustCompile(`-+`)

// Slugify normalises a title into a URL slug, capped at 100 chars.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

func IsValidBlogCategory(s string) bool {
	for _, v := range BlogCategories {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidBlogStatus(s string) bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}
