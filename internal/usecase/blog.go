package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/covercredit/cover-credit-backend/internal/entity"
)

type BlogUseCase struct {
	Repo BlogRepositoryInterface
}

func NewBlogUseCase(repo BlogRepositoryInterface) *BlogUseCase {
	return &BlogUseCase{Repo: repo}
}

func (uc *BlogUseCase) List(ctx context.Context, filter BlogFilter) ([]*entity.BlogPost, Pagination, error) {
	items, total, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, newDatabaseError(err)
	}
	return items, NewPagination(filter.Page, filter.Limit, total), nil
}

// ReadBySlug serves the public article page: published posts only, and
// each read bumps the view counter.
func (uc *BlogUseCase) ReadBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	post, err := uc.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translateRepoError(err, "post")
	}
	if post.Status != entity.BlogStatusPublished {
		return nil, newNotFoundError("post")
	}
	if err := uc.Repo.IncrementViews(ctx, post.ID); err != nil {
		log.Printf("⚠️ view count bump failed for %s: %v", post.ID, err)
	}
	post.Views++
	return post, nil
}

func (uc *BlogUseCase) Create(ctx context.Context, input SaveBlogPostInput) (*entity.BlogPost, error) {
	if errs := ValidateBlogInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	post := entity.NewBlogPost(input.Title, input.Excerpt, input.Content, input.CoverImage, input.Category, input.Author, input.Tags)
	slug, err := uc.uniqueSlug(ctx, post.Slug, post.ID)
	if err != nil {
		return nil, newDatabaseError(err)
	}
	post.Slug = slug

	if input.Status == entity.BlogStatusPublished {
		now := time.Now()
		post.Status = entity.BlogStatusPublished
		post.PublishedAt = &now
	}

	if err := uc.Repo.Create(ctx, post); err != nil {
		return nil, newDatabaseError(err)
	}
	return post, nil
}

func (uc *BlogUseCase) Update(ctx context.Context, id string, input SaveBlogPostInput) (*entity.BlogPost, error) {
	if errs := ValidateBlogInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	if input.Status != "" && !entity.IsValidBlogStatus(input.Status) {
		return nil, newFieldError("status", "must be draft or published")
	}

	post, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "post")
	}

	if input.Title != post.Title {
		slug, err := uc.uniqueSlug(ctx, entity.Slugify(input.Title), post.ID)
		if err != nil {
			return nil, newDatabaseError(err)
		}
		post.Slug = slug
	}

	post.Title = input.Title
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.CoverImage = input.CoverImage
	post.Category = input.Category
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.Author != "" {
		post.Author = input.Author
	}
	if input.Status != "" {
		// publishedAt is a one-way stamp: set on the first transition to
		// published, untouched on re-publish.
		if input.Status == entity.BlogStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = input.Status
	}
	post.UpdatedAt = time.Now()

	if err := uc.Repo.Save(ctx, post); err != nil {
		return nil, newDatabaseError(err)
	}
	return post, nil
}

func (uc *BlogUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return newDatabaseError(err)
	}
	return nil
}

func (uc *BlogUseCase) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	slug := base
	for i := 1; ; i++ {
		exists, err := uc.Repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
