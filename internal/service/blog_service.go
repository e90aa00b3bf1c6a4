package service

import (
	"context"
	"fmt"

	"storefront/internal/backend"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const defaultBlogPageSize = 9

// BlogService reads published posts from the blog service.
type BlogService struct {
	api         BlogBackend
	previewSize int
	logger      *zap.Logger
}

func NewBlogService(api BlogBackend, previewSize int) *BlogService {
	if previewSize <= 0 {
		previewSize = 3
	}
	return &BlogService{api: api, previewSize: previewSize, logger: util.GetLogger()}
}

// Preview returns the latest posts for the home page. Failures and empty
// results both yield nil: the section is simply not shown.
func (s *BlogService) Preview(ctx context.Context) []models.BlogPost {
	ctx, span := util.StartSpan(ctx, "BlogService.Preview")
	defer span.End()

	page, err := s.api.ListPosts(ctx, backend.BlogQuery{Page: 0, Size: s.previewSize})
	if err != nil {
		util.RecordError(span, err)
		s.logger.Warn("Blog preview unavailable", zap.Error(err))
		return nil
	}
	if page == nil || len(page.Content) == 0 {
		return nil
	}

	posts := page.Content
	if len(posts) > s.previewSize {
		posts = posts[:s.previewSize]
	}
	return posts
}

// Page returns one page of posts.
func (s *BlogService) Page(ctx context.Context, q backend.BlogQuery) (*models.BlogPage, error) {
	ctx, span := util.StartSpan(ctx, "BlogService.Page", attribute.Int("page", q.Page))
	defer span.End()

	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = defaultBlogPageSize
	}

	page, err := s.api.ListPosts(ctx, q)
	if err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	if page == nil {
		page = &models.BlogPage{}
	}
	if page.Content == nil {
		page.Content = []models.BlogPost{}
	}
	return page, nil
}

func (s *BlogService) Post(ctx context.Context, slug string) (*models.BlogPost, error) {
	ctx, span := util.StartSpan(ctx, "BlogService.Post", attribute.String("slug", slug))
	defer span.End()

	post, err := s.api.GetBySlug(ctx, slug)
	if err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to get blog post %q: %w", slug, err)
	}
	return post, nil
}

func (s *BlogService) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	cats, err := s.api.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog categories: %w", err)
	}
	return cats, nil
}

func (s *BlogService) Tags(ctx context.Context) ([]models.BlogTag, error) {
	tags, err := s.api.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog tags: %w", err)
	}
	return tags, nil
}
