package businessflow

import (
	"context"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/repository"
)

// BlogFlow handles public blog reads
type BlogFlow interface {
	GetBlogPost(ctx context.Context, req *dto.GetBlogPostRequest) (*dto.BlogPostResponse, error)
}

// BlogFlowImpl implements the public blog flow
type BlogFlowImpl struct {
	blogRepo repository.BlogPostRepository
}

// NewBlogFlow creates a new blog flow instance
func NewBlogFlow(blogRepo repository.BlogPostRepository) BlogFlow {
	return &BlogFlowImpl{blogRepo: blogRepo}
}

// GetBlogPost returns a single post and counts the view. The counter is a
// single atomic UPDATE, so concurrent reads each land exactly one increment.
func (f *BlogFlowImpl) GetBlogPost(ctx context.Context, req *dto.GetBlogPostRequest) (*dto.BlogPostResponse, error) {
	post, err := f.blogRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("BLOG_LOOKUP_FAILED", "Failed to fetch blog post", err)
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	if err := f.blogRepo.IncrementViews(ctx, post.ID); err != nil {
		return nil, NewBusinessError("BLOG_VIEW_COUNT_FAILED", "Failed to count view", err)
	}
	post.ViewCount++

	return &dto.BlogPostResponse{
		UUID:      post.UUID.String(),
		Title:     post.Title,
		Body:      post.Body,
		ViewCount: post.ViewCount,
		CreatedAt: post.CreatedAt,
	}, nil
}
