package businessflow

import (
	"context"
	"math/rand/v2"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"github.com/dpetrovsky/mailhub/utils"
)

// HomeFlow aggregates public landing page statistics
type HomeFlow interface {
	GetHome(ctx context.Context) (*dto.HomeResponse, error)
}

// HomeFlowImpl implements the landing page aggregation
type HomeFlowImpl struct {
	mailingRepo repository.MailingRepository
	clientRepo  repository.ClientRepository
	blogRepo    repository.BlogPostRepository
}

// NewHomeFlow creates a new home flow instance
func NewHomeFlow(
	mailingRepo repository.MailingRepository,
	clientRepo repository.ClientRepository,
	blogRepo repository.BlogPostRepository,
) HomeFlow {
	return &HomeFlowImpl{
		mailingRepo: mailingRepo,
		clientRepo:  clientRepo,
		blogRepo:    blogRepo,
	}
}

func (f *HomeFlowImpl) GetHome(ctx context.Context) (*dto.HomeResponse, error) {
	mailingCount, err := f.mailingRepo.Count(ctx, models.MailingFilter{})
	if err != nil {
		return nil, NewBusinessError("HOME_AGGREGATION_FAILED", "Failed to count mailings", err)
	}

	clientCount, err := f.clientRepo.Count(ctx, models.ClientFilter{})
	if err != nil {
		return nil, NewBusinessError("HOME_AGGREGATION_FAILED", "Failed to count clients", err)
	}

	activeCount, err := f.mailingRepo.CountByStatus(ctx, models.MailingStatusStart)
	if err != nil {
		return nil, NewBusinessError("HOME_AGGREGATION_FAILED", "Failed to count active mailings", err)
	}

	posts, err := f.blogRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("HOME_AGGREGATION_FAILED", "Failed to list blog posts", err)
	}

	return &dto.HomeResponse{
		Count:             mailingCount,
		Client:            clientCount,
		ActiveNewsletters: activeCount,
		RandomBlogs:       sampleBlogPosts(posts, utils.HomeRandomBlogLimit),
	}, nil
}

// sampleBlogPosts picks up to limit posts uniformly at random. With limit
// or fewer posts, all of them come back (in random order).
func sampleBlogPosts(posts []*models.BlogPost, limit int) []dto.BlogPostResponse {
	shuffled := make([]*models.BlogPost, len(posts))
	copy(shuffled, posts)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}

	sample := make([]dto.BlogPostResponse, 0, len(shuffled))
	for _, p := range shuffled {
		sample = append(sample, dto.BlogPostResponse{
			UUID:      p.UUID.String(),
			Title:     p.Title,
			ViewCount: p.ViewCount,
			CreatedAt: p.CreatedAt,
		})
	}

	return sample
}
