package tests

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	testingutil "github.com/dpetrovsky/mailhub/testing"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		mailingRepo := repository.NewMailingRepository(testDB.DB)
		clientRepo := repository.NewClientRepository(testDB.DB)
		blogRepo := repository.NewBlogPostRepository(testDB.DB)

		homeFlow := businessflow.NewHomeFlow(mailingRepo, clientRepo, blogRepo)
		ctx := testingutil.CreateTestContext()

		owner, err := testingutil.CreateTestUser(testDB.DB, "home.owner@example.com")
		require.NoError(t, err)

		t.Run("EmptyDatabase", func(t *testing.T) {
			result, err := homeFlow.GetHome(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(0), result.Count)
			assert.Equal(t, int64(0), result.Client)
			assert.Equal(t, int64(0), result.ActiveNewsletters)
			assert.Empty(t, result.RandomBlogs)
		})

		t.Run("CountsReflectRecords", func(t *testing.T) {
			_, err := testingutil.CreateTestClient(testDB.DB, owner, "home.client@example.com")
			require.NoError(t, err)

			started, err := testingutil.CreateTestMailing(testDB.DB, owner, nil)
			require.NoError(t, err)
			assert.Equal(t, models.MailingStatusStart, started.Status)

			finished, err := testingutil.CreateTestMailing(testDB.DB, owner, nil)
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(finished).Update("status", models.MailingStatusFinish).Error)

			result, err := homeFlow.GetHome(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), result.Count)
			assert.Equal(t, int64(1), result.Client)
			assert.Equal(t, int64(1), result.ActiveNewsletters)
		})

		t.Run("BlogSampleNeverExceedsLimit", func(t *testing.T) {
			for i := 0; i < 5; i++ {
				_, err := testingutil.CreateTestBlogPost(testDB.DB, fmt.Sprintf("Post %d", i))
				require.NoError(t, err)
			}

			result, err := homeFlow.GetHome(ctx)
			require.NoError(t, err)
			assert.Len(t, result.RandomBlogs, utils.HomeRandomBlogLimit)

			// Sampled posts are real posts, without duplicates
			seen := make(map[string]bool)
			for _, p := range result.RandomBlogs {
				assert.False(t, seen[p.UUID])
				seen[p.UUID] = true
			}
		})

		t.Run("FewerPostsThanLimitAllReturned", func(t *testing.T) {
			require.NoError(t, testDB.DB.Exec("TRUNCATE TABLE blog_posts RESTART IDENTITY CASCADE").Error)
			_, err := testingutil.CreateTestBlogPost(testDB.DB, "Lonely post")
			require.NoError(t, err)

			result, err := homeFlow.GetHome(ctx)
			require.NoError(t, err)
			require.Len(t, result.RandomBlogs, 1)
			assert.Equal(t, "Lonely post", result.RandomBlogs[0].Title)
		})

		t.Run("TwoPostsBothReturned", func(t *testing.T) {
			require.NoError(t, testDB.DB.Exec("TRUNCATE TABLE blog_posts RESTART IDENTITY CASCADE").Error)
			first, err := testingutil.CreateTestBlogPost(testDB.DB, "First post")
			require.NoError(t, err)
			second, err := testingutil.CreateTestBlogPost(testDB.DB, "Second post")
			require.NoError(t, err)

			result, err := homeFlow.GetHome(ctx)
			require.NoError(t, err)
			require.Len(t, result.RandomBlogs, 2)
			assert.NotEqual(t, result.RandomBlogs[0].UUID, result.RandomBlogs[1].UUID)
			for _, p := range result.RandomBlogs {
				assert.Contains(t, []string{first.UUID.String(), second.UUID.String()}, p.UUID)
			}
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBlogFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		blogRepo := repository.NewBlogPostRepository(testDB.DB)
		blogFlow := businessflow.NewBlogFlow(blogRepo)
		ctx := testingutil.CreateTestContext()

		post, err := testingutil.CreateTestBlogPost(testDB.DB, "Counted post")
		require.NoError(t, err)

		t.Run("EveryReadCountsOnce", func(t *testing.T) {
			for i := int64(1); i <= 3; i++ {
				result, err := blogFlow.GetBlogPost(ctx, &dto.GetBlogPostRequest{UUID: post.UUID.String()})
				require.NoError(t, err)
				assert.Equal(t, i, result.ViewCount)
				assert.Equal(t, "Counted post", result.Title)
				assert.NotEmpty(t, result.Body)
			}
		})

		t.Run("ConcurrentReadsLoseNoCounts", func(t *testing.T) {
			before, err := blogRepo.ByUUID(ctx, post.UUID.String())
			require.NoError(t, err)

			const readers = 20
			var wg sync.WaitGroup
			errs := make(chan error, readers)
			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := blogFlow.GetBlogPost(ctx, &dto.GetBlogPostRequest{UUID: post.UUID.String()})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			after, err := blogRepo.ByUUID(ctx, post.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, before.ViewCount+readers, after.ViewCount)
		})

		t.Run("UnknownPostNotFound", func(t *testing.T) {
			result, err := blogFlow.GetBlogPost(ctx, &dto.GetBlogPostRequest{
				UUID: "7f2f4c55-8d0e-44af-b1b7-e3e25da3a9c1",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsBlogPostNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestContactFlow(t *testing.T) {
	contactFlow := businessflow.NewContactFlow()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent", "test-request")

	result, err := contactFlow.SubmitContact(testingutil.CreateTestContext(), &dto.ContactRequest{
		Name:    "Visitor",
		Phone:   "+79990001122",
		Message: "Hello there",
	}, metadata)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Message)
}
