package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	testingutil "github.com/dpetrovsky/mailhub/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositories(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		clientRepo := repository.NewClientRepository(testDB.DB)
		blogRepo := repository.NewBlogPostRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		owner, err := testingutil.CreateTestUser(testDB.DB, "repo.owner@example.com")
		require.NoError(t, err)

		t.Run("MissingRecordsComeBackNil", func(t *testing.T) {
			client, err := clientRepo.ByID(ctx, 424242)
			require.NoError(t, err)
			assert.Nil(t, client)

			client, err = clientRepo.ByUUID(ctx, "e3b2a0d1-9f41-41ab-8b16-55cbb1a6a001")
			require.NoError(t, err)
			assert.Nil(t, client)

			client, err = clientRepo.ByEmail(ctx, "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, client)
		})

		t.Run("SaveAssignsUUIDAndTimestamps", func(t *testing.T) {
			client := &models.Client{
				UserID:    owner.ID,
				FirstName: "Repo",
				Email:     "repo.client@example.com",
			}
			require.NoError(t, clientRepo.Save(ctx, client))
			assert.NotZero(t, client.ID)
			assert.NotEmpty(t, client.UUID)
			assert.False(t, client.CreatedAt.IsZero())
		})

		t.Run("TransactionRollsBackOnError", func(t *testing.T) {
			before, err := clientRepo.Count(ctx, models.ClientFilter{})
			require.NoError(t, err)

			sentinel := errors.New("boom")
			err = repository.WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
				if err := clientRepo.Save(txCtx, &models.Client{
					UserID:    owner.ID,
					FirstName: "Doomed",
					Email:     "doomed.client@example.com",
				}); err != nil {
					return err
				}
				return sentinel
			})
			require.ErrorIs(t, err, sentinel)

			after, err := clientRepo.Count(ctx, models.ClientFilter{})
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})

		t.Run("DeletingUserCascadesOwnedRecords", func(t *testing.T) {
			doomed, err := testingutil.CreateTestUser(testDB.DB, "doomed.owner@example.com")
			require.NoError(t, err)
			client, err := testingutil.CreateTestClient(testDB.DB, doomed, "cascade.client@example.com")
			require.NoError(t, err)
			message, err := testingutil.CreateTestMessage(testDB.DB, doomed, client)
			require.NoError(t, err)
			_, err = testingutil.CreateTestMailing(testDB.DB, doomed, message, client)
			require.NoError(t, err)

			require.NoError(t, testDB.DB.Exec("DELETE FROM users WHERE id = ?", doomed.ID).Error)

			gone, err := clientRepo.ByEmail(ctx, "cascade.client@example.com")
			require.NoError(t, err)
			assert.Nil(t, gone)

			var messageCount int64
			require.NoError(t, testDB.DB.Table("messages").
				Where("user_id = ?", doomed.ID).Count(&messageCount).Error)
			assert.Equal(t, int64(0), messageCount)

			var mailingCount int64
			require.NoError(t, testDB.DB.Table("mailings").
				Where("user_id = ?", doomed.ID).Count(&mailingCount).Error)
			assert.Equal(t, int64(0), mailingCount)
		})

		t.Run("IncrementViewsIsCumulative", func(t *testing.T) {
			post, err := testingutil.CreateTestBlogPost(testDB.DB, "Repo post")
			require.NoError(t, err)

			require.NoError(t, blogRepo.IncrementViews(ctx, post.ID))
			require.NoError(t, blogRepo.IncrementViews(ctx, post.ID))

			reloaded, err := blogRepo.ByID(ctx, post.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), reloaded.ViewCount)
		})

		t.Run("UniqueClientEmailEnforcedByDatabase", func(t *testing.T) {
			err := clientRepo.Save(ctx, &models.Client{
				UserID:    owner.ID,
				FirstName: "Copy",
				Email:     "repo.client@example.com",
			})
			require.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}
