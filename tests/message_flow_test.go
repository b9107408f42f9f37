package tests

import (
	"testing"

	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/dpetrovsky/mailhub/repository"
	testingutil "github.com/dpetrovsky/mailhub/testing"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		messageRepo := repository.NewMessageRepository(testDB.DB)
		clientRepo := repository.NewClientRepository(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		messageFlow := businessflow.NewMessageFlow(messageRepo, clientRepo, userRepo, auditRepo, testDB.DB)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent", "test-request")
		ctx := testingutil.CreateTestContext()

		owner, err := testingutil.CreateTestUser(testDB.DB, "template.owner@example.com")
		require.NoError(t, err)
		stranger, err := testingutil.CreateTestUser(testDB.DB, "template.stranger@example.com")
		require.NoError(t, err)
		staff, err := testingutil.CreateTestStaffUser(testDB.DB, "template.staff@example.com")
		require.NoError(t, err)

		client, err := testingutil.CreateTestClient(testDB.DB, owner, "template.client@example.com")
		require.NoError(t, err)

		var templateUUID string

		t.Run("CreateWithClientLink", func(t *testing.T) {
			clientUUID := client.UUID.String()
			result, err := messageFlow.CreateMessage(ctx, &dto.CreateMessageRequest{
				UserID:     owner.ID,
				Subject:    "Monthly digest",
				Body:       "Hello!",
				ClientUUID: &clientUUID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Monthly digest", result.Template.Subject)
			require.NotNil(t, result.Template.ClientUUID)
			assert.Equal(t, clientUUID, *result.Template.ClientUUID)
			templateUUID = result.Template.UUID
		})

		t.Run("UnknownClientLinkRejected", func(t *testing.T) {
			result, err := messageFlow.CreateMessage(ctx, &dto.CreateMessageRequest{
				UserID:     owner.ID,
				Subject:    "Broken",
				Body:       "Hello!",
				ClientUUID: utils.ToPtr("05c2be77-4f0f-4b0e-9f30-3b8277f9f001"),
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
		})

		t.Run("StaffReadsButCannotWrite", func(t *testing.T) {
			_, err := messageFlow.GetMessage(ctx, &dto.GetMessageRequest{
				UUID:   templateUUID,
				UserID: staff.ID,
			}, metadata)
			require.NoError(t, err)

			_, err = messageFlow.UpdateMessage(ctx, &dto.UpdateMessageRequest{
				UUID:    templateUUID,
				UserID:  staff.ID,
				Subject: utils.ToPtr("Hijacked"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsMessageAccessDenied(err))
		})

		t.Run("StrangerSeesNothing", func(t *testing.T) {
			result, err := messageFlow.GetMessage(ctx, &dto.GetMessageRequest{
				UUID:   templateUUID,
				UserID: stranger.ID,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsMessageNotFound(err))
		})

		t.Run("OwnerUpdatesAndDeletes", func(t *testing.T) {
			updated, err := messageFlow.UpdateMessage(ctx, &dto.UpdateMessageRequest{
				UUID:   templateUUID,
				UserID: owner.ID,
				Body:   utils.ToPtr("Updated body"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Updated body", updated.Template.Body)

			_, err = messageFlow.DeleteMessage(ctx, &dto.DeleteMessageRequest{
				UUID:   templateUUID,
				UserID: owner.ID,
			}, metadata)
			require.NoError(t, err)

			gone, err := messageRepo.ByUUID(ctx, templateUUID)
			require.NoError(t, err)
			assert.Nil(t, gone)
		})

		return nil
	})
	require.NoError(t, err)
}
