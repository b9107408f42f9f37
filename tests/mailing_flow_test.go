package tests

import (
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

func TestMailingFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		mailingRepo := repository.NewMailingRepository(testDB.DB)
		messageRepo := repository.NewMessageRepository(testDB.DB)
		clientRepo := repository.NewClientRepository(testDB.DB)
		deliveryRepo := repository.NewDeliveryLogRepository(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		mailingFlow := businessflow.NewMailingFlow(
			mailingRepo, messageRepo, clientRepo, deliveryRepo, userRepo, auditRepo, testDB.DB)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent", "test-request")
		ctx := testingutil.CreateTestContext()

		owner, err := testingutil.CreateTestUser(testDB.DB, "campaign.owner@example.com")
		require.NoError(t, err)
		stranger, err := testingutil.CreateTestUser(testDB.DB, "campaign.stranger@example.com")
		require.NoError(t, err)
		staff, err := testingutil.CreateTestStaffUser(testDB.DB, "campaign.staff@example.com")
		require.NoError(t, err)

		recipientA, err := testingutil.CreateTestClient(testDB.DB, owner, "recipient.a@example.com")
		require.NoError(t, err)
		recipientB, err := testingutil.CreateTestClient(testDB.DB, owner, "recipient.b@example.com")
		require.NoError(t, err)
		template, err := testingutil.CreateTestMessage(testDB.DB, owner, nil)
		require.NoError(t, err)

		t.Run("CreateAppliesDefaults", func(t *testing.T) {
			result, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{
				UserID: owner.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.MailingStatusStart.String(), result.Mailing.Status)
			assert.Equal(t, models.MailingPeriodicityOnceADay.String(), result.Mailing.Periodicity)
		})

		t.Run("CreateWithMessageAndRecipients", func(t *testing.T) {
			messageUUID := template.UUID.String()
			result, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{
				UserID:      owner.ID,
				MessageUUID: &messageUUID,
				RecipientUUIDs: []string{
					recipientA.UUID.String(),
					recipientB.UUID.String(),
				},
				Status: utils.ToPtr(models.MailingStatusCreated.String()),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.MailingStatusCreated.String(), result.Mailing.Status)
			require.NotNil(t, result.Mailing.MessageUUID)
			assert.Equal(t, messageUUID, *result.Mailing.MessageUUID)

			stored, err := mailingRepo.ByUUID(ctx, result.Mailing.UUID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Len(t, stored.Recipients, 2)
		})

		t.Run("UnknownRecipientRejected", func(t *testing.T) {
			result, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{
				UserID:         owner.ID,
				RecipientUUIDs: []string{"2c9a63f7-0c25-4d9f-bf60-1b0a9f6f2a11"},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsRecipientNotFound(err))
		})

		t.Run("AnyStatusMayBeSetAtAnyTime", func(t *testing.T) {
			created, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{
				UserID: owner.ID,
				Status: utils.ToPtr(models.MailingStatusFinish.String()),
			}, metadata)
			require.NoError(t, err)

			// Backwards transition is allowed
			updated, err := mailingFlow.UpdateMailing(ctx, &dto.UpdateMailingRequest{
				UUID:   created.Mailing.UUID,
				UserID: owner.ID,
				Status: utils.ToPtr(models.MailingStatusCreated.String()),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.MailingStatusCreated.String(), updated.Mailing.Status)
		})

		t.Run("StaffCanRetrieveButNotModify", func(t *testing.T) {
			created, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{UserID: owner.ID}, metadata)
			require.NoError(t, err)

			_, err = mailingFlow.GetMailing(ctx, &dto.GetMailingRequest{
				UUID:   created.Mailing.UUID,
				UserID: staff.ID,
			}, metadata)
			require.NoError(t, err)

			_, err = mailingFlow.UpdateMailing(ctx, &dto.UpdateMailingRequest{
				UUID:   created.Mailing.UUID,
				UserID: staff.ID,
				Status: utils.ToPtr(models.MailingStatusFinish.String()),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsMailingAccessDenied(err))
		})

		t.Run("DeniedRetrievalLooksLikeMissingRecord", func(t *testing.T) {
			created, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{UserID: owner.ID}, metadata)
			require.NoError(t, err)

			_, err = mailingFlow.GetMailing(ctx, &dto.GetMailingRequest{
				UUID:   created.Mailing.UUID,
				UserID: stranger.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsMailingNotFound(err))

			_, err = mailingFlow.ListDeliveryLogs(ctx, &dto.ListDeliveryLogsRequest{
				MailingUUID: created.Mailing.UUID,
				UserID:      stranger.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsMailingNotFound(err))
		})

		t.Run("DeliveryLogsAreListedForOwner", func(t *testing.T) {
			created, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{UserID: owner.ID}, metadata)
			require.NoError(t, err)

			stored, err := mailingRepo.ByUUID(ctx, created.Mailing.UUID)
			require.NoError(t, err)

			_, err = testingutil.CreateTestDeliveryLog(testDB.DB, owner, stored, models.DeliveryStatusFinish)
			require.NoError(t, err)
			_, err = testingutil.CreateTestDeliveryLog(testDB.DB, owner, stored, models.DeliveryStatusStart)
			require.NoError(t, err)

			result, err := mailingFlow.ListDeliveryLogs(ctx, &dto.ListDeliveryLogsRequest{
				MailingUUID: created.Mailing.UUID,
				UserID:      owner.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Len(t, result.Logs, 2)
			assert.Equal(t, int64(2), result.Pagination.TotalItems)
		})

		t.Run("DeleteCascadesLogsAndRecipientLinks", func(t *testing.T) {
			created, err := mailingFlow.CreateMailing(ctx, &dto.CreateMailingRequest{
				UserID:         owner.ID,
				RecipientUUIDs: []string{recipientA.UUID.String()},
			}, metadata)
			require.NoError(t, err)

			stored, err := mailingRepo.ByUUID(ctx, created.Mailing.UUID)
			require.NoError(t, err)

			_, err = testingutil.CreateTestDeliveryLog(testDB.DB, owner, stored, models.DeliveryStatusFinish)
			require.NoError(t, err)

			_, err = mailingFlow.DeleteMailing(ctx, &dto.DeleteMailingRequest{
				UUID:   created.Mailing.UUID,
				UserID: owner.ID,
			}, metadata)
			require.NoError(t, err)

			gone, err := mailingRepo.ByUUID(ctx, created.Mailing.UUID)
			require.NoError(t, err)
			assert.Nil(t, gone)

			logCount, err := deliveryRepo.Count(ctx, models.DeliveryLogFilter{MailingID: &stored.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(0), logCount)

			var linkCount int64
			require.NoError(t, testDB.DB.Table("mailing_recipients").
				Where("mailing_id = ?", stored.ID).Count(&linkCount).Error)
			assert.Equal(t, int64(0), linkCount)

			// The recipient itself survives
			still, err := clientRepo.ByUUID(ctx, recipientA.UUID.String())
			require.NoError(t, err)
			assert.NotNil(t, still)
		})

		return nil
	})
	require.NoError(t, err)
}
