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

func TestClientFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		clientRepo := repository.NewClientRepository(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		clientFlow := businessflow.NewClientFlow(clientRepo, userRepo, auditRepo, testDB.DB)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent", "test-request")
		ctx := testingutil.CreateTestContext()

		owner, err := testingutil.CreateTestUser(testDB.DB, "owner@example.com")
		require.NoError(t, err)
		stranger, err := testingutil.CreateTestUser(testDB.DB, "stranger@example.com")
		require.NoError(t, err)
		staff, err := testingutil.CreateTestStaffUser(testDB.DB, "staff@example.com")
		require.NoError(t, err)

		t.Run("SuccessfulCreate", func(t *testing.T) {
			req := &dto.CreateClientRequest{
				UserID:    owner.ID,
				FirstName: "Ivan",
				LastName:  utils.ToPtr("Petrov"),
				Email:     "ivan.petrov@example.com",
			}

			result, err := clientFlow.CreateClient(ctx, req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "ivan.petrov@example.com", result.Client.Email)
			assert.NotEmpty(t, result.Client.UUID)

			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, owner.ID, stored.UserID)
		})

		t.Run("DuplicateEmailRejected", func(t *testing.T) {
			req := &dto.CreateClientRequest{
				UserID:    stranger.ID,
				FirstName: "Another",
				Email:     "ivan.petrov@example.com",
			}

			result, err := clientFlow.CreateClient(ctx, req, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsClientEmailAlreadyExists(err))

			// Store unchanged
			total, err := clientRepo.Count(ctx, models.ClientFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)

			// Failure leaves an audit trail
			action := models.AuditActionClientCreationFailed
			failures, err := auditRepo.ByFilter(ctx, models.AuditLogFilter{Action: &action}, "created_at DESC", 10, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, failures)
		})

		t.Run("OwnerCanRetrieve", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.GetClient(ctx, &dto.GetClientRequest{
				UUID:   stored.UUID.String(),
				UserID: owner.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, stored.Email, result.Email)
		})

		t.Run("StaffCanRetrieveForeignRecord", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.GetClient(ctx, &dto.GetClientRequest{
				UUID:   stored.UUID.String(),
				UserID: staff.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, stored.Email, result.Email)
		})

		t.Run("DeniedRetrievalLooksLikeMissingRecord", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.GetClient(ctx, &dto.GetClientRequest{
				UUID:   stored.UUID.String(),
				UserID: stranger.ID,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsClientNotFound(err))
		})

		t.Run("StaffCannotUpdateForeignRecord", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.UpdateClient(ctx, &dto.UpdateClientRequest{
				UUID:      stored.UUID.String(),
				UserID:    staff.ID,
				FirstName: utils.ToPtr("Hijacked"),
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsClientAccessDenied(err))
		})

		t.Run("OwnerCanUpdate", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.UpdateClient(ctx, &dto.UpdateClientRequest{
				UUID:    stored.UUID.String(),
				UserID:  owner.ID,
				Comment: utils.ToPtr("VIP"),
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result.Client.Comment)
			assert.Equal(t, "VIP", *result.Client.Comment)
		})

		t.Run("ListIsScopedToOwner", func(t *testing.T) {
			_, err := testingutil.CreateTestClient(testDB.DB, stranger, "foreign.client@example.com")
			require.NoError(t, err)

			result, err := clientFlow.ListClients(ctx, &dto.ListClientsRequest{UserID: owner.ID}, metadata)
			require.NoError(t, err)
			require.Len(t, result.Clients, 1)
			assert.Equal(t, "ivan.petrov@example.com", result.Clients[0].Email)
		})

		t.Run("StaffSeesAllInList", func(t *testing.T) {
			result, err := clientFlow.ListClients(ctx, &dto.ListClientsRequest{UserID: staff.ID}, metadata)
			require.NoError(t, err)
			assert.Len(t, result.Clients, 2)
		})

		t.Run("GroupMembershipWidensList", func(t *testing.T) {
			member, err := testingutil.CreateTestUser(testDB.DB, "member@example.com")
			require.NoError(t, err)
			group, err := testingutil.CreateTestGroup(testDB.DB, "support")
			require.NoError(t, err)
			require.NoError(t, testingutil.AddUserToGroup(testDB.DB, group, member))

			result, err := clientFlow.ListClients(ctx, &dto.ListClientsRequest{UserID: member.ID}, metadata)
			require.NoError(t, err)
			assert.Len(t, result.Clients, 2)
		})

		t.Run("ExportProducesWorkbook", func(t *testing.T) {
			data, err := clientFlow.ExportClients(ctx, &dto.ExportClientsRequest{UserID: owner.ID}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			// XLSX files are zip archives
			assert.Equal(t, []byte{'P', 'K'}, data[:2])
		})

		t.Run("StaffCannotDeleteForeignRecord", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			result, err := clientFlow.DeleteClient(ctx, &dto.DeleteClientRequest{
				UUID:   stored.UUID.String(),
				UserID: staff.ID,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsClientAccessDenied(err))
		})

		t.Run("OwnerCanDelete", func(t *testing.T) {
			stored, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)

			_, err = clientFlow.DeleteClient(ctx, &dto.DeleteClientRequest{
				UUID:   stored.UUID.String(),
				UserID: owner.ID,
			}, metadata)
			require.NoError(t, err)

			gone, err := clientRepo.ByEmail(ctx, "ivan.petrov@example.com")
			require.NoError(t, err)
			assert.Nil(t, gone)
		})

		return nil
	})
	require.NoError(t, err)
}
