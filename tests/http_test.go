package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/app/handlers"
	"github.com/dpetrovsky/mailhub/app/middleware"
	"github.com/dpetrovsky/mailhub/app/router"
	"github.com/dpetrovsky/mailhub/app/services"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/dpetrovsky/mailhub/config"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	testingutil "github.com/dpetrovsky/mailhub/testing"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full HTTP stack against the test database so requests
// pass through the real middleware chain, auth included.
func newTestApp(t *testing.T, testDB *testingutil.TestDB) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Env: "test",
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		JWT: config.JWTConfig{
			SecretKey:       "http-test-secret-key-0123456789",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
			Issuer:          "mailhub",
			Audience:        "mailhub-api",
		},
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		nil,
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB.DB)
	clientRepo := repository.NewClientRepository(testDB.DB)
	messageRepo := repository.NewMessageRepository(testDB.DB)
	mailingRepo := repository.NewMailingRepository(testDB.DB)
	deliveryRepo := repository.NewDeliveryLogRepository(testDB.DB)
	blogRepo := repository.NewBlogPostRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)

	authFlow := businessflow.NewAuthFlow(userRepo, auditRepo, tokenService, testDB.DB)
	clientFlow := businessflow.NewClientFlow(clientRepo, userRepo, auditRepo, testDB.DB)
	messageFlow := businessflow.NewMessageFlow(messageRepo, clientRepo, userRepo, auditRepo, testDB.DB)
	mailingFlow := businessflow.NewMailingFlow(mailingRepo, messageRepo, clientRepo, deliveryRepo, userRepo, auditRepo, testDB.DB)
	homeFlow := businessflow.NewHomeFlow(mailingRepo, clientRepo, blogRepo)
	contactFlow := businessflow.NewContactFlow()
	blogFlow := businessflow.NewBlogFlow(blogRepo)

	appRouter := router.NewFiberRouter(
		cfg,
		handlers.NewAuthHandler(authFlow),
		handlers.NewClientHandler(clientFlow),
		handlers.NewMessageHandler(messageFlow),
		handlers.NewMailingHandler(mailingFlow),
		handlers.NewSiteHandler(homeFlow, contactFlow, blogFlow),
		middleware.NewAuthMiddleware(tokenService),
	)
	appRouter.SetupRoutes()

	return appRouter.GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	res, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	return res
}

func decodeEnvelope(t *testing.T, res *http.Response) dto.APIResponse {
	t.Helper()

	var payload dto.APIResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.NoError(t, res.Body.Close())
	return payload
}

func envelopeErrorCode(t *testing.T, payload dto.APIResponse) string {
	t.Helper()

	detail, ok := payload.Error.(map[string]any)
	require.True(t, ok, "response carries no error detail")
	code, _ := detail["code"].(string)
	return code
}

func countClients(t *testing.T, testDB *testingutil.TestDB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, testDB.DB.Model(&models.Client{}).Count(&count).Error)
	return count
}

func TestClientRoutesRequireAuthentication(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		app := newTestApp(t, testDB)

		createBody := dto.CreateClientRequest{
			FirstName: "Walled",
			Email:     "walled.off@example.com",
		}

		t.Run("NoTokenRejected", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/api/v1/clients", "", createBody)
			assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

			payload := decodeEnvelope(t, res)
			assert.False(t, payload.Success)
			assert.Equal(t, "AUTHENTICATION_REQUIRED", envelopeErrorCode(t, payload))
			assert.Equal(t, int64(0), countClients(t, testDB))
		})

		t.Run("MalformedTokenRejected", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/api/v1/clients", "Bearer not-a-token", createBody)
			assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

			payload := decodeEnvelope(t, res)
			assert.Equal(t, "TOKEN_INVALID", envelopeErrorCode(t, payload))
			assert.Equal(t, int64(0), countClients(t, testDB))
		})

		t.Run("WrongSchemeRejected", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/api/v1/clients", "Basic dXNlcjpwYXNz", createBody)
			assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

			payload := decodeEnvelope(t, res)
			assert.Equal(t, "INVALID_AUTHORIZATION_FORMAT", envelopeErrorCode(t, payload))
			assert.Equal(t, int64(0), countClients(t, testDB))
		})

		t.Run("ValidTokenCreates", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{
				Email:     "router.owner@example.com",
				Password:  testingutil.TestPassword,
				FirstName: "Router",
				LastName:  "Owner",
			})
			require.Equal(t, http.StatusCreated, res.StatusCode)

			signup := decodeEnvelope(t, res)
			data, ok := signup.Data.(map[string]any)
			require.True(t, ok)
			accessToken, _ := data["access_token"].(string)
			require.NotEmpty(t, accessToken)

			res = doJSON(t, app, http.MethodPost, "/api/v1/clients", "Bearer "+accessToken, createBody)
			assert.Equal(t, http.StatusCreated, res.StatusCode)

			payload := decodeEnvelope(t, res)
			assert.True(t, payload.Success)
			assert.Equal(t, int64(1), countClients(t, testDB))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestContactAcceptsAnySubmission(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		app := newTestApp(t, testDB)

		t.Run("EmptyBodyAcknowledged", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/contact", "", map[string]any{})
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.True(t, decodeEnvelope(t, res).Success)
		})

		t.Run("PartialBodyAcknowledged", func(t *testing.T) {
			res := doJSON(t, app, http.MethodPost, "/contact", "", map[string]any{
				"name": "Anonymous",
			})
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.True(t, decodeEnvelope(t, res).Success)
		})

		t.Run("UnparsableBodyAcknowledged", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString("not json at all"))
			req.Header.Set("Content-Type", "application/json")

			res, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.True(t, decodeEnvelope(t, res).Success)
		})

		return nil
	})
	require.NoError(t, err)
}
