package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/annrbk/Auth-app-backend/internal/account/domain"
	"github.com/annrbk/Auth-app-backend/internal/account/dto"
	"github.com/annrbk/Auth-app-backend/internal/account/handler"
	"github.com/annrbk/Auth-app-backend/internal/account/service"
	autherror "github.com/annrbk/Auth-app-backend/internal/errors"
	"github.com/annrbk/Auth-app-backend/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*handler.AccountHandler, *mocks.MockAccountRepository, *mocks.MockTokenIssuer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	mockTokens := mocks.NewMockTokenIssuer(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accountService := service.NewAccountService(mockRepo, mockTokens, service.NewSHA3Hasher(), logger)

	return handler.NewAccountHandler(accountService), mockRepo, mockTokens
}

func jsonReq(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestRegisterHandler(t *testing.T) {
	h, mockRepo, _ := newTestHandler(t)

	app := fiber.New()
	app.Post("/register", h.Register)

	t.Run("success", func(t *testing.T) {
		input := dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "password123"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("account-123", nil)

		req := httptest.NewRequest("POST", "/register", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "User registered successfully", body["message"])
	})

	t.Run("email already in use", func(t *testing.T) {
		input := dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "password123"}
		existing := &domain.Account{ID: "existing-id", Email: input.Email}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(existing, nil)

		req := httptest.NewRequest("POST", "/register", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad request - invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/register", bytes.NewReader([]byte("{invalid-json")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad request - validation failure", func(t *testing.T) {
		input := dto.RegisterInput{Username: "alice", Email: "not-an-email", Password: "short"}

		req := httptest.NewRequest("POST", "/register", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("store failure", func(t *testing.T) {
		input := dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "password123"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("", errors.New("insert failed"))

		req := httptest.NewRequest("POST", "/register", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestLoginHandler(t *testing.T) {
	h, mockRepo, mockTokens := newTestHandler(t)

	app := fiber.New()
	app.Post("/login", h.Login)

	t.Run("success", func(t *testing.T) {
		password := "password123"
		digest := service.NewSHA3Hasher().Hash(password)
		account := &domain.Account{ID: "account-123", Email: "a@x.com", PasswordDigest: digest}
		input := dto.LoginInput{Email: account.Email, Password: password}

		mockRepo.EXPECT().GetByCredentials(gomock.Any(), input.Email, digest).Return(account, nil)
		mockRepo.EXPECT().UpdateLastLogin(gomock.Any(), account.ID, gomock.Any()).Return(nil)
		mockTokens.EXPECT().Issue(account.ID).Return("signed-token", nil)

		req := httptest.NewRequest("POST", "/login", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "signed-token", body["token"])
		assert.Equal(t, "account-123", body["userId"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("unauthorized - invalid credentials", func(t *testing.T) {
		input := dto.LoginInput{Email: "a@x.com", Password: "wrong-password"}

		mockRepo.EXPECT().GetByCredentials(gomock.Any(), input.Email, gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest("POST", "/login", jsonReq(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, autherror.ErrInvalidCredentials.Error(), body["error"])
	})

	t.Run("bad request - invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte("{invalid-json")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestListHandler(t *testing.T) {
	h, mockRepo, _ := newTestHandler(t)

	app := fiber.New()
	app.Get("/users", h.List)

	t.Run("success excludes credential digest", func(t *testing.T) {
		now := time.Now()
		accounts := []dto.AccountOutput{
			{ID: "account-1", Username: "alice", Email: "a@x.com", RegistrationDate: now},
			{ID: "account-2", Username: "bob", Email: "b@x.com", Blocked: true, RegistrationDate: now},
		}

		mockRepo.EXPECT().GetAll(gomock.Any()).Return(accounts, nil)

		req := httptest.NewRequest("GET", "/users", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "digest")
		assert.NotContains(t, string(raw), "password")

		var listed []map[string]any
		require.NoError(t, json.Unmarshal(raw, &listed))
		require.Len(t, listed, 2)
		assert.Equal(t, "alice", listed[0]["username"])
		assert.Equal(t, true, listed[1]["is_blocked"])
	})

	t.Run("empty store serializes as empty array", func(t *testing.T) {
		mockRepo.EXPECT().GetAll(gomock.Any()).Return([]dto.AccountOutput{}, nil)

		req := httptest.NewRequest("GET", "/users", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("db error"))

		req := httptest.NewRequest("GET", "/users", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestBlockUnblockHandlers(t *testing.T) {
	h, mockRepo, _ := newTestHandler(t)

	app := fiber.New()
	app.Put("/api/users/block/:id", h.Block)
	app.Put("/api/users/unblock/:id", h.Unblock)

	t.Run("block success", func(t *testing.T) {
		mockRepo.EXPECT().SetBlocked(gomock.Any(), "account-123", true).Return(nil)

		req := httptest.NewRequest("PUT", "/api/users/block/account-123", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unblock success", func(t *testing.T) {
		mockRepo.EXPECT().SetBlocked(gomock.Any(), "account-123", false).Return(nil)

		req := httptest.NewRequest("PUT", "/api/users/unblock/account-123", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo.EXPECT().SetBlocked(gomock.Any(), "account-123", true).Return(errors.New("db error"))

		req := httptest.NewRequest("PUT", "/api/users/block/account-123", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestDeleteHandler(t *testing.T) {
	h, mockRepo, _ := newTestHandler(t)

	app := fiber.New()
	app.Delete("/api/users/delete/:id", h.Delete)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), "account-123").Return(nil)

		req := httptest.NewRequest("DELETE", "/api/users/delete/account-123", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), "account-123").Return(errors.New("db error"))

		req := httptest.NewRequest("DELETE", "/api/users/delete/account-123", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
