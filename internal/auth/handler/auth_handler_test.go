package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ejifeanyi/lintra/internal/auth/domain"
	"github.com/ejifeanyi/lintra/internal/auth/handler"
	"github.com/ejifeanyi/lintra/internal/auth/ratelimit"
	"github.com/ejifeanyi/lintra/internal/auth/service"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
	"github.com/ejifeanyi/lintra/internal/mocks"
	"github.com/ejifeanyi/lintra/pkg/constant"
)

type testEnv struct {
	app      *fiber.App
	users    *mocks.MockUserRepository
	projects *mocks.MockProjectRepository
	tokens   *mocks.MockTokenGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	projects := mocks.NewMockProjectRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userService := service.NewUserService(users, tokens, bcrypt.MinCost)
	projectService := service.NewProjectService(projects, users)
	limiter := ratelimit.New(constant.LoginMaxAttempts, constant.LoginWindow)

	authHandler := handler.NewAuthHandler(userService, tokens, limiter, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, projectHandler)

	return &testEnv{app: app, users: users, projects: projects, tokens: tokens}
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		setup       func(env *testEnv)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing token",
			body:        map[string]string{},
			setup:       func(env *testEnv) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Token is required",
		},
		{
			name: "expired token",
			body: map[string]string{"token": "expired-token"},
			setup: func(env *testEnv) {
				env.tokens.EXPECT().Verify("expired-token").Return("", apperrors.ErrTokenExpired)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name: "malformed token",
			body: map[string]string{"token": "tampered-token"},
			setup: func(env *testEnv) {
				env.tokens.EXPECT().Verify("tampered-token").Return("", apperrors.ErrTokenMalformed)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name: "other verification failure",
			body: map[string]string{"token": "weird-token"},
			setup: func(env *testEnv) {
				env.tokens.EXPECT().Verify("weird-token").Return("", apperrors.ErrTokenVerification)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token verification failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/auth", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantMessage, decodeBody(t, resp)["message"])
		})
	}
}

func TestVerifyToken_Success(t *testing.T) {
	env := newTestEnv(t)
	env.tokens.EXPECT().Verify("good-token").Return("user-123", nil)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/auth", map[string]string{"token": "good-token"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	decoded, ok := body["decoded"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-123", decoded["id"])
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"firstname": "",
		"email":     "not-an-email",
		"password":  "short",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Contains(t, errs, "Firstname is required")
	assert.Contains(t, errs, "Please include a valid email")
	assert.Contains(t, errs, "Password must be at least 6 characters")
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			user.Role = constant.RoleAdmin
			return nil
		})
	env.tokens.EXPECT().Issue(gomock.Any()).Return("signed-token", nil)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"firstname": "Ada",
		"email":     "ada@example.com",
		"password":  "secret123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Ada", body["firstname"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "signed-token", body["token"])
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrEmailAlreadyInUse)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"firstname": "Ada",
		"email":     "ada@example.com",
		"password":  "secret123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", decodeBody(t, resp)["message"])
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(&domain.User{
		ID:           "user-123",
		Firstname:    "Ada",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         constant.RoleUser,
	}, nil)
	env.tokens.EXPECT().Issue("user-123").Return("signed-token", nil)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "secret123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user-123", body["id"])
	assert.Equal(t, "signed-token", body["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(nil, apperrors.ErrUserNotFound)

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeBody(t, resp)["message"])
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t)

	// All test requests come from the same client address, so the limiter
	// sees one key. Five attempts reach the credential check; the sixth
	// must not.
	env.users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").
		Return(nil, apperrors.ErrUserNotFound).Times(constant.LoginMaxAttempts)

	body := map[string]string{"email": "ada@example.com", "password": "wrong"}

	for i := 0; i < constant.LoginMaxAttempts; i++ {
		resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, err := env.app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many login attempts from this IP, please try again later.",
		decodeBody(t, resp)["message"])
}

func TestProtect(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/users/user", nil)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authorization token missing", decodeBody(t, resp)["message"])
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/users/user", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		env := newTestEnv(t)
		env.tokens.EXPECT().Verify("old-token").Return("", apperrors.ErrTokenExpired)

		req := httptest.NewRequest(http.MethodGet, "/api/users/user", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer old-token")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Token expired", decodeBody(t, resp)["message"])
	})

	t.Run("principal deleted after issuance", func(t *testing.T) {
		env := newTestEnv(t)
		env.tokens.EXPECT().Verify("orphan-token").Return("user-gone", nil)
		env.users.EXPECT().GetByID(gomock.Any(), "user-gone").Return(nil, apperrors.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/users/user", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer orphan-token")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", decodeBody(t, resp)["message"])
	})

	t.Run("valid token returns principal minus password", func(t *testing.T) {
		env := newTestEnv(t)
		env.tokens.EXPECT().Verify("good-token").Return("user-123", nil)
		env.users.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{
			ID:        "user-123",
			Firstname: "Ada",
			Email:     "ada@example.com",
			Role:      constant.RoleUser,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/users/user", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "user-123", body["id"])
		assert.Equal(t, constant.RoleUser, body["role"])
		assert.NotContains(t, body, "passwordHash")
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("non-admin is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.tokens.EXPECT().Verify("user-token").Return("user-123", nil)
		env.users.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{
			ID:   "user-123",
			Role: constant.RoleUser,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer user-token")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin passes", func(t *testing.T) {
		env := newTestEnv(t)
		env.tokens.EXPECT().Verify("admin-token").Return("admin-1", nil)
		env.users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(&domain.User{
			ID:   "admin-1",
			Role: constant.RoleAdmin,
		}, nil)
		env.users.EXPECT().GetAll(gomock.Any()).Return([]*domain.User{
			{ID: "admin-1", Role: constant.RoleAdmin},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer admin-token")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
