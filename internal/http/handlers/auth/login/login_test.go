package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/travel-assistant/internal/models"
	authservice "github.com/magabrotheeeer/travel-assistant/internal/services/auth"
	"github.com/magabrotheeeer/travel-assistant/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
	okResp := &models.LoginResponse{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		User:         &models.UserInfo{ID: 1, Username: "testuser", Role: "USER"},
	}

	tests := []struct {
		name       string
		body       string
		mockResp   *models.LoginResponse
		mockErr    error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "success",
			body:       `{"username":"testuser","password":"123456"}`,
			mockResp:   okResp,
			wantStatus: http.StatusOK,
			wantInBody: `"accessToken":"access"`,
		},
		{
			name:       "invalid json",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid request body",
		},
		{
			name:       "username too short",
			body:       `{"username":"ab","password":"123456"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "field Username is too short",
		},
		{
			name:       "password too short",
			body:       `{"username":"testuser","password":"12345"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "field Password is too short",
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "required field",
		},
		{
			name:       "unknown user",
			body:       `{"username":"nobody99","password":"123456"}`,
			mockErr:    storage.ErrUserNotFound,
			wantStatus: http.StatusUnauthorized,
			wantInBody: "invalid username or password",
		},
		{
			name:       "wrong password",
			body:       `{"username":"testuser","password":"wrongpass"}`,
			mockErr:    authservice.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantInBody: "invalid username or password",
		},
		{
			name:       "disabled user",
			body:       `{"username":"blocked1","password":"123456"}`,
			mockErr:    authservice.ErrUserDisabled,
			wantStatus: http.StatusUnauthorized,
			wantInBody: "user is disabled",
		},
		{
			name:       "storage failure",
			body:       `{"username":"testuser","password":"123456"}`,
			mockErr:    errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantInBody: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockResp != nil || tt.mockErr != nil {
				svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_ResponseShape(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Login", mock.Anything, "testuser", "123456").Return(&models.LoginResponse{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		User:         &models.UserInfo{ID: 1, Username: "testuser", Role: "USER"},
	}, nil).Once()

	handler := New(newNoopLogger(), svc)
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"username":"testuser","password":"123456"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "testuser", resp.User.Username)
	// Хэш пароля в JSON-ответе отсутствует как поле в принципе.
	assert.NotContains(t, rec.Body.String(), "password")
	svc.AssertExpectations(t)
}
