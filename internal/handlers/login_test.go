package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/todo-tracker/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret123"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "secret123").Return("token", "john", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"token": "token", "username": "john", "message": "Login successful"},
		},
		{
			name: "invalid credentials",
			body: `{"email":"john@example.com","password":"wrong"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "wrong").Return("", "", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid email or password"},
		},
		{
			name: "missing fields",
			body: `{}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "", "").
					Return("", "", &services.ValidationError{Message: "Email and password required"})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Email and password required"},
		},
		{
			name: "internal error",
			body: `{"email":"john@example.com","password":"secret123"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "secret123").Return("", "", errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			body:         "{bad",
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewLoginHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
