package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/ieplsoft/user-management/internal/services"
)

func validRegisterBody() RegisterRequest {
	return RegisterRequest{
		Name:        "Ada",
		Email:       "ada@x.com",
		Phone:       "9876543210",
		DateOfBirth: "1990-01-01",
		Password:    "Sup3r$ecret",
	}
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         func() RegisterRequest
		rawBody      string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			body: validRegisterBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "Ada", "ada@x.com", "9876543210", "1990-01-01", "Sup3r$ecret").
					Return(int64(1), nil)
			},
			expectedCode: 200,
			expectedBody: map[string]any{"success": true, "userId": float64(1)},
		},
		{
			name: "email already registered",
			body: validRegisterBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), services.ErrEmailAlreadyRegistered)
			},
			expectedCode: 400,
			expectedBody: map[string]any{"success": false, "error": "Email already registered"},
		},
		{
			name: "internal server error",
			body: validRegisterBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database failure"))
			},
			expectedCode: 500,
			expectedBody: map[string]any{"success": false, "error": "Registration failed"},
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: 400,
			expectedBody: map[string]any{"success": false, "error": "Invalid request body"},
		},
		{
			name: "invalid phone",
			body: func() RegisterRequest {
				r := validRegisterBody()
				r.Phone = "123"
				return r
			},
			expectedCode: 400,
			expectedBody: map[string]any{"success": false, "error": "phone must be 10 digits starting with 6-9"},
		},
		{
			name: "future date of birth",
			body: func() RegisterRequest {
				r := validRegisterBody()
				r.DateOfBirth = "2999-01-01"
				return r
			},
			expectedCode: 400,
			expectedBody: map[string]any{"success": false, "error": "dateofbirth must be a past date in YYYY-MM-DD format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.body())
				req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp map[string]any
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
