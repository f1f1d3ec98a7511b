package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crier-dev/crier/internal/domain"
	jwt_internal "github.com/crier-dev/crier/internal/jwt"
)

func TestAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	admin := domain.User{Id: 1, Username: "root", Admin: true}
	tokenAdmin, _ := jwtService.NewToken(admin)
	user := domain.User{Id: 2, Username: "alice", Admin: false}
	token, _ := jwtService.NewToken(user)

	tests := []struct {
		name           string
		adminOnly      bool
		cookie         *http.Cookie
		authHeader     string
		expectedStatus int
		expectedUser   *domain.User
	}{
		{
			name:           "Valid token - Admin",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: "accessToken", Value: tokenAdmin},
			expectedStatus: http.StatusOK,
			expectedUser:   &admin,
		},
		{
			name:           "Valid token - Non-admin",
			adminOnly:      false,
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusOK,
			expectedUser:   &user,
		},
		{
			name:           "Bearer header instead of cookie",
			adminOnly:      false,
			authHeader:     "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectedUser:   &user,
		},
		{
			name:           "No token",
			adminOnly:      false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			adminOnly:      false,
			cookie:         &http.Cookie{Name: "accessToken", Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-admin accessing admin route",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = GetUserFromContext(r)
				w.WriteHeader(http.StatusOK)
			})

			a := NewAuth(jwtService)
			var mw func(http.Handler) http.Handler
			if tt.adminOnly {
				mw = a.AdminOnly()
			} else {
				mw = a.NeedAuth()
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			mw(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedUser != nil {
				require.NotNil(t, gotUser)
				assert.Equal(t, tt.expectedUser.Id, gotUser.Id)
				assert.Equal(t, tt.expectedUser.Username, gotUser.Username)
				assert.Equal(t, tt.expectedUser.Admin, gotUser.Admin)
			}
		})
	}
}

func TestExpiredToken(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", -time.Hour)
	token, err := jwtService.NewToken(domain.User{Id: 1, Username: "alice"})
	require.NoError(t, err)

	a := NewAuth(jwt_internal.New("test_secret", time.Hour))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rr := httptest.NewRecorder()

	a.NeedAuth()(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	token, _ := jwtService.NewToken(domain.User{Id: 7, Username: "alice"})
	a := NewAuth(jwtService)

	var gotUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		gotUser = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		a.OptionalAuth()(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, gotUser)
	})

	t.Run("token fills in user", func(t *testing.T) {
		gotUser = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		a.OptionalAuth()(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotUser)
		assert.Equal(t, domain.UserId(7), gotUser.Id)
	})
}
