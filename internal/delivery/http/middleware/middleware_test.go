package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	roles map[string]string
}

func (s stubAuth) ResolveIdentity(_ context.Context, userID string) (domain.Identity, error) {
	role, ok := s.roles[userID]
	if !ok {
		return domain.Identity{}, apperror.Unauthorized("User not found")
	}
	return domain.Identity{UserID: userID, Role: role}, nil
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	auth := stubAuth{roles: map[string]string{
		"dev-1": domain.RoleDeveloper,
		"rec-1": domain.RoleRecruiter,
	}}
	r := gin.New()
	r.Use(RequestID(), AuthMiddleware(testSecret, auth))
	r.GET("/me", func(c *gin.Context) {
		id := Identity(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "role": id.Role, "email": c.GetString(string(domain.KeyUserEmail))})
	})
	r.GET("/recruiters", RequireRole(domain.RoleRecruiter), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
		wantRole   string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, authorization denied",
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, authorization denied",
		},
		{
			name:       "id claim",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "dev-1", "email": "d@x.io", "exp": exp}),
			wantStatus: http.StatusOK,
			wantRole:   domain.RoleDeveloper,
		},
		{
			name:       "sub claim fallback",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "rec-1", "exp": exp}),
			wantStatus: http.StatusOK,
			wantRole:   domain.RoleRecruiter,
		},
		{
			name:       "role claim is ignored",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "dev-1", "role": "recruiter", "exp": exp}),
			wantStatus: http.StatusOK,
			wantRole:   domain.RoleDeveloper,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"id": "dev-1", "exp": exp}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "wrong algorithm",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"id": "dev-1", "exp": exp}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "dev-1", "exp": time.Now().Add(-time.Minute).Unix()}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "no subject",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": exp}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "unknown user",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "ghost", "exp": exp}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "User not found",
		},
	}

	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				env := decode(t, w)
				assert.False(t, env.Success)
				assert.Equal(t, tt.wantMsg, env.Message)
				assert.NotEmpty(t, env.RequestID)
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantRole, body["role"])
		})
	}
}

func TestAuthMiddlewareWithoutSecret(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware("", stubAuth{}))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, jwt.SigningMethodHS256, []byte("anything"), jwt.MapClaims{"id": "dev-1"})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := authRouter()
	exp := time.Now().Add(time.Hour).Unix()

	req := httptest.NewRequest(http.MethodGet, "/recruiters", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "dev-1", "exp": exp}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/recruiters", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "rec-1", "exp": exp}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID)))
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

type namedInput struct {
	Availability string `json:"availability" validate:"availability"`
}

func TestErrorHandler(t *testing.T) {
	validate := validation.New()
	validationErr := validate.Struct(namedInput{Availability: "busy"})
	require.Error(t, validationErr)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMsg     string
		wantDetails bool
	}{
		{"app error", apperror.Conflict("Developer already in shortlist"), http.StatusConflict, "Developer already in shortlist", false},
		{"validation details", apperror.New(http.StatusBadRequest, "Validation failed", validationErr), http.StatusBadRequest, "Validation failed", true},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound, "Resource not found", false},
		{"conflict sentinel", domain.ErrConflict, http.StatusConflict, "Resource already exists", false},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), ErrorHandler())
			r.GET("/", func(c *gin.Context) { c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.NotContains(t, w.Body.String(), "connection reset")
			if tt.wantDetails {
				var details []string
				require.NoError(t, json.Unmarshal(env.Error, &details))
				require.Len(t, details, 1)
				assert.Contains(t, details[0], "availability")
			}
		})
	}
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
		c.Writer.WriteHeaderNow()
		c.Error(errors.New("late"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRateLimitFallback(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(RateLimitConfig{Limit: 100, Window: time.Minute, RPS: 1}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// burst of 2 at 1 rps
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// separate bucket per caller
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestCallerKey(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5000"
	assert.Equal(t, "ip:192.0.2.7", callerKey(c))

	c.Set(string(domain.KeyUserID), "dev-1")
	assert.Equal(t, "user:dev-1", callerKey(c))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://devhire.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://devhire.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://devhire.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
