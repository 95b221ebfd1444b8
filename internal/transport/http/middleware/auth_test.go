package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devconnect/internal/httputil"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID int64, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuthMiddleware(t *testing.T, authHeader string) (*httptest.ResponseRecorder, int64, bool) {
	t.Helper()

	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetSubjectIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)
	return rec, gotID, gotOK
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httputil.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error.Code
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Now().Add(time.Hour))

	rec, gotID, gotOK := runAuthMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotID != 42 {
		t.Errorf("subject id = (%d, %v), want (42, true)", gotID, gotOK)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	rec, _, gotOK := runAuthMiddleware(t, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if gotOK {
		t.Error("handler must not run without a token")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	rec, _, _ := runAuthMiddleware(t, "Token abc123")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Now().Add(-time.Hour))

	rec, _, _ := runAuthMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != httputil.CodeTokenExpired {
		t.Errorf("error code = %q, want %q", code, httputil.CodeTokenExpired)
	}
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	token := signToken(t, "other-secret", 42, time.Now().Add(time.Hour))

	rec, _, _ := runAuthMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != httputil.CodeTokenInvalid {
		t.Errorf("error code = %q, want %q", code, httputil.CodeTokenInvalid)
	}
}
