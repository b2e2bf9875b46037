package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	xerrors "decora-admin/internal/pkg/errors"
	jwtpkg "decora-admin/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "decora-auth"
	testAudience = "decora-admin"
)

func newAuthEngine(t *testing.T, operatorEmails []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier, err := jwtpkg.NewVerifier(jwtpkg.Config{
		Secret:   testSecret,
		Issuer:   testIssuer,
		Audience: testAudience,
	})
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}

	mw := NewAuthMiddleware(verifier, operatorEmails, nil, zap.NewNop())

	r := gin.New()
	r.GET("/protected", mw.Auth(), func(c *gin.Context) {
		email, _ := OperatorEmail(c)
		c.String(http.StatusOK, email)
	})
	return r
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	claims := jwtpkg.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMissingTokenIsUnauthorized(t *testing.T) {
	r := newAuthEngine(t, []string{"dueno@decora.es"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), xerrors.ErrUnauthorized.Error()) {
		t.Errorf("envelope missing unauthorized sentinel: %s", w.Body.String())
	}
}

func TestAuthGarbageTokenIsUnauthorized(t *testing.T) {
	r := newAuthEngine(t, []string{"dueno@decora.es"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), xerrors.ErrUnauthorized.Error()) {
		t.Errorf("envelope missing unauthorized sentinel: %s", w.Body.String())
	}
}

func TestAuthNonOperatorIsForbidden(t *testing.T) {
	r := newAuthEngine(t, []string{"dueno@decora.es"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "intruso@otro.es"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), xerrors.ErrForbidden.Error()) {
		t.Errorf("envelope missing forbidden sentinel: %s", w.Body.String())
	}
}

func TestAuthOperatorPassesWithEmailInContext(t *testing.T) {
	r := newAuthEngine(t, []string{"Dueno@Decora.es"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "dueno@decora.es"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if w.Body.String() != "dueno@decora.es" {
		t.Errorf("operator email in context = %q, want dueno@decora.es", w.Body.String())
	}
}
