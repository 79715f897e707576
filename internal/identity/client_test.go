package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gopherchat/assistant-gateway/internal/chat"
)

const testSecret = "unit-test-secret"

func newTestClient(t *testing.T, baseURL string) (*Client, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&chat.User{}))
	c := NewClient(Options{BaseURL: baseURL, JWTSecret: testSecret}, chat.NewRepo(db))
	return c, db
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyToken_ValidTokenMirrorsUser(t *testing.T) {
	c, db := newTestClient(t, "")
	id := uuid.NewString()
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":   id,
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	user, err := c.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "alice@example.com", user.Email)

	var count int64
	require.NoError(t, db.Model(&chat.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Second verification reuses the mirror row.
	_, err = c.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, db.Model(&chat.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestVerifyToken_RejectsExpiredToken(t *testing.T) {
	c, _ := newTestClient(t, "")
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":   uuid.NewString(),
		"email": "bob@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	_, err := c.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	c, _ := newTestClient(t, "")
	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"sub":   uuid.NewString(),
		"email": "bob@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := c.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsMissingClaims(t *testing.T) {
	c, _ := newTestClient(t, "")
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := c.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalRegisterAndLoginRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, "")

	creds, err := c.Register(context.Background(), "carol@example.com", "hunter22", nil)
	require.NoError(t, err)
	require.NotEmpty(t, creds.AccessToken)

	// The issued token verifies against the same secret.
	verified, err := c.VerifyToken(context.Background(), creds.AccessToken)
	require.NoError(t, err)
	require.Equal(t, creds.User.ID, verified.ID)

	logged, err := c.Login(context.Background(), "carol@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, creds.User.ID, logged.User.ID)

	_, err = c.Login(context.Background(), "carol@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = c.Login(context.Background(), "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRemoteLogin_MirrorsProviderUser(t *testing.T) {
	providerUserID := uuid.NewString()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "remote-token",
			"user":         map[string]any{"id": providerUserID, "email": "dave@example.com"},
		})
	}))
	defer srv.Close()

	c, db := newTestClient(t, srv.URL)
	creds, err := c.Login(context.Background(), "dave@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "remote-token", creds.AccessToken)
	require.Equal(t, providerUserID, creds.User.ID)

	var mirrored chat.User
	require.NoError(t, db.First(&mirrored, "id = ?", providerUserID).Error)
	require.Equal(t, "dave@example.com", mirrored.Email)
}

func TestRemoteLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "dave@example.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
