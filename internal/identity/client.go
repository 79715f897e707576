// Package identity fronts the external identity provider. Sign-up and
// sign-in are forwarded to its REST API; bearer tokens are verified
// locally against the provider's signing secret. When no provider URL
// is configured the client falls back to local credential storage on
// the mirror table.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gopherchat/assistant-gateway/internal/chat"
)

var (
	ErrInvalidToken       = errors.New("invalid authentication credentials")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

const tokenTTL = 24 * time.Hour

// UserStore is the mirror-table access the client needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*chat.User, error)
	CreateUser(ctx context.Context, u *chat.User) error
	MirrorUser(ctx context.Context, id, email string) (*chat.User, error)
}

type Options struct {
	BaseURL   string
	APIKey    string
	JWTSecret string
}

type Client struct {
	baseURL   string
	apiKey    string
	jwtSecret []byte
	http      *http.Client
	store     UserStore
}

func NewClient(opts Options, store UserStore) *Client {
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		apiKey:    opts.APIKey,
		jwtSecret: []byte(opts.JWTSecret),
		http:      &http.Client{Timeout: 10 * time.Second},
		store:     store,
	}
}

// Credentials is the result of a successful sign-up or sign-in.
type Credentials struct {
	AccessToken string
	User        *chat.User
}

// VerifyToken checks the bearer token signature and claims, then
// resolves the local mirror row, creating it on first contact. Any
// verification failure maps to ErrInvalidToken.
func (c *Client) VerifyToken(ctx context.Context, bearerToken string) (*chat.User, error) {
	parsed, err := jwt.Parse(bearerToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, ErrInvalidToken
	}

	user, err := c.store.MirrorUser(ctx, sub, email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates the principal at the identity provider (or locally
// in fallback mode) and ensures the mirror row exists.
func (c *Client) Register(ctx context.Context, email, password string, fullName *string) (*Credentials, error) {
	if c.baseURL == "" {
		return c.registerLocal(ctx, email, password, fullName)
	}

	payload := map[string]any{"email": email, "password": password}
	if fullName != nil {
		payload["data"] = map[string]any{"full_name": *fullName}
	}
	resp, err := c.authRequest(ctx, "/auth/v1/signup", payload)
	if err != nil {
		return nil, err
	}

	user, err := c.store.MirrorUser(ctx, resp.User.ID, email)
	if err != nil {
		return nil, err
	}
	if fullName != nil && user.FullName == nil {
		user.FullName = fullName
	}
	return &Credentials{AccessToken: resp.AccessToken, User: user}, nil
}

// Login exchanges a password for an access token and ensures the
// mirror row exists.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	if c.baseURL == "" {
		return c.loginLocal(ctx, email, password)
	}

	resp, err := c.authRequest(ctx, "/auth/v1/token?grant_type=password",
		map[string]any{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	user, err := c.store.MirrorUser(ctx, resp.User.ID, resp.User.Email)
	if err != nil {
		return nil, err
	}
	return &Credentials{AccessToken: resp.AccessToken, User: user}, nil
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) authRequest(ctx context.Context, path string, payload map[string]any) (*authResponse, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("identity provider: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded authResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.User.ID == "" {
		return nil, errors.New("identity provider: response missing user id")
	}
	return &decoded, nil
}

func (c *Client) registerLocal(ctx context.Context, email, password string, fullName *string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hashStr := string(hash)
	user := &chat.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: &hashStr,
	}
	if err := c.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := c.signToken(user)
	if err != nil {
		return nil, err
	}
	return &Credentials{AccessToken: token, User: user}, nil
}

func (c *Client) loginLocal(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := c.store.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := c.signToken(user)
	if err != nil {
		return nil, err
	}
	return &Credentials{AccessToken: token, User: user}, nil
}

func (c *Client) signToken(user *chat.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.jwtSecret)
}
