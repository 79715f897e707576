package handlers

import (
	"context"

	"github.com/gopherchat/assistant-gateway/internal/chat"
	"github.com/gopherchat/assistant-gateway/internal/config"
	"github.com/gopherchat/assistant-gateway/internal/identity"
)

// ChatService is the gateway pipeline consumed by the HTTP layer.
type ChatService interface {
	HandleChatTurn(ctx context.Context, user *chat.User, rawText string) (string, error)
	LatestSessionTurns(ctx context.Context, user *chat.User) ([]chat.Turn, error)
}

type IdentityService interface {
	Register(ctx context.Context, email, password string, fullName *string) (*identity.Credentials, error)
	Login(ctx context.Context, email, password string) (*identity.Credentials, error)
}

// UserMirror resolves channel senders to local identities.
type UserMirror interface {
	MirrorUser(ctx context.Context, id, email string) (*chat.User, error)
}

// FBSender delivers replies through the Graph API.
type FBSender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// MessageDedup suppresses re-delivered webhook events. May be nil when
// no Redis is configured; dedup is then disabled.
type MessageDedup interface {
	MarkMessageSeen(ctx context.Context, messageID string) (first bool, err error)
}

// BotStatusFunc checks a Telegram credential.
type BotStatusFunc func(ctx context.Context, token string) (ok bool, status string)

type Deps struct {
	Identity      IdentityService
	Chat          ChatService
	Users         UserMirror
	Settings      *config.Settings
	FB            FBSender
	Dedup         MessageDedup
	BotStatus     BotStatusFunc
	FBVerifyToken string
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}
