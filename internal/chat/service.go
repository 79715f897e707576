package chat

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultSessionTitle = "Main Chat"

// storageTimeout bounds the database round-trips of one exchange.
const storageTimeout = 10 * time.Second

// Retriever supplies the context block injected before a provider call.
type Retriever interface {
	Retrieve(ctx context.Context, query string) string
}

// Answerer produces the assistant reply. Implementations never fail;
// backend problems come back as displayable text.
type Answerer interface {
	Answer(ctx context.Context, userText, contextText string) string
}

// Publisher receives a best-effort notification after each committed
// exchange.
type Publisher interface {
	PublishExchange(ctx context.Context, sessionID, userID string) error
}

// Service is the inference gateway core: it runs the
// retrieve -> route -> persist pipeline for every channel.
type Service struct {
	repo      *Repo
	retriever Retriever
	answerer  Answerer
	publisher Publisher
}

// NewService wires the pipeline. publisher may be nil when no broker is
// configured.
func NewService(repo *Repo, retriever Retriever, answerer Answerer, publisher Publisher) *Service {
	return &Service{repo: repo, retriever: retriever, answerer: answerer, publisher: publisher}
}

// RecordExchange resolves or creates the user's latest session and
// appends the (user, assistant) turn pair inside one transaction. Any
// persistence failure rolls back both turns.
func (s *Service) RecordExchange(ctx context.Context, user *User, userText, assistantText string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	var session *Session
	err := s.repo.WithTx(ctx, func(tx *Repo) error {
		sess, err := tx.FindLatestSession(ctx, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sid, idErr := NewSessionID()
			if idErr != nil {
				return idErr
			}
			sess = &Session{SessionID: sid, UserID: user.ID, Title: defaultSessionTitle}
			if err := tx.CreateSession(ctx, sess); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if _, err := tx.AppendTurn(ctx, sess.ID, RoleUser, userText); err != nil {
			return err
		}
		if _, err := tx.AppendTurn(ctx, sess.ID, RoleAssistant, assistantText); err != nil {
			return err
		}
		session = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// HandleChatTurn is the single synchronous entry point for every
// channel adapter: retrieve context, route to the active provider,
// persist the pair, return the reply text. A provider failure comes
// back as reply text and is persisted as the assistant turn; a
// persistence failure is a hard error and the computed reply is
// discarded.
func (s *Service) HandleChatTurn(ctx context.Context, user *User, rawText string) (string, error) {
	// A caller disconnect must not abort the in-flight provider call or
	// the write that follows it. The provider client and storage
	// timeouts remain the only bounds.
	ctx = context.WithoutCancel(ctx)

	contextText := s.retriever.Retrieve(ctx, rawText)
	reply := s.answerer.Answer(ctx, rawText, contextText)

	session, err := s.RecordExchange(ctx, user, rawText, reply)
	if err != nil {
		log.Error().Err(err).
			Str("user_id", user.ID).
			Int("discarded_reply_len", len(reply)).
			Msg("failed to persist exchange")
		return "", err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExchange(ctx, session.SessionID, user.ID); err != nil {
			log.Warn().Err(err).Str("session_id", session.SessionID).Msg("exchange event not published")
		}
	}
	return reply, nil
}

// LatestSessionTurns returns the turns of the user's active session in
// append order, or an empty slice when the user has no session yet.
func (s *Service) LatestSessionTurns(ctx context.Context, user *User) ([]Turn, error) {
	sess, err := s.repo.FindLatestSession(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.ListTurns(ctx, sess.ID)
}
