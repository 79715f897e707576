package chat

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// WithTx runs fn against a transaction-scoped repo. fn returning an
// error rolls back everything written inside it.
func (r *Repo) WithTx(ctx context.Context, fn func(tx *Repo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepo(tx))
	})
}

// FindLatestSession returns the user's most recently created session,
// or gorm.ErrRecordNotFound when none exists yet.
func (r *Repo) FindLatestSession(ctx context.Context, userID string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repo) AppendTurn(ctx context.Context, sessionID uint64, role, content string) (*Turn, error) {
	t := &Turn{SessionID: sessionID, Role: role, Content: content}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ListTurns returns a session's turns in append order.
func (r *Repo) ListTurns(ctx context.Context, sessionID uint64) ([]Turn, error) {
	var turns []Turn
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *Repo) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// MirrorUser finds the local mirror row for an externally owned
// identity, creating it on first contact.
func (r *Repo) MirrorUser(ctx context.Context, id, email string) (*User, error) {
	u := User{ID: id, Email: email}
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		FirstOrCreate(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
