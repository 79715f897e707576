package chat

import "time"

// Turn roles. The core only ever appends turns in (user, assistant)
// pairs; no other role exists.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// User mirrors a principal owned by the external identity provider.
// Rows are created lazily on first authenticated contact and never
// deleted by the gateway. PasswordHash is only set in local auth mode.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     *string   `gorm:"type:varchar(255)" json:"full_name,omitempty"`
	PasswordHash *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// Session is a named conversation thread belonging to one user. The
// most recently created session is the user's active one; there is no
// switching, archiving, or closing.
type Session struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string    `gorm:"type:varchar(26);uniqueIndex;not null" json:"session_id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string { return "chat_sessions" }

type Turn struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uint64    `gorm:"index;not null" json:"-"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Turn) TableName() string { return "chat_turns" }

type Document struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255);index;not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }

// DocumentChunk is one free-text piece of the context corpus. The
// embedding column is historical baggage from an abandoned
// similarity-search path; the retrieval path never reads it.
type DocumentChunk struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID uint64 `gorm:"index;not null" json:"-"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Embedding  []byte `gorm:"type:blob" json:"-"`
}

func (DocumentChunk) TableName() string { return "document_chunks" }
